package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ptaonline/tabletop/internal/game/session"
)

// handleCreateGame creates a game from the request parameters. The
// response never includes the password hash; the caller already knows the
// password and everyone else must not.
func (a *API) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	g, err := a.builder.BuildGame(requestParams(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	created, err := a.games.Create(r.Context(), g)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Info("game created",
		zap.String("game_id", created.ID),
		zap.String("nickname", created.Nickname),
	)
	a.writeJSON(w, http.StatusCreated, newGameView(created))
}

func (a *API) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := a.games.GetByID(r.Context(), r.PathValue("gameID"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, newGameView(g))
}

// handleDeleteGame removes a game and, through the store, every trainer
// and pokemon it owns. Authorization is the game password itself.
func (a *API) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameID")

	g, err := a.games.GetByID(r.Context(), gameID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	if !session.CheckPassword(requestParams(r)["password"], g.PasswordHash) {
		a.writeError(w, r, session.ErrUnauthenticated)
		return
	}

	if err := a.games.Delete(r.Context(), gameID); err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Info("game deleted", zap.String("game_id", gameID))
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
