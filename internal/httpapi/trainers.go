package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ptaonline/tabletop/internal/game/session"
	"github.com/ptaonline/tabletop/internal/storage/postgres"
)

// handleCreateTrainer registers a trainer in a game. Credentials arrive
// under the game-scoped keys; the "gm" parameter claims the game-master
// seat, which the store enforces as unique per game. A new trainer is born
// online with a live activity token, so the proofs are set immediately.
func (a *API) handleCreateTrainer(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameID")
	params := requestParams(r)

	// The game must exist before a trainer can join it.
	if _, err := a.games.GetByID(r.Context(), gameID); err != nil {
		a.writeError(w, r, err)
		return
	}

	t, err := a.builder.BuildTrainer(r.Context(), params, gameID, params["gm"] == "true")
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	created, err := a.trainers.Create(r.Context(), t)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	proofs, err := a.sessions.Login(r.Context(), created.ID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	setProofCookies(w, proofs)

	if created.GM {
		if err := a.games.SetOnline(r.Context(), gameID, true); err != nil {
			a.writeError(w, r, err)
			return
		}
	}

	a.logger.Info("trainer created",
		zap.String("game_id", gameID),
		zap.String("trainer_id", created.ID),
		zap.Bool("gm", created.GM),
	)
	a.writeJSON(w, http.StatusCreated, newTrainerView(created))
}

// handleLogin authenticates a trainer by game-scoped credentials and issues
// fresh proofs. A wrong password and an unknown trainer are
// indistinguishable to the caller.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameID")
	params := requestParams(r)

	name := params[gameID+"_username"]
	password := params[gameID+"_password"]
	if name == "" || password == "" {
		a.writeError(w, r, session.ErrUnauthenticated)
		return
	}

	t, err := a.trainers.GetByName(r.Context(), gameID, name)
	if errors.Is(err, postgres.ErrTrainerNotFound) {
		a.logger.Warn("login for unknown trainer",
			zap.String("game_id", gameID),
			zap.String("name", name),
		)
		a.writeError(w, r, session.ErrUnauthenticated)
		return
	}
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	if !session.CheckPassword(password, t.PasswordHash) {
		a.logger.Warn("login with bad password",
			zap.String("game_id", gameID),
			zap.String("trainer_id", t.ID),
		)
		a.writeError(w, r, session.ErrUnauthenticated)
		return
	}

	proofs, err := a.sessions.Login(r.Context(), t.ID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	setProofCookies(w, proofs)

	// The game is online while its GM is in session.
	if t.GM {
		if err := a.games.SetOnline(r.Context(), gameID, true); err != nil {
			a.writeError(w, r, err)
			return
		}
	}

	t.Online = true
	a.writeJSON(w, http.StatusOK, newTrainerView(t))
}

func (a *API) handleGetTrainer(w http.ResponseWriter, r *http.Request) {
	t, err := a.trainers.GetByID(r.Context(), r.PathValue("trainerID"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, newTrainerView(t))
}

// handleDeleteTrainer removes the verified trainer and, through the store,
// every pokemon it owns.
func (a *API) handleDeleteTrainer(w http.ResponseWriter, r *http.Request) {
	trainerID := r.PathValue("trainerID")
	if err := a.trainers.Delete(r.Context(), trainerID); err != nil {
		a.writeError(w, r, err)
		return
	}
	clearProofCookies(w)
	a.logger.Info("trainer deleted", zap.String("trainer_id", trainerID))
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	trainerID := r.PathValue("trainerID")
	t, err := a.trainers.GetByID(r.Context(), trainerID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.sessions.Logout(r.Context(), trainerID); err != nil {
		a.writeError(w, r, err)
		return
	}
	if t.GM {
		if err := a.games.SetOnline(r.Context(), t.GameID, false); err != nil {
			a.writeError(w, r, err)
			return
		}
	}
	clearProofCookies(w)
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
