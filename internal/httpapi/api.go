// Package httpapi exposes the session tool over HTTP. Handlers flatten the
// request into the builder's parameter map, run the session verification
// ahead of every authenticated action, and translate domain failures into
// status codes.
package httpapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/ptaonline/tabletop/internal/game/builder"
	"github.com/ptaonline/tabletop/internal/game/entity"
	"github.com/ptaonline/tabletop/internal/game/session"
)

// Cookie names for the two session proofs.
const (
	sessionCookie  = "session_proof"
	activityCookie = "activity_token"
)

// GameStore is the game persistence surface the API requires.
type GameStore interface {
	Create(ctx context.Context, g *entity.Game) (*entity.Game, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	SetOnline(ctx context.Context, id string, online bool) error
	Delete(ctx context.Context, id string) error
}

// TrainerStore is the trainer persistence surface the API requires.
type TrainerStore interface {
	Create(ctx context.Context, t *entity.Trainer) (*entity.Trainer, error)
	GetByID(ctx context.Context, id string) (*entity.Trainer, error)
	GetByName(ctx context.Context, gameID, name string) (*entity.Trainer, error)
	ListByGame(ctx context.Context, gameID string) ([]*entity.Trainer, error)
	Delete(ctx context.Context, id string) error
}

// PokemonStore is the pokemon persistence surface the API requires.
type PokemonStore interface {
	Create(ctx context.Context, p *entity.Pokemon) (*entity.Pokemon, error)
	GetByID(ctx context.Context, id string) (*entity.Pokemon, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]*entity.Pokemon, error)
	Transfer(ctx context.Context, id, newTrainerID string) error
}

// Sessions is the authentication surface the API requires. Satisfied by
// *session.Authenticator.
type Sessions interface {
	Login(ctx context.Context, trainerID string) (session.Proofs, error)
	Verify(ctx context.Context, trainerID string, p session.Proofs) (session.Proofs, error)
	Logout(ctx context.Context, trainerID string) error
}

// API holds the handler dependencies and owns the route table.
type API struct {
	logger   *zap.Logger
	builder  *builder.Builder
	sessions Sessions
	games    GameStore
	trainers TrainerStore
	pokemon  PokemonStore
	health   func(ctx context.Context) error
}

// NewAPI creates the HTTP API over the given dependencies.
//
// Precondition: all arguments must be non-nil.
func NewAPI(
	logger *zap.Logger,
	b *builder.Builder,
	sessions Sessions,
	games GameStore,
	trainers TrainerStore,
	pokemon PokemonStore,
	health func(ctx context.Context) error,
) *API {
	return &API{
		logger:   logger,
		builder:  b,
		sessions: sessions,
		games:    games,
		trainers: trainers,
		pokemon:  pokemon,
		health:   health,
	}
}

// Routes builds the route table.
func (a *API) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", a.handleHealth)

	mux.HandleFunc("POST /games", a.handleCreateGame)
	mux.HandleFunc("GET /games/{gameID}", a.handleGetGame)
	mux.HandleFunc("DELETE /games/{gameID}", a.handleDeleteGame)
	mux.HandleFunc("POST /games/{gameID}/trainers", a.handleCreateTrainer)
	mux.HandleFunc("POST /games/{gameID}/login", a.handleLogin)

	mux.HandleFunc("GET /trainers/{trainerID}", a.verified(a.handleGetTrainer))
	mux.HandleFunc("DELETE /trainers/{trainerID}", a.verified(a.handleDeleteTrainer))
	mux.HandleFunc("POST /trainers/{trainerID}/logout", a.verified(a.handleLogout))
	mux.HandleFunc("POST /trainers/{trainerID}/pokemon", a.verified(a.handleCreatePokemon))
	mux.HandleFunc("GET /trainers/{trainerID}/pokemon", a.verified(a.handleListPokemon))
	mux.HandleFunc("POST /trainers/{trainerID}/pokemon/{pokemonID}/transfer", a.verified(a.handleTransferPokemon))

	return mux
}

// requestParams flattens query string and form body into the builder's
// parameter map. For repeated keys the first value wins.
func requestParams(r *http.Request) builder.Params {
	_ = r.ParseForm()
	params := make(builder.Params, len(r.Form))
	for key, values := range r.Form {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// proofsFromRequest extracts the two proof cookies. Absent cookies yield
// empty proofs, which verification rejects.
func proofsFromRequest(r *http.Request) session.Proofs {
	var p session.Proofs
	if c, err := r.Cookie(sessionCookie); err == nil {
		p.Session = c.Value
	}
	if c, err := r.Cookie(activityCookie); err == nil {
		p.Activity = c.Value
	}
	return p
}

func setProofCookies(w http.ResponseWriter, p session.Proofs) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    p.Session,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     activityCookie,
		Value:    p.Activity,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearProofCookies(w http.ResponseWriter) {
	for _, name := range []string{sessionCookie, activityCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// verified wraps an authenticated handler. The trainer named in the path
// must present both proofs; on success the rotated activity token is set as
// a cookie before the inner handler runs, so even a failing action consumes
// the presented token.
func (a *API) verified(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trainerID := r.PathValue("trainerID")
		rotated, err := a.sessions.Verify(r.Context(), trainerID, proofsFromRequest(r))
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		setProofCookies(w, rotated)
		next(w, r)
	}
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := a.health(r.Context()); err != nil {
		a.logger.Warn("health check failed", zap.Error(err))
		a.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
