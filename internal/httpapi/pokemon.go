package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// handleCreatePokemon builds a pokemon for the verified trainer and
// persists it. Parameter failures come back with the complete missing and
// invalid lists; an unresolvable species or nature is a 422.
func (a *API) handleCreatePokemon(w http.ResponseWriter, r *http.Request) {
	trainerID := r.PathValue("trainerID")

	p, err := a.builder.BuildPokemon(r.Context(), requestParams(r), trainerID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	created, err := a.pokemon.Create(r.Context(), p)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Info("pokemon created",
		zap.String("trainer_id", trainerID),
		zap.String("pokemon_id", created.ID),
		zap.Int("dex_no", created.DexNo),
	)
	a.writeJSON(w, http.StatusCreated, newPokemonView(created))
}

func (a *API) handleListPokemon(w http.ResponseWriter, r *http.Request) {
	list, err := a.pokemon.ListByTrainer(r.Context(), r.PathValue("trainerID"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	views := make([]pokemonView, 0, len(list))
	for _, p := range list {
		views = append(views, newPokemonView(p))
	}
	a.writeJSON(w, http.StatusOK, views)
}

// handleTransferPokemon moves a pokemon from the verified trainer to the
// trainer named in the "to" parameter. The pokemon keeps its identity; only
// ownership changes.
func (a *API) handleTransferPokemon(w http.ResponseWriter, r *http.Request) {
	trainerID := r.PathValue("trainerID")
	pokemonID := r.PathValue("pokemonID")
	params := requestParams(r)

	to := params["to"]
	if to == "" {
		a.writeJSON(w, http.StatusBadRequest, errorBody{Error: "missing parameters: to", Missing: []string{"to"}})
		return
	}

	p, err := a.pokemon.GetByID(r.Context(), pokemonID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if p.TrainerID != trainerID {
		a.writeJSON(w, http.StatusForbidden, errorBody{Error: "pokemon belongs to another trainer"})
		return
	}

	// The receiving trainer must exist.
	if _, err := a.trainers.GetByID(r.Context(), to); err != nil {
		a.writeError(w, r, err)
		return
	}

	if err := a.pokemon.Transfer(r.Context(), pokemonID, to); err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Info("pokemon transferred",
		zap.String("pokemon_id", pokemonID),
		zap.String("from", trainerID),
		zap.String("to", to),
	)
	p.TrainerID = to
	a.writeJSON(w, http.StatusOK, newPokemonView(p))
}
