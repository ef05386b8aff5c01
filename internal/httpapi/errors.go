package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ptaonline/tabletop/internal/dex"
	"github.com/ptaonline/tabletop/internal/game/builder"
	"github.com/ptaonline/tabletop/internal/game/entity"
	"github.com/ptaonline/tabletop/internal/game/session"
	"github.com/ptaonline/tabletop/internal/storage/postgres"
)

// errorBody is the uniform error response. Missing and Invalid are only
// populated for parameter failures, Violations only for entity failures.
type errorBody struct {
	Error      string             `json:"error"`
	Missing    []string           `json:"missing,omitempty"`
	Invalid    []invalidField     `json:"invalid,omitempty"`
	Violations []entity.Violation `json:"violations,omitempty"`
}

type invalidField struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// writeError maps a domain failure to a status code and a structured body.
// Parameter and entity failures carry their complete violation lists so a
// client can fix everything in one pass.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var paramErr *builder.ParamError
	var validationErr *entity.ValidationError

	status := http.StatusInternalServerError
	body := errorBody{Error: err.Error()}

	switch {
	case errors.As(err, &paramErr):
		status = http.StatusBadRequest
		body.Missing = paramErr.Missing
		for _, f := range paramErr.Invalid {
			body.Invalid = append(body.Invalid, invalidField{f.Field, f.Value, f.Reason})
		}
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		body.Violations = validationErr.Violations
	case errors.Is(err, session.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, postgres.ErrGameNotFound),
		errors.Is(err, postgres.ErrTrainerNotFound),
		errors.Is(err, postgres.ErrPokemonNotFound):
		status = http.StatusNotFound
	case errors.Is(err, builder.ErrDuplicateTrainer),
		errors.Is(err, postgres.ErrTrainerNameTaken),
		errors.Is(err, postgres.ErrGameAlreadyHasGM):
		status = http.StatusConflict
	case errors.Is(err, builder.ErrPokemonBuild),
		errors.Is(err, dex.ErrSpeciesNotFound):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		a.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		// Do not leak internals.
		body.Error = "internal error"
	}

	a.writeJSON(w, status, body)
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("encoding response", zap.Error(err))
	}
}
