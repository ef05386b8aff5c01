package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ptaonline/tabletop/internal/game/entity"
)

// ErrGameNotFound is returned when a game lookup yields no results.
var ErrGameNotFound = errors.New("game not found")

// ErrTrainerNotFound is returned when a trainer lookup yields no results.
var ErrTrainerNotFound = errors.New("trainer not found")

// ErrPokemonNotFound is returned when a pokemon lookup yields no results.
var ErrPokemonNotFound = errors.New("pokemon not found")

// ErrTrainerNameTaken is returned when creating a trainer whose name is
// already used in the same game.
var ErrTrainerNameTaken = errors.New("trainer name already taken in game")

// ErrGameAlreadyHasGM is returned when creating a GM trainer for a game
// that already has one.
var ErrGameAlreadyHasGM = errors.New("game already has a game master")

// checkFields maps schema CHECK constraint names to the entity field they
// guard, so store write rejections surface through the same structured
// validation channel as in-process checks.
var checkFields = map[string]string{
	"games_nickname_len":    "Nickname",
	"trainers_name_nonempty": "TrainerName",
	"trainers_level_min":    "Level",
	"pokemon_nickname_len":  "Nickname",
	"pokemon_dex_no_min":    "DexNo",
	"pokemon_catch_rate":    "CatchRate",
	"pokemon_nature_range":  "Nature",
	"pokemon_gender_enum":   "Gender",
	"pokemon_ability_slot":  "Ability",
	"pokemon_level_range":   "Level",
	"pokemon_experience_min": "Experience",
	"species_dex_no_min":    "DexNo",
}

// isDuplicateKeyError reports whether err is a unique constraint violation
// (SQLSTATE 23505), optionally returning the constraint name.
func isDuplicateKeyError(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.SQLState() == "23505" {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// asValidationError converts a CHECK violation (SQLSTATE 23514) into the
// structured entity.ValidationError, or returns nil when err is something
// else (connectivity failures propagate unchanged to the caller).
func asValidationError(kind string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.SQLState() != "23514" {
		return nil
	}
	field, ok := checkFields[pgErr.ConstraintName]
	if !ok {
		field = pgErr.ConstraintName
	}
	return &entity.ValidationError{
		Entity: kind,
		Violations: []entity.Violation{
			{Field: field, Value: nil, Rule: "rejected by store schema"},
		},
	}
}
