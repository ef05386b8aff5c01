// Package builder turns raw request parameters into validated game,
// trainer, and pokemon entities, applying defaults and cross-field rules.
package builder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ptaonline/tabletop/internal/dex"
	"github.com/ptaonline/tabletop/internal/game/entity"
	"github.com/ptaonline/tabletop/internal/game/session"
	"github.com/ptaonline/tabletop/internal/game/stats"
)

// ErrDuplicateTrainer is returned when a trainer with the requested name
// already exists in the game. Distinct from a missing-parameter failure.
var ErrDuplicateTrainer = errors.New("trainer name already in use")

// ErrPokemonBuild wraps a failed species or nature resolution. Distinct
// from a missing-parameter failure: the parameters were present, the
// external lookup did not resolve.
var ErrPokemonBuild = errors.New("failed to build pokemon")

// TrainerDirectory answers name-uniqueness queries for trainers in a game.
type TrainerDirectory interface {
	TrainerNameExists(ctx context.Context, gameID, name string) (bool, error)
}

// Builder constructs domain entities from raw parameters.
type Builder struct {
	trainers TrainerDirectory
	species  dex.Source
}

// New creates a Builder.
//
// Precondition: trainers and species must be non-nil.
func New(trainers TrainerDirectory, species dex.Source) *Builder {
	return &Builder{trainers: trainers, species: species}
}

// nicknameFromID derives a default display name from an id prefix.
func nicknameFromID(id string) string {
	return id[:8]
}

// BuildGame creates a new game: fresh 36-character id, nickname derived
// from the id prefix when the parameter is absent, hashed password, empty
// NPC set, marked online.
//
// Postcondition: Returns a valid *entity.Game, a *ParamError, or a hashing
// error.
func (b *Builder) BuildGame(params Params) (*entity.Game, error) {
	var pe ParamError
	if !params.has("password") {
		pe.Missing = append(pe.Missing, "password")
	}

	id := uuid.NewString()
	nickname, supplied := params["nickname"]
	if !supplied {
		nickname = nicknameFromID(id)
	} else if l := len(nickname); l < 1 || l > 18 {
		pe.Invalid = append(pe.Invalid, FieldValue{"nickname", nickname, "length must be 1-18"})
	}
	if err := pe.err(); err != nil {
		return nil, err
	}

	hash, err := session.HashPassword(params["password"])
	if err != nil {
		return nil, fmt.Errorf("hashing game password: %w", err)
	}

	g := &entity.Game{
		ID:           id,
		Nickname:     nickname,
		Online:       true,
		PasswordHash: hash,
		NPCIDs:       []string{},
	}
	if err := entity.GameError(g); err != nil {
		return nil, err
	}
	return g, nil
}

// BuildTrainer creates a trainer in the given game. Credentials arrive
// under game-scoped keys ("<gameId>_username", "<gameId>_password") so a
// client can hold credentials for several games in one parameter set.
// A duplicate name in the game is reported as ErrDuplicateTrainer, distinct
// from the missing-parameter failure.
func (b *Builder) BuildTrainer(ctx context.Context, params Params, gameID string, isGM bool) (*entity.Trainer, error) {
	userKey := gameID + "_username"
	passKey := gameID + "_password"

	var pe ParamError
	if !params.has(userKey) {
		pe.Missing = append(pe.Missing, userKey)
	}
	if !params.has(passKey) {
		pe.Missing = append(pe.Missing, passKey)
	}
	if err := pe.err(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(params[userKey])
	taken, err := b.trainers.TrainerNameExists(ctx, gameID, name)
	if err != nil {
		return nil, fmt.Errorf("checking trainer name: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%q in game %s: %w", name, gameID, ErrDuplicateTrainer)
	}

	hash, err := session.HashPassword(params[passKey])
	if err != nil {
		return nil, fmt.Errorf("hashing trainer password: %w", err)
	}

	t := &entity.Trainer{
		ID:            uuid.NewString(),
		GameID:        gameID,
		Name:          name,
		PasswordHash:  hash,
		Stats:         entity.DefaultTrainerStats(),
		Classes:       []string{},
		Feats:         []string{},
		Items:         []entity.Item{},
		Level:         1,
		Online:        true,
		ActivityToken: uuid.NewString(),
		GM:            isGM,
	}
	if err := entity.TrainerError(t); err != nil {
		return nil, err
	}
	return t, nil
}

// pokemonKeys is the mandatory parameter set for BuildPokemon. All of them
// are checked before any external lookup so a request missing half its
// fields fails fast with the complete list.
var pokemonKeys = []string{
	"species", "nature", "naturalMoves", "expYield",
	"catchRate", "experience", "level",
}

// BuildPokemon creates a pokemon for the given trainer from raw parameters.
//
// Postcondition: Returns a valid *entity.Pokemon with all six stat totals
// aggregated, a *ParamError listing every missing/invalid parameter, or an
// error wrapping ErrPokemonBuild when the species or nature does not
// resolve.
func (b *Builder) BuildPokemon(ctx context.Context, params Params, trainerID string) (*entity.Pokemon, error) {
	var pe ParamError
	for _, key := range pokemonKeys {
		if !params.has(key) {
			pe.Missing = append(pe.Missing, key)
		}
	}
	if err := pe.err(); err != nil {
		return nil, err
	}

	expYield := pe.intField("expYield", params["expYield"], 0, 1<<30)
	catchRate := pe.intField("catchRate", params["catchRate"], 0, 255)
	experience := pe.intField("experience", params["experience"], 0, 1<<30)
	level := pe.intField("level", params["level"], 1, 100)

	abilitySlot := 1
	if params.has("ability") {
		abilitySlot = pe.intField("ability", params["ability"], 1, 3)
	}

	gender := entity.Genderless
	if params.has("gender") {
		gender = entity.Gender(strings.TrimSpace(params["gender"]))
		if !gender.Valid() {
			pe.Invalid = append(pe.Invalid, FieldValue{"gender", params["gender"], "must be Male, Female, or Genderless"})
		}
	}

	naturalMoves := moveList(params["naturalMoves"])
	if l := len(naturalMoves); l < 1 || l > 4 {
		pe.Invalid = append(pe.Invalid, FieldValue{"naturalMoves", params["naturalMoves"], "count must be 1-4"})
	}
	taughtMoves := moveList(params["taughtMoves"])
	if len(taughtMoves) > 4 {
		pe.Invalid = append(pe.Invalid, FieldValue{"taughtMoves", params["taughtMoves"], "at most 4"})
	}
	if err := pe.err(); err != nil {
		return nil, err
	}

	speciesName := strings.TrimSpace(params["species"])
	natureName := strings.TrimSpace(params["nature"])
	set, species, nature, err := b.SpeciesStats(ctx, speciesName, natureName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPokemonBuild, err)
	}

	nickname := strings.TrimSpace(params["nickname"])
	if nickname == "" {
		nickname = speciesName
	}

	p := &entity.Pokemon{
		ID:           uuid.NewString(),
		TrainerID:    trainerID,
		DexNo:        species.DexNo,
		Nickname:     nickname,
		Gender:       gender,
		NatureID:     nature.ID,
		Stats:        set,
		NaturalMoves: naturalMoves,
		TaughtMoves:  taughtMoves,
		AbilitySlot:  abilitySlot,
		Experience:   experience,
		ExpYield:     expYield,
		Level:        level,
		CatchRate:    catchRate,
		Shiny:        params["shiny"] == "true",
	}
	p.Stats.Aggregate()

	if err := entity.PokemonError(p, true); err != nil {
		return nil, err
	}
	return p, nil
}

// SpeciesStats combines the external species base-stat lookup with the
// nature modifier table to produce the initial stat blocks for a new
// pokemon. Base is the species base stat quantized to the tabletop scale
// by integer floor division (base / 10, never rounded); the nature deltas
// land in the Nature component; Added and Modifier start at zero and
// totals stay unset until aggregation.
//
// Postcondition: Returns no partial result: an unknown nature or species
// fails the whole build.
func (b *Builder) SpeciesStats(ctx context.Context, speciesName, natureName string) (stats.Set, dex.Species, stats.Nature, error) {
	nature, ok := stats.NatureByName(natureName)
	if !ok {
		return stats.Set{}, dex.Species{}, stats.Nature{}, fmt.Errorf("unknown nature %q", natureName)
	}

	species, err := b.species.Lookup(ctx, speciesName)
	if err != nil {
		return stats.Set{}, dex.Species{}, stats.Nature{}, fmt.Errorf("looking up species %q: %w", speciesName, err)
	}

	var set stats.Set
	set.HP.Base = species.BaseStats.HP / 10
	set.Attack.Base = species.BaseStats.Attack / 10
	set.Defense.Base = species.BaseStats.Defense / 10
	set.SpecialAttack.Base = species.BaseStats.SpecialAttack / 10
	set.SpecialDefense.Base = species.BaseStats.SpecialDefense / 10
	set.Speed.Base = species.BaseStats.Speed / 10
	nature.Apply(&set)

	return set, species, nature, nil
}
