package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ptaonline/tabletop/internal/game/entity"
)

// PokemonRepository provides pokemon persistence operations.
type PokemonRepository struct {
	db *pgxpool.Pool
}

// NewPokemonRepository creates a PokemonRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewPokemonRepository(db *pgxpool.Pool) *PokemonRepository {
	return &PokemonRepository{db: db}
}

const pokemonColumns = `id, trainer_id, dex_no, nickname, gender, nature,
	stats, natural_moves, taught_moves, ability_slot,
	experience, exp_yield, level, catch_rate, shiny, on_team,
	created_at, updated_at`

func scanPokemon(row pgx.Row) (*entity.Pokemon, error) {
	var p entity.Pokemon
	err := row.Scan(
		&p.ID, &p.TrainerID, &p.DexNo, &p.Nickname, &p.Gender, &p.NatureID,
		&p.Stats, &p.NaturalMoves, &p.TaughtMoves, &p.AbilitySlot,
		&p.Experience, &p.ExpYield, &p.Level, &p.CatchRate, &p.Shiny, &p.OnTeam,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new pokemon. The persistence-time shape is validated
// before the write: a level-0 placeholder or a stale stat total never
// reaches the store.
func (r *PokemonRepository) Create(ctx context.Context, p *entity.Pokemon) (*entity.Pokemon, error) {
	if err := entity.PokemonError(p, true); err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO pokemon
			(id, trainer_id, dex_no, nickname, gender, nature,
			 stats, natural_moves, taught_moves, ability_slot,
			 experience, exp_yield, level, catch_rate, shiny, on_team)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING `+pokemonColumns,
		p.ID, p.TrainerID, p.DexNo, p.Nickname, p.Gender, p.NatureID,
		p.Stats, p.NaturalMoves, p.TaughtMoves, p.AbilitySlot,
		p.Experience, p.ExpYield, p.Level, p.CatchRate, p.Shiny, p.OnTeam,
	)
	out, err := scanPokemon(row)
	if err != nil {
		if ve := asValidationError("pokemon", err); ve != nil {
			return nil, ve
		}
		return nil, fmt.Errorf("inserting pokemon: %w", err)
	}
	return out, nil
}

// GetByID retrieves a pokemon by id.
//
// Postcondition: Returns the pokemon or ErrPokemonNotFound.
func (r *PokemonRepository) GetByID(ctx context.Context, id string) (*entity.Pokemon, error) {
	p, err := scanPokemon(r.db.QueryRow(ctx,
		`SELECT `+pokemonColumns+` FROM pokemon WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPokemonNotFound
		}
		return nil, fmt.Errorf("querying pokemon: %w", err)
	}
	return p, nil
}

// ListByTrainer returns a trainer's pokemon ordered by creation time.
func (r *PokemonRepository) ListByTrainer(ctx context.Context, trainerID string) ([]*entity.Pokemon, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+pokemonColumns+` FROM pokemon WHERE trainer_id = $1 ORDER BY created_at ASC`,
		trainerID)
	if err != nil {
		return nil, fmt.Errorf("listing pokemon: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Pokemon, 0)
	for rows.Next() {
		p, err := scanPokemon(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning pokemon row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Transfer reassigns a pokemon to another trainer. Ownership transfer is an
// update of trainer_id only; the pokemon row is never re-created.
func (r *PokemonRepository) Transfer(ctx context.Context, id, newTrainerID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE pokemon SET trainer_id = $2, updated_at = NOW() WHERE id = $1`,
		id, newTrainerID,
	)
	if err != nil {
		return fmt.Errorf("transferring pokemon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPokemonNotFound
	}
	return nil
}

// SetOnTeam updates the pokemon's active-team flag.
func (r *PokemonRepository) SetOnTeam(ctx context.Context, id string, onTeam bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE pokemon SET on_team = $2, updated_at = NOW() WHERE id = $1`,
		id, onTeam,
	)
	if err != nil {
		return fmt.Errorf("updating pokemon team flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPokemonNotFound
	}
	return nil
}

// Delete removes a pokemon.
func (r *PokemonRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM pokemon WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting pokemon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPokemonNotFound
	}
	return nil
}
