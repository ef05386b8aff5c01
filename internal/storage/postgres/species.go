package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ptaonline/tabletop/internal/dex"
)

// SpeciesRepository stores imported pokedex reference data and implements
// dex.Source for deployments that resolve species locally instead of
// calling the upstream API.
type SpeciesRepository struct {
	db *pgxpool.Pool
}

// NewSpeciesRepository creates a SpeciesRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSpeciesRepository(db *pgxpool.Pool) *SpeciesRepository {
	return &SpeciesRepository{db: db}
}

// Upsert inserts or replaces one species record, keyed by dex number.
func (r *SpeciesRepository) Upsert(ctx context.Context, sp dex.Species) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO species
			(dex_no, name, types, hp, attack, defense, special_attack, special_defense, speed)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (dex_no) DO UPDATE SET
			name = EXCLUDED.name,
			types = EXCLUDED.types,
			hp = EXCLUDED.hp,
			attack = EXCLUDED.attack,
			defense = EXCLUDED.defense,
			special_attack = EXCLUDED.special_attack,
			special_defense = EXCLUDED.special_defense,
			speed = EXCLUDED.speed`,
		sp.DexNo, sp.Name, sp.Types,
		sp.BaseStats.HP, sp.BaseStats.Attack, sp.BaseStats.Defense,
		sp.BaseStats.SpecialAttack, sp.BaseStats.SpecialDefense, sp.BaseStats.Speed,
	)
	if err != nil {
		return fmt.Errorf("upserting species %q: %w", sp.Name, err)
	}
	return nil
}

// Lookup resolves a species by name, case-insensitively.
//
// Postcondition: Returns the species or dex.ErrSpeciesNotFound.
func (r *SpeciesRepository) Lookup(ctx context.Context, name string) (dex.Species, error) {
	var sp dex.Species
	err := r.db.QueryRow(ctx, `
		SELECT dex_no, name, types, hp, attack, defense, special_attack, special_defense, speed
		FROM species WHERE lower(name) = lower($1)`,
		name,
	).Scan(&sp.DexNo, &sp.Name, &sp.Types,
		&sp.BaseStats.HP, &sp.BaseStats.Attack, &sp.BaseStats.Defense,
		&sp.BaseStats.SpecialAttack, &sp.BaseStats.SpecialDefense, &sp.BaseStats.Speed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dex.Species{}, fmt.Errorf("species %q: %w", name, dex.ErrSpeciesNotFound)
		}
		return dex.Species{}, fmt.Errorf("querying species: %w", err)
	}
	return sp, nil
}

// Count returns the number of species records.
func (r *SpeciesRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM species`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting species: %w", err)
	}
	return n, nil
}
