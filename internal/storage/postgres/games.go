package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ptaonline/tabletop/internal/game/entity"
)

// GameRepository provides game persistence operations.
type GameRepository struct {
	db *pgxpool.Pool
}

// NewGameRepository creates a GameRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewGameRepository(db *pgxpool.Pool) *GameRepository {
	return &GameRepository{db: db}
}

// Create inserts a new game. The entity is validated before the write; a
// schema rejection from the store surfaces as the same ValidationError.
func (r *GameRepository) Create(ctx context.Context, g *entity.Game) (*entity.Game, error) {
	if err := entity.GameError(g); err != nil {
		return nil, err
	}

	var out entity.Game
	err := r.db.QueryRow(ctx, `
		INSERT INTO games (id, nickname, online, password_hash, npc_ids, log_seq)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, nickname, online, password_hash, npc_ids, log_seq, created_at, updated_at`,
		g.ID, g.Nickname, g.Online, g.PasswordHash, g.NPCIDs, g.LogSeq,
	).Scan(&out.ID, &out.Nickname, &out.Online, &out.PasswordHash,
		&out.NPCIDs, &out.LogSeq, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if ve := asValidationError("game", err); ve != nil {
			return nil, ve
		}
		return nil, fmt.Errorf("inserting game: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a game by id.
//
// Postcondition: Returns the game or ErrGameNotFound.
func (r *GameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	var g entity.Game
	err := r.db.QueryRow(ctx, `
		SELECT id, nickname, online, password_hash, npc_ids, log_seq, created_at, updated_at
		FROM games WHERE id = $1`,
		id,
	).Scan(&g.ID, &g.Nickname, &g.Online, &g.PasswordHash,
		&g.NPCIDs, &g.LogSeq, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("querying game: %w", err)
	}
	return &g, nil
}

// SetOnline updates the game's online flag.
func (r *GameRepository) SetOnline(ctx context.Context, id string, online bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE games SET online = $2, updated_at = NOW() WHERE id = $1`,
		id, online,
	)
	if err != nil {
		return fmt.Errorf("updating game online flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGameNotFound
	}
	return nil
}

// AddNPC appends an NPC id to the game's NPC set.
func (r *GameRepository) AddNPC(ctx context.Context, id, npcID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE games SET npc_ids = CASE
			WHEN $2 = ANY(npc_ids) THEN npc_ids
			ELSE array_append(npc_ids, $2)
		END, updated_at = NOW()
		WHERE id = $1`,
		id, npcID,
	)
	if err != nil {
		return fmt.Errorf("adding npc to game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGameNotFound
	}
	return nil
}

// NextLogSeq advances and returns the game's append-only log sequence.
//
// Postcondition: Each call returns a strictly larger value for the same
// game; the increment is atomic in the store.
func (r *GameRepository) NextLogSeq(ctx context.Context, id string) (int64, error) {
	var seq int64
	err := r.db.QueryRow(ctx,
		`UPDATE games SET log_seq = log_seq + 1, updated_at = NOW()
		 WHERE id = $1 RETURNING log_seq`,
		id,
	).Scan(&seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrGameNotFound
		}
		return 0, fmt.Errorf("advancing game log sequence: %w", err)
	}
	return seq, nil
}

// Delete removes a game. Deletion cascades to the game's trainers and, via
// them, their pokemon.
func (r *GameRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGameNotFound
	}
	return nil
}
