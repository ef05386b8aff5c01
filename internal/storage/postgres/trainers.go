package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ptaonline/tabletop/internal/game/entity"
)

// TrainerRepository provides trainer persistence operations. It implements
// the session store and the builder's trainer directory contracts.
type TrainerRepository struct {
	db *pgxpool.Pool
}

// NewTrainerRepository creates a TrainerRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewTrainerRepository(db *pgxpool.Pool) *TrainerRepository {
	return &TrainerRepository{db: db}
}

const trainerColumns = `id, game_id, name, password_hash,
	hp, attack, defense, special_attack, special_defense, speed, earned_points,
	classes, feats, level, items, online, activity_token, gm, created_at, updated_at`

func scanTrainer(row pgx.Row) (*entity.Trainer, error) {
	var t entity.Trainer
	err := row.Scan(
		&t.ID, &t.GameID, &t.Name, &t.PasswordHash,
		&t.Stats.HP, &t.Stats.Attack, &t.Stats.Defense,
		&t.Stats.SpecialAttack, &t.Stats.SpecialDefense, &t.Stats.Speed,
		&t.Stats.EarnedPoints,
		&t.Classes, &t.Feats, &t.Level, &t.Items,
		&t.Online, &t.ActivityToken, &t.GM,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new trainer. The entity is validated before the write.
//
// Postcondition: Returns the stored trainer, ErrTrainerNameTaken when the
// name is already used in the game, ErrGameAlreadyHasGM when a second GM is
// attempted, or a ValidationError for schema rejections.
func (r *TrainerRepository) Create(ctx context.Context, t *entity.Trainer) (*entity.Trainer, error) {
	if err := entity.TrainerError(t); err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO trainers
			(id, game_id, name, password_hash,
			 hp, attack, defense, special_attack, special_defense, speed, earned_points,
			 classes, feats, level, items, online, activity_token, gm)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING `+trainerColumns,
		t.ID, t.GameID, t.Name, t.PasswordHash,
		t.Stats.HP, t.Stats.Attack, t.Stats.Defense,
		t.Stats.SpecialAttack, t.Stats.SpecialDefense, t.Stats.Speed,
		t.Stats.EarnedPoints,
		t.Classes, t.Feats, t.Level, t.Items,
		t.Online, t.ActivityToken, t.GM,
	)
	out, err := scanTrainer(row)
	if err != nil {
		if constraint, ok := isDuplicateKeyError(err); ok {
			if constraint == "trainers_one_gm_per_game" {
				return nil, ErrGameAlreadyHasGM
			}
			return nil, ErrTrainerNameTaken
		}
		if ve := asValidationError("trainer", err); ve != nil {
			return nil, ve
		}
		return nil, fmt.Errorf("inserting trainer: %w", err)
	}
	return out, nil
}

// GetByID retrieves a trainer by id.
//
// Postcondition: Returns the trainer or ErrTrainerNotFound.
func (r *TrainerRepository) GetByID(ctx context.Context, id string) (*entity.Trainer, error) {
	t, err := scanTrainer(r.db.QueryRow(ctx,
		`SELECT `+trainerColumns+` FROM trainers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, fmt.Errorf("querying trainer: %w", err)
	}
	return t, nil
}

// TrainerByID implements the session store lookup: absence is reported via
// the boolean, not an error, so the authenticator can fail closed without
// conflating it with infrastructure failures.
func (r *TrainerRepository) TrainerByID(ctx context.Context, id string) (*entity.Trainer, bool, error) {
	t, err := r.GetByID(ctx, id)
	if errors.Is(err, ErrTrainerNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// GetByName retrieves a trainer by display name within a game.
func (r *TrainerRepository) GetByName(ctx context.Context, gameID, name string) (*entity.Trainer, error) {
	t, err := scanTrainer(r.db.QueryRow(ctx,
		`SELECT `+trainerColumns+` FROM trainers WHERE game_id = $1 AND name = $2`,
		gameID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, fmt.Errorf("querying trainer by name: %w", err)
	}
	return t, nil
}

// TrainerNameExists reports whether a trainer with the given name already
// exists in the game.
func (r *TrainerRepository) TrainerNameExists(ctx context.Context, gameID, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM trainers WHERE game_id = $1 AND name = $2)`,
		gameID, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking trainer name: %w", err)
	}
	return exists, nil
}

// ListByGame returns all trainers in a game ordered by creation time.
func (r *TrainerRepository) ListByGame(ctx context.Context, gameID string) ([]*entity.Trainer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+trainerColumns+` FROM trainers WHERE game_id = $1 ORDER BY created_at ASC`,
		gameID)
	if err != nil {
		return nil, fmt.Errorf("listing trainers: %w", err)
	}
	defer rows.Close()

	trainers := make([]*entity.Trainer, 0)
	for rows.Next() {
		t, err := scanTrainer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning trainer row: %w", err)
		}
		trainers = append(trainers, t)
	}
	return trainers, rows.Err()
}

// SetTrainerOnline updates the trainer's online flag.
func (r *TrainerRepository) SetTrainerOnline(ctx context.Context, id string, online bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE trainers SET online = $2, updated_at = NOW() WHERE id = $1`,
		id, online,
	)
	if err != nil {
		return fmt.Errorf("updating trainer online flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTrainerNotFound
	}
	return nil
}

// SetActivityToken unconditionally stores a new activity token (login path).
func (r *TrainerRepository) SetActivityToken(ctx context.Context, id, token string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE trainers SET activity_token = $2, updated_at = NOW() WHERE id = $1`,
		id, token,
	)
	if err != nil {
		return fmt.Errorf("storing activity token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTrainerNotFound
	}
	return nil
}

// SwapActivityToken replaces the stored token only when it still equals
// old. This conditional update is the single-writer mechanism for token
// rotation across concurrent verifies and server instances.
//
// Postcondition: Returns (true, nil) when this caller won the swap.
func (r *TrainerRepository) SwapActivityToken(ctx context.Context, id, old, next string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE trainers SET activity_token = $3, updated_at = NOW()
		WHERE id = $1 AND activity_token = $2`,
		id, old, next,
	)
	if err != nil {
		return false, fmt.Errorf("swapping activity token: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GameHasGM reports whether the game has a trainer with the GM flag set.
// The schema's partial unique index guarantees at most one.
func (r *TrainerRepository) GameHasGM(ctx context.Context, gameID string) (bool, error) {
	var has bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM trainers WHERE game_id = $1 AND gm)`,
		gameID,
	).Scan(&has)
	if err != nil {
		return false, fmt.Errorf("checking game master: %w", err)
	}
	return has, nil
}

// AddItem appends an inventory entry. Entries are not deduplicated by name.
func (r *TrainerRepository) AddItem(ctx context.Context, id string, item entity.Item) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE trainers SET items = items || $2::jsonb, updated_at = NOW()
		WHERE id = $1`,
		id, []entity.Item{item},
	)
	if err != nil {
		return fmt.Errorf("adding trainer item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTrainerNotFound
	}
	return nil
}

// Delete removes a trainer. Deletion cascades to the trainer's pokemon.
func (r *TrainerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trainers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting trainer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTrainerNotFound
	}
	return nil
}
