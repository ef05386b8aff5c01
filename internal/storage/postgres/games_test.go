package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptaonline/tabletop/internal/game/entity"
	"github.com/ptaonline/tabletop/internal/game/session"
	"github.com/ptaonline/tabletop/internal/storage/postgres"
	"github.com/ptaonline/tabletop/internal/testutil"
)

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func makeTestGame(t *testing.T) *entity.Game {
	t.Helper()
	hash, err := session.HashPassword("gamepassword")
	require.NoError(t, err)
	return &entity.Game{
		ID:           uuid.NewString(),
		Nickname:     "Test Table",
		Online:       true,
		PasswordHash: hash,
		NPCIDs:       []string{},
	}
}

func TestGameRepository_CreateAndGet(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewGameRepository(pool)
	ctx := context.Background()

	g := makeTestGame(t)
	created, err := repo.Create(ctx, g)
	require.NoError(t, err)

	assert.Equal(t, g.ID, created.ID)
	assert.Equal(t, "Test Table", created.Nickname)
	assert.True(t, created.Online)
	assert.Empty(t, created.NPCIDs)
	assert.Zero(t, created.LogSeq)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Nickname, got.Nickname)
}

func TestGameRepository_GetMissing(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewGameRepository(pool)

	_, err := repo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, postgres.ErrGameNotFound)
}

func TestGameRepository_SetOnline(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewGameRepository(pool)
	ctx := context.Background()

	g, err := repo.Create(ctx, makeTestGame(t))
	require.NoError(t, err)

	require.NoError(t, repo.SetOnline(ctx, g.ID, false))

	got, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, got.Online)
}

func TestGameRepository_AddNPC(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewGameRepository(pool)
	ctx := context.Background()

	g, err := repo.Create(ctx, makeTestGame(t))
	require.NoError(t, err)

	npcID := uuid.NewString()
	require.NoError(t, repo.AddNPC(ctx, g.ID, npcID))
	// Adding the same NPC again is a no-op, not a duplicate entry.
	require.NoError(t, repo.AddNPC(ctx, g.ID, npcID))

	got, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{npcID}, got.NPCIDs)

	err = repo.AddNPC(ctx, uuid.NewString(), npcID)
	assert.ErrorIs(t, err, postgres.ErrGameNotFound)
}

func TestGameRepository_NextLogSeq(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewGameRepository(pool)
	ctx := context.Background()

	g, err := repo.Create(ctx, makeTestGame(t))
	require.NoError(t, err)

	first, err := repo.NextLogSeq(ctx, g.ID)
	require.NoError(t, err)
	second, err := repo.NextLogSeq(ctx, g.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}

func TestGameRepository_DeleteCascadesTrainers(t *testing.T) {
	pool := testutil.NewPool(t)
	games := postgres.NewGameRepository(pool)
	trainers := postgres.NewTrainerRepository(pool)
	ctx := context.Background()

	g, err := games.Create(ctx, makeTestGame(t))
	require.NoError(t, err)

	tr, err := trainers.Create(ctx, makeTestTrainer(t, g.ID, uniqueName("ash")))
	require.NoError(t, err)

	require.NoError(t, games.Delete(ctx, g.ID))

	_, err = games.GetByID(ctx, g.ID)
	assert.ErrorIs(t, err, postgres.ErrGameNotFound)
	_, err = trainers.GetByID(ctx, tr.ID)
	assert.ErrorIs(t, err, postgres.ErrTrainerNotFound)
}
