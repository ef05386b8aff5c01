package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptaonline/tabletop/internal/game/entity"
	"github.com/ptaonline/tabletop/internal/game/stats"
	"github.com/ptaonline/tabletop/internal/storage/postgres"
	"github.com/ptaonline/tabletop/internal/testutil"
)

func makeTestPokemon(trainerID string) *entity.Pokemon {
	var set stats.Set
	set.HP.Base = 5
	set.Attack.Base = 5
	set.Defense.Base = 5
	set.SpecialAttack.Base = 4
	set.SpecialDefense.Base = 6
	set.Speed.Base = 5
	set.SpecialAttack.Nature = 2
	set.Attack.Nature = -2
	set.Aggregate()

	return &entity.Pokemon{
		ID:           uuid.NewString(),
		TrainerID:    trainerID,
		DexNo:        133,
		Nickname:     "Eevee",
		Gender:       entity.Female,
		NatureID:     16,
		Stats:        set,
		NaturalMoves: []string{"Tackle", "Growl"},
		TaughtMoves:  []string{},
		AbilitySlot:  1,
		Experience:   0,
		ExpYield:     65,
		Level:        5,
		CatchRate:    45,
	}
}

type pokemonFixture struct {
	pokemon  *postgres.PokemonRepository
	trainers *postgres.TrainerRepository
	gameID   string
}

func setupPokemonRepos(t *testing.T) (*pokemonFixture, string) {
	t.Helper()
	pool := testutil.NewPool(t)
	games := postgres.NewGameRepository(pool)
	trainers := postgres.NewTrainerRepository(pool)
	ctx := context.Background()

	g, err := games.Create(ctx, makeTestGame(t))
	require.NoError(t, err)
	tr, err := trainers.Create(ctx, makeTestTrainer(t, g.ID, "Ash"))
	require.NoError(t, err)

	f := &pokemonFixture{
		pokemon:  postgres.NewPokemonRepository(pool),
		trainers: trainers,
		gameID:   g.ID,
	}
	return f, tr.ID
}

func TestPokemonRepository_CreateAndGet(t *testing.T) {
	f, trainerID := setupPokemonRepos(t)
	repo := f.pokemon
	ctx := context.Background()

	p := makeTestPokemon(trainerID)
	created, err := repo.Create(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, p.ID, created.ID)
	assert.Equal(t, trainerID, created.TrainerID)
	assert.Equal(t, 133, created.DexNo)
	assert.Equal(t, entity.Female, created.Gender)
	assert.Equal(t, 16, created.NatureID)
	assert.Equal(t, 5, created.Stats.HP.Total)
	assert.Equal(t, 3, created.Stats.Attack.Total)
	assert.Equal(t, 6, created.Stats.SpecialAttack.Total)
	assert.Equal(t, []string{"Tackle", "Growl"}, created.NaturalMoves)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Stats, got.Stats)
}

func TestPokemonRepository_CreateRejectsStaleTotals(t *testing.T) {
	f, trainerID := setupPokemonRepos(t)
	repo := f.pokemon

	p := makeTestPokemon(trainerID)
	p.Stats.HP.Added = 3 // total no longer matches its components

	_, err := repo.Create(context.Background(), p)
	require.Error(t, err)

	var ve *entity.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestPokemonRepository_GetMissing(t *testing.T) {
	f, _ := setupPokemonRepos(t)
	repo := f.pokemon

	_, err := repo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, postgres.ErrPokemonNotFound)
}

func TestPokemonRepository_ListByTrainer(t *testing.T) {
	f, trainerID := setupPokemonRepos(t)
	repo := f.pokemon
	ctx := context.Background()

	first := makeTestPokemon(trainerID)
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	second := makeTestPokemon(trainerID)
	second.Nickname = "Flareon"
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	list, err := repo.ListByTrainer(ctx, trainerID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Eevee", list[0].Nickname)
	assert.Equal(t, "Flareon", list[1].Nickname)
}

func TestPokemonRepository_Transfer(t *testing.T) {
	f, trainerID := setupPokemonRepos(t)
	repo := f.pokemon
	ctx := context.Background()

	p, err := repo.Create(ctx, makeTestPokemon(trainerID))
	require.NoError(t, err)

	other, err := f.trainers.Create(ctx, makeTestTrainer(t, f.gameID, "Misty"))
	require.NoError(t, err)

	require.NoError(t, repo.Transfer(ctx, p.ID, other.ID))

	moved, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, moved.TrainerID)
	// Identity and stats survive the transfer untouched.
	assert.Equal(t, p.ID, moved.ID)
	assert.Equal(t, p.Stats, moved.Stats)
}

func TestPokemonRepository_SetOnTeam(t *testing.T) {
	f, trainerID := setupPokemonRepos(t)
	repo := f.pokemon
	ctx := context.Background()

	p, err := repo.Create(ctx, makeTestPokemon(trainerID))
	require.NoError(t, err)
	assert.False(t, p.OnTeam)

	require.NoError(t, repo.SetOnTeam(ctx, p.ID, true))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.OnTeam)
}

func TestPokemonRepository_TrainerDeleteCascades(t *testing.T) {
	f, trainerID := setupPokemonRepos(t)
	repo := f.pokemon
	ctx := context.Background()

	p, err := repo.Create(ctx, makeTestPokemon(trainerID))
	require.NoError(t, err)

	require.NoError(t, f.trainers.Delete(ctx, trainerID))

	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, postgres.ErrPokemonNotFound)
}
