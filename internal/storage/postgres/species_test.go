package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptaonline/tabletop/internal/dex"
	"github.com/ptaonline/tabletop/internal/storage/postgres"
	"github.com/ptaonline/tabletop/internal/testutil"
)

func eeveeSpecies() dex.Species {
	return dex.Species{
		DexNo: 133,
		Name:  "Eevee",
		Types: []string{"normal"},
		BaseStats: dex.BaseStats{
			HP: 55, Attack: 55, Defense: 50,
			SpecialAttack: 45, SpecialDefense: 65, Speed: 55,
		},
	}
}

func TestSpeciesRepository_UpsertAndLookup(t *testing.T) {
	repo := postgres.NewSpeciesRepository(testutil.NewPool(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, eeveeSpecies()))

	got, err := repo.Lookup(ctx, "eevee")
	require.NoError(t, err)
	assert.Equal(t, 133, got.DexNo)
	assert.Equal(t, "Eevee", got.Name)
	assert.Equal(t, 55, got.BaseStats.HP)
	assert.Equal(t, 45, got.BaseStats.SpecialAttack)
}

func TestSpeciesRepository_LookupIsCaseInsensitive(t *testing.T) {
	repo := postgres.NewSpeciesRepository(testutil.NewPool(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, eeveeSpecies()))

	for _, name := range []string{"Eevee", "EEVEE", "eEvEe"} {
		got, err := repo.Lookup(ctx, name)
		require.NoError(t, err, "lookup %q", name)
		assert.Equal(t, 133, got.DexNo)
	}
}

func TestSpeciesRepository_UpsertReplaces(t *testing.T) {
	repo := postgres.NewSpeciesRepository(testutil.NewPool(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, eeveeSpecies()))

	updated := eeveeSpecies()
	updated.BaseStats.Speed = 60
	require.NoError(t, repo.Upsert(ctx, updated))

	got, err := repo.Lookup(ctx, "Eevee")
	require.NoError(t, err)
	assert.Equal(t, 60, got.BaseStats.Speed)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSpeciesRepository_LookupMissing(t *testing.T) {
	repo := postgres.NewSpeciesRepository(testutil.NewPool(t))

	_, err := repo.Lookup(context.Background(), "MissingNo")
	assert.ErrorIs(t, err, dex.ErrSpeciesNotFound)
}
