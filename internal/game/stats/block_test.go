package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ptaonline/tabletop/internal/game/stats"
)

func TestAggregate_SumsComponents(t *testing.T) {
	b := stats.Block{Base: 5, Nature: 2, Modifier: 1, Added: 3}
	b.Aggregate()
	assert.Equal(t, 11, b.Total)
}

func TestAggregate_OverwritesStaleTotal(t *testing.T) {
	b := stats.Block{Base: 4, Total: 99}
	b.Aggregate()
	assert.Equal(t, 4, b.Total)

	b.Added = 2
	b.Aggregate()
	assert.Equal(t, 6, b.Total)
}

func TestSetAggregate_AllSixBlocks(t *testing.T) {
	var s stats.Set
	for i, b := range s.Blocks() {
		b.Base = i + 1
	}
	s.Aggregate()
	assert.Equal(t, 1, s.HP.Total)
	assert.Equal(t, 2, s.Attack.Total)
	assert.Equal(t, 3, s.Defense.Total)
	assert.Equal(t, 4, s.SpecialAttack.Total)
	assert.Equal(t, 5, s.SpecialDefense.Total)
	assert.Equal(t, 6, s.Speed.Total)
}

// Property: Total always equals the component sum, and aggregation is
// idempotent under repeated application.
func TestAggregate_SumAndIdempotence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		b := stats.Block{
			Base:     rapid.IntRange(-50, 50).Draw(rt, "base"),
			Nature:   rapid.IntRange(-2, 2).Draw(rt, "nature"),
			Modifier: rapid.IntRange(-10, 10).Draw(rt, "modifier"),
			Added:    rapid.IntRange(0, 30).Draw(rt, "added"),
		}
		b.Aggregate()
		want := b.Base + b.Nature + b.Modifier + b.Added
		if b.Total != want {
			rt.Fatalf("Total %d != %d", b.Total, want)
		}
		b.Aggregate()
		if b.Total != want {
			rt.Fatalf("second Aggregate changed Total to %d", b.Total)
		}
	})
}

func TestNatureTable_Complete(t *testing.T) {
	all := stats.Natures()
	require.Len(t, all, stats.NatureCount)
	seen := make(map[string]bool, len(all))
	for i, n := range all {
		assert.Equal(t, i+1, n.ID)
		assert.False(t, seen[n.Name], "duplicate nature %q", n.Name)
		seen[n.Name] = true
	}
}

func TestNatureByName_CaseInsensitive(t *testing.T) {
	n, ok := stats.NatureByName("modest")
	require.True(t, ok)
	assert.Equal(t, "Modest", n.Name)
	assert.Equal(t, 2, n.SpecialAttack)
	assert.Equal(t, -2, n.Attack)
}

func TestNatureByName_Unknown(t *testing.T) {
	_, ok := stats.NatureByName("NotANature")
	assert.False(t, ok)
}

func TestNatureByID_Bounds(t *testing.T) {
	_, ok := stats.NatureByID(0)
	assert.False(t, ok)
	_, ok = stats.NatureByID(stats.NatureCount + 1)
	assert.False(t, ok)
	n, ok := stats.NatureByID(1)
	require.True(t, ok)
	assert.Equal(t, "Hardy", n.Name)
}

func TestNatureApply_HPAlwaysZero(t *testing.T) {
	for _, n := range stats.Natures() {
		var s stats.Set
		s.HP.Nature = 7 // stale value must be cleared
		n.Apply(&s)
		assert.Zero(t, s.HP.Nature, "nature %s", n.Name)
		assert.Equal(t, n.Attack, s.Attack.Nature)
		assert.Equal(t, n.Speed, s.Speed.Nature)
	}
}
