package importer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ptaonline/tabletop/internal/dex"
)

// SpeciesWriter is the store surface the importer writes through.
// Satisfied by the postgres species repository.
type SpeciesWriter interface {
	Upsert(ctx context.Context, sp dex.Species) error
}

// Importer orchestrates species import from a Source into a SpeciesWriter.
type Importer struct {
	source Source
	store  SpeciesWriter
	logger *zap.Logger
}

// New constructs an Importer.
//
// Precondition: source, store, and logger must be non-nil.
func New(source Source, store SpeciesWriter, logger *zap.Logger) *Importer {
	return &Importer{source: source, store: store, logger: logger}
}

// Run loads species from dir, validates each, and upserts them into the
// store. Re-running over the same files is idempotent.
//
// Postcondition: returns the number of species written, or an error naming
// the first invalid entry or failed write.
func (imp *Importer) Run(ctx context.Context, dir string) (int, error) {
	start := time.Now()

	species, err := imp.source.Load(dir)
	if err != nil {
		return 0, fmt.Errorf("loading species: %w", err)
	}

	seen := make(map[int]string, len(species))
	for _, sp := range species {
		if err := validateSpecies(sp); err != nil {
			return 0, err
		}
		if prior, dup := seen[sp.DexNo]; dup {
			return 0, fmt.Errorf("species %q and %q share dex number %d", prior, sp.Name, sp.DexNo)
		}
		seen[sp.DexNo] = sp.Name
	}

	for i, sp := range species {
		if err := imp.store.Upsert(ctx, sp); err != nil {
			return i, fmt.Errorf("writing species %q: %w", sp.Name, err)
		}
	}

	imp.logger.Info("species import complete",
		zap.Int("count", len(species)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return len(species), nil
}

func validateSpecies(sp dex.Species) error {
	if sp.DexNo < 1 {
		return fmt.Errorf("species %q: dex number must be >= 1, got %d", sp.Name, sp.DexNo)
	}
	if sp.Name == "" {
		return fmt.Errorf("species with dex number %d has no name", sp.DexNo)
	}
	for _, stat := range []struct {
		name  string
		value int
	}{
		{"hp", sp.BaseStats.HP},
		{"attack", sp.BaseStats.Attack},
		{"defense", sp.BaseStats.Defense},
		{"special_attack", sp.BaseStats.SpecialAttack},
		{"special_defense", sp.BaseStats.SpecialDefense},
		{"speed", sp.BaseStats.Speed},
	} {
		if stat.value < 1 || stat.value > 255 {
			return fmt.Errorf("species %q: %s must be 1-255, got %d", sp.Name, stat.name, stat.value)
		}
	}
	return nil
}
