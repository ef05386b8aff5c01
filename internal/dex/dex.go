// Package dex provides species reference data: the domain types, the Source
// lookup contract, and an HTTP client for a PokeAPI-shaped endpoint.
package dex

import (
	"context"
	"errors"
)

// ErrSpeciesNotFound is returned when a species lookup yields no results.
var ErrSpeciesNotFound = errors.New("species not found")

// BaseStats holds a species' six base stats on the upstream 0-255 scale.
type BaseStats struct {
	HP             int
	Attack         int
	Defense        int
	SpecialAttack  int
	SpecialDefense int
	Speed          int
}

// Species is one pokedex entry.
type Species struct {
	// DexNo is the national dex number (>= 1).
	DexNo     int
	Name      string
	Types     []string
	BaseStats BaseStats
}

// Source resolves a species by name. Implementations must honor ctx
// cancellation so a slow upstream cannot wedge the caller.
type Source interface {
	Lookup(ctx context.Context, name string) (Species, error)
}
