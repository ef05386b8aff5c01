package entity

import (
	"fmt"
	"strings"

	"github.com/ptaonline/tabletop/internal/game/stats"
)

// Violation describes one violated entity rule: the field name, the
// offending value, and the rule that failed.
type Violation struct {
	Field string
	Value any
	Rule  string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (got %v)", v.Field, v.Rule, v.Value)
}

// ValidationError is the single structured failure channel for entity shape
// violations, whether detected in-process or raised by the store on write.
type ValidationError struct {
	Entity     string
	Violations []Violation
}

// Error implements the error interface.
//
// Postcondition: Returns a message naming the entity kind and every
// violated rule, never just the first.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

// Kind returns the error classification used at the persistence boundary.
func (e *ValidationError) Kind() string { return "InvalidEntity" }

// ValidateGame returns every violated game rule (empty slice = valid).
func ValidateGame(g *Game) []Violation {
	var out []Violation
	if len(g.ID) != IDLength {
		out = append(out, Violation{"GameId", g.ID, "must be 36 characters"})
	}
	if l := len(g.Nickname); l < 1 || l > 18 {
		out = append(out, Violation{"Nickname", g.Nickname, "length must be 1-18"})
	}
	if g.PasswordHash == "" {
		out = append(out, Violation{"PasswordHash", g.PasswordHash, "must not be empty"})
	}
	if g.NPCIDs == nil {
		out = append(out, Violation{"NPCIds", nil, "must not be null"})
	}
	for i, id := range g.NPCIDs {
		if len(id) != IDLength {
			out = append(out, Violation{fmt.Sprintf("NPCIds[%d]", i), id, "must be 36 characters"})
		}
	}
	return out
}

// ValidateTrainer returns every violated trainer rule (empty slice = valid).
func ValidateTrainer(t *Trainer) []Violation {
	var out []Violation
	if t.Name == "" {
		out = append(out, Violation{"TrainerName", t.Name, "must not be empty"})
	}
	if t.PasswordHash == "" {
		out = append(out, Violation{"PasswordHash", t.PasswordHash, "must not be empty"})
	}
	if len(t.Classes) > 4 {
		out = append(out, Violation{"TrainerClasses", len(t.Classes), "at most 4"})
	}
	if len(t.Feats) > 36 {
		out = append(out, Violation{"Feats", len(t.Feats), "at most 36"})
	}
	for i, item := range t.Items {
		if item.Name == "" {
			out = append(out, Violation{fmt.Sprintf("Items[%d].Name", i), item.Name, "must not be empty"})
		}
		if item.Amount < 1 {
			out = append(out, Violation{fmt.Sprintf("Items[%d].Amount", i), item.Amount, "must be at least 1"})
		}
	}
	return out
}

// ValidatePokemon returns every violated pokemon rule (empty slice = valid).
// persisting distinguishes the persistence-time shape from the pre-build
// shape: level 0 is a legal placeholder before the build completes but must
// never reach the store, and totals are only checked against their
// components when persisting.
func ValidatePokemon(p *Pokemon, persisting bool) []Violation {
	var out []Violation
	if l := len(p.Nickname); l < 1 || l > 18 {
		out = append(out, Violation{"Nickname", p.Nickname, "length must be 1-18"})
	}
	if p.DexNo < 1 {
		out = append(out, Violation{"DexNo", p.DexNo, "must be at least 1"})
	}
	if p.CatchRate < 0 || p.CatchRate > 255 {
		out = append(out, Violation{"CatchRate", p.CatchRate, "must be 0-255"})
	}
	if p.NatureID < 1 || p.NatureID > stats.NatureCount {
		out = append(out, Violation{"Nature", p.NatureID, fmt.Sprintf("must be 1-%d", stats.NatureCount)})
	}
	if !p.Gender.Valid() {
		out = append(out, Violation{"Gender", p.Gender, "must be Male, Female, or Genderless"})
	}
	if l := len(p.NaturalMoves); l < 1 || l > 4 {
		out = append(out, Violation{"NaturalMoves", l, "count must be 1-4"})
	}
	if len(p.TaughtMoves) > 4 {
		out = append(out, Violation{"TaughtMoves", len(p.TaughtMoves), "at most 4"})
	}
	if p.AbilitySlot < 1 || p.AbilitySlot > 3 {
		out = append(out, Violation{"Ability", p.AbilitySlot, "must be 1-3"})
	}
	if p.Experience < 0 {
		out = append(out, Violation{"Experience", p.Experience, "must not be negative"})
	}
	minLevel := 1
	if !persisting {
		// Level 0 is the pre-build placeholder.
		minLevel = 0
	}
	if p.Level < minLevel || p.Level > 100 {
		out = append(out, Violation{"Level", p.Level, fmt.Sprintf("must be %d-100", minLevel)})
	}
	if persisting {
		names := []string{"HP", "Attack", "Defense", "SpecialAttack", "SpecialDefense", "Speed"}
		for i, b := range p.Stats.Blocks() {
			if b.Total != b.Base+b.Nature+b.Modifier+b.Added {
				out = append(out, Violation{"Stats." + names[i], b.Total, "total must equal component sum"})
			}
		}
	}
	return out
}

// GameError wraps game violations into a ValidationError, or nil if valid.
func GameError(g *Game) error {
	if vs := ValidateGame(g); len(vs) > 0 {
		return &ValidationError{Entity: "game", Violations: vs}
	}
	return nil
}

// TrainerError wraps trainer violations into a ValidationError, or nil if valid.
func TrainerError(t *Trainer) error {
	if vs := ValidateTrainer(t); len(vs) > 0 {
		return &ValidationError{Entity: "trainer", Violations: vs}
	}
	return nil
}

// PokemonError wraps pokemon violations into a ValidationError, or nil if valid.
func PokemonError(p *Pokemon, persisting bool) error {
	if vs := ValidatePokemon(p, persisting); len(vs) > 0 {
		return &ValidationError{Entity: "pokemon", Violations: vs}
	}
	return nil
}
