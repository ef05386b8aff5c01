// Package entity defines the game, trainer, and pokemon domain models and
// the rule set that decides their valid shape.
package entity

import (
	"time"

	"github.com/ptaonline/tabletop/internal/game/stats"
)

// IDLength is the length of every entity identifier (UUID string form).
const IDLength = 36

// Game is a play session. It owns its trainers by GameID reference and its
// NPCs by id membership in NPCIDs; the ID is stable for the game's lifetime.
type Game struct {
	ID           string
	Nickname     string
	Online       bool
	PasswordHash string
	// NPCIDs must be non-nil; an empty set is a game with no NPCs.
	NPCIDs []string
	// LogSeq is the append-only session log sequence number.
	LogSeq int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TrainerStats holds the six raw ability scores plus the earned-point pool.
type TrainerStats struct {
	HP             int
	Attack         int
	Defense        int
	SpecialAttack  int
	SpecialDefense int
	Speed          int
	EarnedPoints   int
}

// DefaultTrainerStats returns the creation-time defaults: every score at 6
// with a pool of 64 points to spend.
func DefaultTrainerStats() TrainerStats {
	return TrainerStats{
		HP: 6, Attack: 6, Defense: 6,
		SpecialAttack: 6, SpecialDefense: 6, Speed: 6,
		EarnedPoints: 64,
	}
}

// Item is one inventory entry. Amounts are positive; entries are not
// deduplicated by name.
type Item struct {
	Name   string
	Amount int
}

// Trainer is a player-controlled character within a game.
type Trainer struct {
	ID           string
	GameID       string
	Name         string
	PasswordHash string

	Stats   TrainerStats
	Classes []string
	Feats   []string
	Level   int
	Items   []Item

	// Online and ActivityToken mutate on every login/logout/verify cycle.
	// ActivityToken may be empty before the first login.
	Online        bool
	ActivityToken string
	GM            bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NPC has the trainer shape minus authentication fields. NPCs belong to a
// game only through membership in that game's NPCIDs set.
type NPC struct {
	ID   string
	Name string

	Stats   TrainerStats
	Classes []string
	Feats   []string
	Level   int
	Items   []Item

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Gender is one of the three defined pokemon genders.
type Gender string

const (
	Male       Gender = "Male"
	Female     Gender = "Female"
	Genderless Gender = "Genderless"
)

// Valid reports whether g is one of the defined genders.
func (g Gender) Valid() bool {
	switch g {
	case Male, Female, Genderless:
		return true
	}
	return false
}

// Pokemon is a creature owned by a trainer. Ownership transfer is an update
// of TrainerID only; the pokemon is never re-created.
type Pokemon struct {
	ID        string
	TrainerID string

	DexNo    int
	Nickname string
	Gender   Gender
	NatureID int
	Stats    stats.Set

	NaturalMoves []string
	TaughtMoves  []string
	AbilitySlot  int

	Experience int
	ExpYield   int
	Level      int
	CatchRate  int
	Shiny      bool
	OnTeam     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
