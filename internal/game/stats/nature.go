package stats

import "strings"

// NatureCount is the number of defined natures. Nature IDs run 1..NatureCount.
const NatureCount = 35

// Nature is one of the fixed stat-modifier profiles applied at pokemon
// creation. Deltas apply to the five non-HP stats; HP never carries a
// nature modifier.
type Nature struct {
	ID   int
	Name string

	Attack         int
	Defense        int
	SpecialAttack  int
	SpecialDefense int
	Speed          int
}

// Apply writes the nature's deltas into the Nature component of each block
// in the set. The HP block's Nature component is always zero.
//
// Postcondition: totals are stale until s.Aggregate is called.
func (n Nature) Apply(s *Set) {
	s.HP.Nature = 0
	s.Attack.Nature = n.Attack
	s.Defense.Nature = n.Defense
	s.SpecialAttack.Nature = n.SpecialAttack
	s.SpecialDefense.Nature = n.SpecialDefense
	s.Speed.Nature = n.Speed
}

// natures is the fixed table, indexed by ID-1. The first 25 entries follow
// the classic raise/lower pairs at +2/-2; the last 10 are tabletop
// temperaments that trade a point across two stats each.
var natures = []Nature{
	{ID: 1, Name: "Hardy"},
	{ID: 2, Name: "Lonely", Attack: 2, Defense: -2},
	{ID: 3, Name: "Brave", Attack: 2, Speed: -2},
	{ID: 4, Name: "Adamant", Attack: 2, SpecialAttack: -2},
	{ID: 5, Name: "Naughty", Attack: 2, SpecialDefense: -2},
	{ID: 6, Name: "Bold", Defense: 2, Attack: -2},
	{ID: 7, Name: "Docile"},
	{ID: 8, Name: "Relaxed", Defense: 2, Speed: -2},
	{ID: 9, Name: "Impish", Defense: 2, SpecialAttack: -2},
	{ID: 10, Name: "Lax", Defense: 2, SpecialDefense: -2},
	{ID: 11, Name: "Timid", Speed: 2, Attack: -2},
	{ID: 12, Name: "Hasty", Speed: 2, Defense: -2},
	{ID: 13, Name: "Serious"},
	{ID: 14, Name: "Jolly", Speed: 2, SpecialAttack: -2},
	{ID: 15, Name: "Naive", Speed: 2, SpecialDefense: -2},
	{ID: 16, Name: "Modest", SpecialAttack: 2, Attack: -2},
	{ID: 17, Name: "Mild", SpecialAttack: 2, Defense: -2},
	{ID: 18, Name: "Quiet", SpecialAttack: 2, Speed: -2},
	{ID: 19, Name: "Bashful"},
	{ID: 20, Name: "Rash", SpecialAttack: 2, SpecialDefense: -2},
	{ID: 21, Name: "Calm", SpecialDefense: 2, Attack: -2},
	{ID: 22, Name: "Gentle", SpecialDefense: 2, Defense: -2},
	{ID: 23, Name: "Sassy", SpecialDefense: 2, Speed: -2},
	{ID: 24, Name: "Careful", SpecialDefense: 2, SpecialAttack: -2},
	{ID: 25, Name: "Quirky"},
	{ID: 26, Name: "Composed", Defense: 1, SpecialDefense: 1, Attack: -1, Speed: -1},
	{ID: 27, Name: "Curious", SpecialAttack: 1, Speed: 1, Defense: -1, SpecialDefense: -1},
	{ID: 28, Name: "Daring", Attack: 1, Speed: 1, Defense: -1, SpecialDefense: -1},
	{ID: 29, Name: "Dogged", Attack: 1, Defense: 1, SpecialAttack: -1, Speed: -1},
	{ID: 30, Name: "Dreamy", SpecialAttack: 1, SpecialDefense: 1, Attack: -1, Defense: -1},
	{ID: 31, Name: "Patient", Defense: 1, SpecialDefense: 1, SpecialAttack: -1, Speed: -1},
	{ID: 32, Name: "Proud", Attack: 1, SpecialAttack: 1, Defense: -1, SpecialDefense: -1},
	{ID: 33, Name: "Sly", Speed: 1, SpecialDefense: 1, Attack: -1, Defense: -1},
	{ID: 34, Name: "Stoic", Defense: 1, Attack: 1, Speed: -1, SpecialAttack: -1},
	{ID: 35, Name: "Vain", Speed: 1, SpecialAttack: 1, Attack: -1, Defense: -1},
}

// Natures returns the full nature table in ID order.
func Natures() []Nature {
	out := make([]Nature, len(natures))
	copy(out, natures)
	return out
}

// NatureByID returns the nature with the given ID.
//
// Postcondition: Returns (nature, true) when 1 <= id <= NatureCount.
func NatureByID(id int) (Nature, bool) {
	if id < 1 || id > NatureCount {
		return Nature{}, false
	}
	return natures[id-1], true
}

// NatureByName returns the nature with the given name, matched
// case-insensitively.
func NatureByName(name string) (Nature, bool) {
	for _, n := range natures {
		if strings.EqualFold(n.Name, name) {
			return n, true
		}
	}
	return Nature{}, false
}
