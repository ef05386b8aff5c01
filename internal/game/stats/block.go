// Package stats defines pokemon stat blocks, total aggregation, and the
// fixed nature modifier table.
package stats

// Block holds the four components of one derived stat plus the computed
// total. Total is never set directly by callers; use Aggregate.
type Block struct {
	Base     int
	Nature   int
	Modifier int
	Added    int
	Total    int
}

// Aggregate recomputes Total from the block's components.
// Idempotent: repeated calls with unchanged components yield the same Total.
//
// Postcondition: b.Total == b.Base + b.Nature + b.Modifier + b.Added.
func (b *Block) Aggregate() {
	b.Total = b.Base + b.Nature + b.Modifier + b.Added
}

// Set holds the six stat blocks of a pokemon.
type Set struct {
	HP             Block
	Attack         Block
	Defense        Block
	SpecialAttack  Block
	SpecialDefense Block
	Speed          Block
}

// Aggregate recomputes the Total of every block in the set. Must be called
// after any component changes and before the set is persisted.
func (s *Set) Aggregate() {
	s.HP.Aggregate()
	s.Attack.Aggregate()
	s.Defense.Aggregate()
	s.SpecialAttack.Aggregate()
	s.SpecialDefense.Aggregate()
	s.Speed.Aggregate()
}

// Blocks returns pointers to all six blocks in a fixed order
// (HP, Attack, Defense, SpecialAttack, SpecialDefense, Speed).
func (s *Set) Blocks() []*Block {
	return []*Block{
		&s.HP, &s.Attack, &s.Defense,
		&s.SpecialAttack, &s.SpecialDefense, &s.Speed,
	}
}
