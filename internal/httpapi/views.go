package httpapi

import (
	"github.com/ptaonline/tabletop/internal/game/entity"
	"github.com/ptaonline/tabletop/internal/game/stats"
)

// Response views. Password hashes and activity tokens never leave the
// server in a body; the activity token travels only as a cookie.

type gameView struct {
	ID       string   `json:"id"`
	Nickname string   `json:"nickname"`
	Online   bool     `json:"online"`
	NPCIDs   []string `json:"npcIds"`
}

func newGameView(g *entity.Game) gameView {
	return gameView{
		ID:       g.ID,
		Nickname: g.Nickname,
		Online:   g.Online,
		NPCIDs:   g.NPCIDs,
	}
}

type trainerStatsView struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
	Speed          int `json:"speed"`
	EarnedPoints   int `json:"earnedPoints"`
}

type itemView struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

type trainerView struct {
	ID      string           `json:"id"`
	GameID  string           `json:"gameId"`
	Name    string           `json:"name"`
	Stats   trainerStatsView `json:"stats"`
	Classes []string         `json:"classes"`
	Feats   []string         `json:"feats"`
	Level   int              `json:"level"`
	Items   []itemView       `json:"items"`
	Online  bool             `json:"online"`
	GM      bool             `json:"gm"`
}

func newTrainerView(t *entity.Trainer) trainerView {
	items := make([]itemView, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, itemView{Name: it.Name, Amount: it.Amount})
	}
	return trainerView{
		ID:     t.ID,
		GameID: t.GameID,
		Name:   t.Name,
		Stats: trainerStatsView{
			HP:             t.Stats.HP,
			Attack:         t.Stats.Attack,
			Defense:        t.Stats.Defense,
			SpecialAttack:  t.Stats.SpecialAttack,
			SpecialDefense: t.Stats.SpecialDefense,
			Speed:          t.Stats.Speed,
			EarnedPoints:   t.Stats.EarnedPoints,
		},
		Classes: t.Classes,
		Feats:   t.Feats,
		Level:   t.Level,
		Items:   items,
		Online:  t.Online,
		GM:      t.GM,
	}
}

type statBlockView struct {
	Base     int `json:"base"`
	Nature   int `json:"nature"`
	Modifier int `json:"modifier"`
	Added    int `json:"added"`
	Total    int `json:"total"`
}

func newStatBlockView(b stats.Block) statBlockView {
	return statBlockView{
		Base:     b.Base,
		Nature:   b.Nature,
		Modifier: b.Modifier,
		Added:    b.Added,
		Total:    b.Total,
	}
}

type pokemonView struct {
	ID           string        `json:"id"`
	TrainerID    string        `json:"trainerId"`
	DexNo        int           `json:"dexNo"`
	Nickname     string        `json:"nickname"`
	Gender       string        `json:"gender"`
	NatureID     int           `json:"natureId"`
	HP           statBlockView `json:"hp"`
	Attack       statBlockView `json:"attack"`
	Defense      statBlockView `json:"defense"`
	SpAttack     statBlockView `json:"specialAttack"`
	SpDefense    statBlockView `json:"specialDefense"`
	Speed        statBlockView `json:"speed"`
	NaturalMoves []string      `json:"naturalMoves"`
	TaughtMoves  []string      `json:"taughtMoves"`
	AbilitySlot  int           `json:"abilitySlot"`
	Experience   int           `json:"experience"`
	ExpYield     int           `json:"expYield"`
	Level        int           `json:"level"`
	CatchRate    int           `json:"catchRate"`
	Shiny        bool          `json:"shiny"`
	OnTeam       bool          `json:"onTeam"`
}

func newPokemonView(p *entity.Pokemon) pokemonView {
	return pokemonView{
		ID:           p.ID,
		TrainerID:    p.TrainerID,
		DexNo:        p.DexNo,
		Nickname:     p.Nickname,
		Gender:       string(p.Gender),
		NatureID:     p.NatureID,
		HP:           newStatBlockView(p.Stats.HP),
		Attack:       newStatBlockView(p.Stats.Attack),
		Defense:      newStatBlockView(p.Stats.Defense),
		SpAttack:     newStatBlockView(p.Stats.SpecialAttack),
		SpDefense:    newStatBlockView(p.Stats.SpecialDefense),
		Speed:        newStatBlockView(p.Stats.Speed),
		NaturalMoves: p.NaturalMoves,
		TaughtMoves:  p.TaughtMoves,
		AbilitySlot:  p.AbilitySlot,
		Experience:   p.Experience,
		ExpYield:     p.ExpYield,
		Level:        p.Level,
		CatchRate:    p.CatchRate,
		Shiny:        p.Shiny,
		OnTeam:       p.OnTeam,
	}
}
