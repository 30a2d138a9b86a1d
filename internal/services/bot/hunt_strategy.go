package bot

import (
	"github.com/mcoot/battleship/internal/dependencies/random"
	"github.com/mcoot/battleship/internal/model"
)

var orthogonal = []model.Index{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}

// HuntStrategy finishes damaged ships before searching at random
// Sunk ships are ringed with misses by the server, so any hit with an
// unattacked orthogonal neighbour belongs to a ship still afloat
type HuntStrategy struct {
	random random.Random
	search *RandomStrategy
}

// NewHuntStrategy creates a new HuntStrategy
func NewHuntStrategy(rnd random.Random) *HuntStrategy {
	return &HuntStrategy{random: rnd, search: NewRandomStrategy(rnd)}
}

// ChooseTarget extends a damaged ship if there is one, else searches
func (s *HuntStrategy) ChooseTarget(attacks model.Matrix[model.AttackCell]) (model.Index, bool) {
	if targets := s.targets(attacks); len(targets) > 0 {
		return targets[s.random.Intn(len(targets))], true
	}
	return s.search.ChooseTarget(attacks)
}

// targets lists unattacked cells next to hits, preferring the line of a multi-cell hit
func (s *HuntStrategy) targets(attacks model.Matrix[model.AttackCell]) []model.Index {
	at := func(i model.Index) model.AttackCell {
		if !model.InRange(i) {
			return model.AttackMiss
		}
		return attacks[i.Row][i.Col]
	}

	var inLine, adjacent []model.Index
	seen := make(map[model.Index]bool)

	for _, i := range model.Indices() {
		if at(i) != model.AttackHit {
			continue
		}
		for _, d := range orthogonal {
			next := i.Add(d)
			if at(next) != model.AttackEmpty || seen[next] {
				continue
			}
			seen[next] = true

			// A hit on the opposite side means next continues a known line
			back := model.Index{Row: i.Row - d.Row, Col: i.Col - d.Col}
			if at(back) == model.AttackHit {
				inLine = append(inLine, next)
			} else {
				adjacent = append(adjacent, next)
			}
		}
	}

	if len(inLine) > 0 {
		return inLine
	}
	return adjacent
}
