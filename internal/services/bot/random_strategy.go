package bot

import (
	"github.com/mcoot/battleship/internal/dependencies/random"
	"github.com/mcoot/battleship/internal/model"
)

// RandomStrategy fires at a random unattacked cell
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseTarget picks uniformly among unattacked cells
func (s *RandomStrategy) ChooseTarget(attacks model.Matrix[model.AttackCell]) (model.Index, bool) {
	empty := emptyCells(attacks)
	if len(empty) == 0 {
		return model.Index{}, false
	}
	return empty[s.random.Intn(len(empty))], true
}
