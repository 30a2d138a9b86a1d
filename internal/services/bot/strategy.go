package bot

import (
	"fmt"

	"github.com/mcoot/battleship/internal/dependencies/random"
	"github.com/mcoot/battleship/internal/model"
)

// Strategy chooses where to fire next
type Strategy interface {
	// ChooseTarget picks an unattacked cell, or false if none is left
	ChooseTarget(attacks model.Matrix[model.AttackCell]) (model.Index, bool)
}

// Strategy names
const (
	StrategyRandom = "random"
	StrategyHunt   = "hunt"
)

// New returns the strategy registered under name
func New(name string, rnd random.Random) (Strategy, error) {
	switch name {
	case StrategyRandom:
		return NewRandomStrategy(rnd), nil
	case StrategyHunt, "":
		return NewHuntStrategy(rnd), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// emptyCells returns every unattacked index in row-major order
func emptyCells(attacks model.Matrix[model.AttackCell]) []model.Index {
	var empty []model.Index
	for _, i := range model.Indices() {
		if attacks[i.Row][i.Col] == model.AttackEmpty {
			empty = append(empty, i)
		}
	}
	return empty
}
