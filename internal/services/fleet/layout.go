package fleet

import (
	"sort"

	"github.com/mcoot/battleship/internal/dependencies/random"
	"github.com/mcoot/battleship/internal/model"
)

// randomAttempts is how many random placements are tried per ship before scanning
const randomAttempts = 50

// ShipLengths returns the length of every ship in a fleet, longest first
func ShipLengths() []int {
	var lengths []int
	for length, count := range Composition {
		for i := 0; i < count; i++ {
			lengths = append(lengths, length)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
	return lengths
}

// RandomLayout generates a valid fleet placement
func RandomLayout(rnd random.Random) *model.PositionField {
	for {
		if field, ok := tryLayout(rnd); ok {
			return field
		}
	}
}

func tryLayout(rnd random.Random) (*model.PositionField, bool) {
	field := model.EmptyPositionField()

	for _, length := range ShipLengths() {
		if !placeRandomly(field, rnd, length) && !placeFirstFit(field, length) {
			return nil, false
		}
	}
	return field, true
}

// placeRandomly tries random origins and orientations for a ship
func placeRandomly(field *model.PositionField, rnd random.Random, length int) bool {
	for attempt := 0; attempt < randomAttempts; attempt++ {
		step := stepRight
		maxRow, maxCol := model.FieldSize, model.FieldSize-length+1
		if rnd.Intn(2) == 1 {
			step = stepDown
			maxRow, maxCol = model.FieldSize-length+1, model.FieldSize
		}
		origin := model.Index{Row: rnd.Intn(maxRow), Col: rnd.Intn(maxCol)}
		if place(field, origin, step, length) {
			return true
		}
	}
	return false
}

// placeFirstFit scans the field row-major for the first free spot
func placeFirstFit(field *model.PositionField, length int) bool {
	for _, origin := range model.Indices() {
		for _, step := range []model.Index{stepRight, stepDown} {
			if place(field, origin, step, length) {
				return true
			}
		}
	}
	return false
}

// place puts a ship on the field if it fits without touching another ship
func place(field *model.PositionField, origin, step model.Index, length int) bool {
	cells := make([]model.Index, 0, length)
	for i, cur := 0, origin; i < length; i, cur = i+1, cur.Add(step) {
		if !model.InRange(cur) || field.At(cur) == model.PositionShip {
			return false
		}
		cells = append(cells, cur)
	}
	for _, n := range SurroundingCells(cells) {
		if field.At(n) == model.PositionShip {
			return false
		}
	}
	for _, c := range cells {
		field.Set(c, model.PositionShip)
	}
	return true
}
