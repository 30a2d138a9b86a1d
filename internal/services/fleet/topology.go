package fleet

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mcoot/battleship/internal/model"
)

// MaxShipLength is the length of the longest ship in a fleet
const MaxShipLength = 4

// Composition maps ship length to the number of ships of that length in a fleet
var Composition = map[int]int{1: 4, 2: 3, 3: 2, 4: 1}

// Reasons a layout is rejected; each wraps model.ErrInvalidField
var (
	ErrNotStraight      = fmt.Errorf("%w: ship cells do not form straight lines", model.ErrInvalidField)
	ErrShipsTouching    = fmt.Errorf("%w: ships touch each other", model.ErrInvalidField)
	ErrWrongComposition = fmt.Errorf("%w: fleet composition is wrong", model.ErrInvalidField)
)

var (
	stepRight = model.Index{Col: 1}
	stepDown  = model.Index{Row: 1}
)

// ExtractShips returns every straight run of ship cells in row-major order of first cell
// Orientation is chosen per starting cell: the next cell in the row first, then the column
func ExtractShips(field *model.PositionField) []model.Ship {
	visited := make(map[model.Index]bool)
	var ships []model.Ship

	for _, start := range model.Indices() {
		if visited[start] || field.At(start) != model.PositionShip {
			continue
		}

		step := stepDown
		if field.At(start.Add(stepRight)) == model.PositionShip {
			step = stepRight
		}

		var ship model.Ship
		for cur := start; field.At(cur) == model.PositionShip && !visited[cur]; cur = cur.Add(step) {
			visited[cur] = true
			ship = append(ship, cur)
		}
		ships = append(ships, ship)
	}

	return ships
}

// SurroundingCells returns the 8-neighbourhood of cells, excluding the cells themselves
// and anything outside the field, in row-major order
func SurroundingCells(cells []model.Index) []model.Index {
	inside := make(map[model.Index]bool, len(cells))
	for _, c := range cells {
		inside[c] = true
	}

	ring := make(map[model.Index]bool)
	for _, c := range cells {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				n := c.Add(model.Index{Row: dr, Col: dc})
				if model.InRange(n) && !inside[n] {
					ring[n] = true
				}
			}
		}
	}

	result := make([]model.Index, 0, len(ring))
	for n := range ring {
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Row != result[j].Row {
			return result[i].Row < result[j].Row
		}
		return result[i].Col < result[j].Col
	})
	return result
}

// HasNoAdjacentGaps returns true if no ship touches another, including diagonally
func HasNoAdjacentGaps(ships []model.Ship) bool {
	owner := make(map[model.Index]int)
	for i, ship := range ships {
		for _, c := range ship {
			owner[c] = i
		}
	}

	for i, ship := range ships {
		for _, n := range SurroundingCells(ship) {
			if j, ok := owner[n]; ok && j != i {
				return false
			}
		}
	}
	return true
}

// Check validates a layout and returns the first reason it is rejected
func Check(field *model.PositionField) error {
	for _, cluster := range clusters(field) {
		if !isStraight(cluster) {
			return ErrNotStraight
		}
	}

	ships := ExtractShips(field)
	if !HasNoAdjacentGaps(ships) {
		return ErrShipsTouching
	}

	counts := make(map[int]int)
	for _, ship := range ships {
		counts[ship.Len()]++
	}
	if len(counts) != len(Composition) {
		return ErrWrongComposition
	}
	for length, want := range Composition {
		if counts[length] != want {
			return ErrWrongComposition
		}
	}

	return nil
}

// ValidateFleet returns true if the layout is a complete fleet with no touching ships
func ValidateFleet(field *model.PositionField) bool {
	return Check(field) == nil
}

// IsInvalidLayout reports whether err is a layout rejection
func IsInvalidLayout(err error) bool {
	return errors.Is(err, model.ErrInvalidField)
}

// ShipAt returns the ship occupying i
func ShipAt(ships []model.Ship, i model.Index) (model.Ship, bool) {
	for _, ship := range ships {
		if ship.Contains(i) {
			return ship, true
		}
	}
	return nil, false
}

// clusters groups ship cells connected through shared edges
func clusters(field *model.PositionField) [][]model.Index {
	visited := make(map[model.Index]bool)
	var result [][]model.Index

	for _, start := range model.Indices() {
		if visited[start] || field.At(start) != model.PositionShip {
			continue
		}

		var cluster []model.Index
		stack := []model.Index{start}
		visited[start] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cluster = append(cluster, cur)

			for _, d := range []model.Index{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}} {
				n := cur.Add(d)
				if !visited[n] && field.At(n) == model.PositionShip {
					visited[n] = true
					stack = append(stack, n)
				}
			}
		}
		result = append(result, cluster)
	}

	return result
}

// isStraight returns true if every cell shares a row or every cell shares a column
func isStraight(cells []model.Index) bool {
	sameRow, sameCol := true, true
	for _, c := range cells[1:] {
		sameRow = sameRow && c.Row == cells[0].Row
		sameCol = sameCol && c.Col == cells[0].Col
	}
	return sameRow || sameCol
}
