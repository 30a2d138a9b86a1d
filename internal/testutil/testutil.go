package testutil

import (
	"io"
	"log/slog"

	"github.com/mcoot/battleship/internal/model"
)

// NopLogger returns a logger that discards all output
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Layout builds a placement matrix from rows where '#' marks a ship cell
// Missing rows and columns are empty
func Layout(rows ...string) model.Matrix[model.PositionCell] {
	var m model.Matrix[model.PositionCell]
	for row := range m {
		for col := range m[row] {
			m[row][col] = model.PositionEmpty
			if row < len(rows) && col < len(rows[row]) && rows[row][col] == '#' {
				m[row][col] = model.PositionShip
			}
		}
	}
	return m
}

// ValidFleet returns a complete fleet with the longest ship at row 0
func ValidFleet() model.Matrix[model.PositionCell] {
	return Layout(
		"####.###..",
		"..........",
		"###.##.##.",
		"..........",
		"##.#.#.#.#",
	)
}

// MirroredFleet returns a complete fleet placed in the bottom half of the field
func MirroredFleet() model.Matrix[model.PositionCell] {
	return Layout(
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"#.#.#.#.##",
		"..........",
		".##.##.###",
		"..........",
		"..###.####",
	)
}

// FleetCells returns every ship cell of m in row-major order
func FleetCells(m model.Matrix[model.PositionCell]) []model.Index {
	var cells []model.Index
	for _, i := range model.Indices() {
		if m[i.Row][i.Col] == model.PositionShip {
			cells = append(cells, i)
		}
	}
	return cells
}
