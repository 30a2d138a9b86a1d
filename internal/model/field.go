package model

// FieldSize is the side length of every field
const FieldSize = 10

// Index identifies a cell on a field
type Index struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// Add returns the index offset by d
func (i Index) Add(d Index) Index {
	return Index{Row: i.Row + d.Row, Col: i.Col + d.Col}
}

// InRange returns true if the index is within the field bounds
func InRange(i Index) bool {
	return i.Row >= 0 && i.Row < FieldSize && i.Col >= 0 && i.Col < FieldSize
}

// Indices returns every index of a field in row-major order
func Indices() []Index {
	result := make([]Index, 0, FieldSize*FieldSize)
	for row := 0; row < FieldSize; row++ {
		for col := 0; col < FieldSize; col++ {
			result = append(result, Index{Row: row, Col: col})
		}
	}
	return result
}

// Matrix is a row-major copy of a field's cells
type Matrix[T any] [FieldSize][FieldSize]T

// Field is a fixed 10x10 grid of cells
// Reads outside the grid return the sentinel and writes outside it are ignored
type Field[T comparable] struct {
	cells    Matrix[T]
	sentinel T
}

// NewField creates a field with every cell set to fill
func NewField[T comparable](fill, sentinel T) *Field[T] {
	f := &Field[T]{sentinel: sentinel}
	for row := range f.cells {
		for col := range f.cells[row] {
			f.cells[row][col] = fill
		}
	}
	return f
}

// FieldFromMatrix creates a field holding a copy of m
func FieldFromMatrix[T comparable](m Matrix[T], sentinel T) *Field[T] {
	return &Field[T]{cells: m, sentinel: sentinel}
}

// At returns the cell at i, or the sentinel if i is out of range
func (f *Field[T]) At(i Index) T {
	if !InRange(i) {
		return f.sentinel
	}
	return f.cells[i.Row][i.Col]
}

// Set stores value at i; out of range indices are ignored
func (f *Field[T]) Set(i Index, value T) {
	if InRange(i) {
		f.cells[i.Row][i.Col] = value
	}
}

// Snapshot returns a copy of all cells
func (f *Field[T]) Snapshot() Matrix[T] {
	return f.cells
}

// Count returns the number of cells equal to value
func (f *Field[T]) Count(value T) int {
	count := 0
	for row := range f.cells {
		for col := range f.cells[row] {
			if f.cells[row][col] == value {
				count++
			}
		}
	}
	return count
}

// PositionCell is a cell on a player's own placement board
type PositionCell string

const (
	PositionEmpty PositionCell = "empty"
	PositionShip  PositionCell = "ship"
)

// AttackCell is a cell on a player's shot board against the opponent
type AttackCell string

const (
	AttackEmpty AttackCell = "empty"
	AttackMiss  AttackCell = "miss"
	AttackHit   AttackCell = "hit"
)

// PositionField holds a player's ship placement
type PositionField = Field[PositionCell]

// AttackField holds a player's shots
type AttackField = Field[AttackCell]

// NewPositionField builds a placement field from a raw matrix
// Any cell that is not a ship is treated as empty
func NewPositionField(m Matrix[PositionCell]) *PositionField {
	for row := range m {
		for col := range m[row] {
			if m[row][col] != PositionShip {
				m[row][col] = PositionEmpty
			}
		}
	}
	return FieldFromMatrix(m, PositionEmpty)
}

// EmptyPositionField returns a placement field without ships
func EmptyPositionField() *PositionField {
	return NewField(PositionEmpty, PositionEmpty)
}

// NewAttackField returns a shot board with no shots
func NewAttackField() *AttackField {
	return NewField(AttackEmpty, AttackEmpty)
}
