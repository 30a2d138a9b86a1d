package model

// Ship is a straight contiguous run of ship cells
type Ship []Index

// Len returns the number of cells in the ship
func (s Ship) Len() int {
	return len(s)
}

// Contains returns true if the ship occupies i
func (s Ship) Contains(i Index) bool {
	for _, c := range s {
		if c == i {
			return true
		}
	}
	return false
}
