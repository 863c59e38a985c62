// Package grid holds the building blocks of a (possibly nested) 3x3 board:
// cell marks, slot addressing, the forced-slot sum type and the recursive
// scoring shared by every nesting level.
package grid

import (
	"encoding/json"
	"fmt"
)

// Fixed 3x3 matrix addressed only through a Slot. It's a plain value:
// assigning or passing it copies every cell, nested grids included.
type Grid[T Node] struct {
	cells [3][3]T
}

// Get the cell at given slot
func (g Grid[T]) Get(s Slot) T {
	return g.cells[s/3][s%3]
}

// Set the cell at given slot
func (g *Grid[T]) Set(s Slot, v T) {
	g.cells[s/3][s%3] = v
}

// Copy of the grid with given cell replaced
func (g Grid[T]) With(s Slot, v T) Grid[T] {
	g.Set(s, v)
	return g
}

// Cells in canonical slot order
func (g Grid[T]) Cells() [Size]T {
	var cells [Size]T
	for _, s := range Slots {
		cells[s] = g.Get(s)
	}
	return cells
}

// Create a grid from cells given in canonical slot order
func FromCells[T Node](cells [Size]T) Grid[T] {
	var g Grid[T]
	for _, s := range Slots {
		g.Set(s, cells[s])
	}
	return g
}

// Count the cells matching given predicate
func (g Grid[T]) Count(match func(T) bool) int {
	n := 0
	for _, s := range Slots {
		if match(g.Get(s)) {
			n++
		}
	}
	return n
}

// Structured form, `{"grid": [[...], [...], [...]]}`
type gridJSON[T Node] struct {
	Grid [3][3]T `json:"grid"`
}

func (g Grid[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(gridJSON[T]{Grid: g.cells})
}

func (g *Grid[T]) UnmarshalJSON(data []byte) error {
	var raw struct {
		Grid *[][]json.RawMessage `json:"grid"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Grid == nil {
		return fmt.Errorf("missing \"grid\" field")
	}

	rows := *raw.Grid
	if len(rows) != 3 {
		return fmt.Errorf("grid must have 3 rows, got %d", len(rows))
	}

	var cells [3][3]T
	for i, row := range rows {
		if len(row) != 3 {
			return fmt.Errorf("grid row %d must have 3 cells, got %d", i, len(row))
		}
		for j, cell := range row {
			if err := json.Unmarshal(cell, &cells[i][j]); err != nil {
				return fmt.Errorf("cell (%d, %d): %w", i, j, err)
			}
		}
	}

	g.cells = cells
	return nil
}
