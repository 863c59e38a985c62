package grid

import (
	"encoding/json"
	"fmt"
)

// Row-major position in a 3x3 grid (index = row*3 + col)
type Slot uint8

// Number of slots in a grid
const Size = 9

// All slots in canonical order
var Slots = [Size]Slot{0, 1, 2, 3, 4, 5, 6, 7, 8}

// Winning lines in canonical order: rows, columns, main diagonal, anti diagonal
var Lines = [8][3]Slot{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Create a slot from the row and column, both in [0, 3)
func SlotAt(row, col int) Slot {
	if row < 0 || row > 2 || col < 0 || col > 2 {
		panic(fmt.Sprintf("grid: coordinates (%d, %d) out of range", row, col))
	}
	return Slot(row*3 + col)
}

func (s Slot) Valid() bool {
	return s < Size
}

func (s Slot) Row() int {
	return int(s) / 3
}

func (s Slot) Col() int {
	return int(s) % 3
}

// Super-board coordinate the next player is restricted to. The zero value
// is Free, meaning the player may choose any playable sub-board.
type Forced struct {
	slot Slot
	set  bool
}

// Sentinel used by the structured state format for a free choice
const FreeSentinel = 9

func Free() Forced {
	return Forced{}
}

// Restrict the next move to the given sub-board, panics on invalid slot
func At(s Slot) Forced {
	if !s.Valid() {
		panic(fmt.Sprintf("grid: forced slot %d out of range", s))
	}
	return Forced{slot: s, set: true}
}

func (f Forced) IsFree() bool {
	return !f.set
}

// Get the forced slot, ok is false if the choice is free
func (f Forced) Slot() (s Slot, ok bool) {
	return f.slot, f.set
}

func (f Forced) String() string {
	if !f.set {
		return "-"
	}
	return fmt.Sprintf("%d", f.slot)
}

// Index form: the slot, or FreeSentinel if free
func (f Forced) Index() int {
	if !f.set {
		return FreeSentinel
	}
	return int(f.slot)
}

// Inverse of Index
func ForcedFromIndex(i int) (Forced, error) {
	switch {
	case i == FreeSentinel:
		return Free(), nil
	case i >= 0 && i < Size:
		return At(Slot(i)), nil
	}
	return Forced{}, fmt.Errorf("forced slot %d out of range [0, %d]", i, FreeSentinel)
}

func (f Forced) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Index())
}

func (f *Forced) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return fmt.Errorf("forced slot must be an integer: %w", err)
	}
	forced, err := ForcedFromIndex(i)
	if err != nil {
		return err
	}
	*f = forced
	return nil
}
