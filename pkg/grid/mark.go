package grid

import (
	"encoding/json"
	"fmt"
)

// Tri-state content of a single cell. The numeric values give a total
// order (O < Empty < X), so boards compare and hash deterministically.
type Mark int8

const (
	O     Mark = -1
	Empty Mark = 0
	X     Mark = 1
)

// Opponent of the side, Empty stays Empty
func (m Mark) Opponent() Mark {
	return -m
}

func (m Mark) Valid() bool {
	return m == X || m == O || m == Empty
}

// Base case of the scoring recursion: a placed mark is a decided win
// for its owner, an empty cell is undecided and never a draw.
func (m Mark) Score() Score {
	switch m {
	case X:
		return WinX()
	case O:
		return WinO()
	}
	return InProgress(0)
}

func (m Mark) Playable() bool {
	return m == Empty
}

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	}
	return "Empty"
}

// Lowercase single character, as used by the compact board notation
func (m Mark) Rune() rune {
	switch m {
	case X:
		return 'x'
	case O:
		return 'o'
	}
	return '.'
}

// Create a mark from it's notation character, accepts both cases
func MarkFromRune(r rune) (Mark, bool) {
	switch r {
	case 'x', 'X':
		return X, true
	case 'o', 'O':
		return O, true
	case '.':
		return Empty, true
	}
	return Empty, false
}

func (m Mark) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid mark value %d", int8(m))
	}
	return json.Marshal(m.String())
}

func (m *Mark) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("mark must be a string: %w", err)
	}

	switch name {
	case "X":
		*m = X
	case "O":
		*m = O
	case "Empty":
		*m = Empty
	default:
		return fmt.Errorf("unknown mark %q, expected X, O or Empty", name)
	}
	return nil
}
