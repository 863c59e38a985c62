package uttt

import (
	"fmt"

	"github.com/IlikeChooros/go-uttt/pkg/grid"
)

type (
	// One of the 9 inner boards of plain cells
	SubBoard = grid.Grid[grid.Mark]
	// The 3x3 board of sub-boards
	Board = grid.Grid[SubBoard]
)

// Game state: the board, the side to move and the sub-board it's forced into.
// States are immutable values, every transition returns a new one; they are
// comparable and may be used as map keys.
type State struct {
	board  Board
	mover  grid.Mark
	forced grid.Forced
}

// Empty board, X to move, free choice
func NewState() State {
	return State{mover: grid.X, forced: grid.Free()}
}

// Create a state from its parts, the result is validated
func NewStateFrom(board Board, mover grid.Mark, forced grid.Forced) (State, error) {
	s := State{board: board, mover: mover, forced: forced}
	if err := s.Validate(); err != nil {
		return State{}, err
	}
	return s, nil
}

func (s State) Board() Board {
	return s.board
}

// Side to move
func (s State) Mover() grid.Mark {
	return s.mover
}

func (s State) Forced() grid.Forced {
	return s.forced
}

// Get the sub-board at given super-board slot
func (s State) SubBoard(slot grid.Slot) SubBoard {
	return s.board.Get(slot)
}

// Get the cell at given super-board and local slots
func (s State) At(super, local grid.Slot) grid.Mark {
	sub := s.board.Get(super)
	return sub.Get(local)
}

// Score of the whole board
func (s State) Score() grid.Score {
	return s.board.Score()
}

// Number of marks of given side on the whole board
func (s State) Count(mark grid.Mark) int {
	n := 0
	for _, super := range grid.Slots {
		sub := s.board.Get(super)
		n += sub.Count(func(m grid.Mark) bool { return m == mark })
	}
	return n
}

// Number of moves played so far
func (s State) Ply() int {
	return s.Count(grid.X) + s.Count(grid.O)
}

// Check the state could be reached by alternating play from the empty board:
// X starts, marks alternate, and the forced slot names a playable sub-board.
func (s State) Validate() error {
	if s.mover != grid.X && s.mover != grid.O {
		return fmt.Errorf("%w: side to move must be X or O, got %v", ErrMalformedState, s.mover)
	}

	for _, super := range grid.Slots {
		sub := s.board.Get(super)
		for _, local := range grid.Slots {
			if m := sub.Get(local); !m.Valid() {
				return fmt.Errorf("%w: invalid mark %d at %s", ErrMalformedState, int8(m), NewMove(super, local))
			}
		}
	}

	xs, os := s.Count(grid.X), s.Count(grid.O)
	switch xs - os {
	case 0:
		if s.mover != grid.X {
			return fmt.Errorf("%w: with %d marks each it's X to move", ErrMalformedState, xs)
		}
	case 1:
		if s.mover != grid.O {
			return fmt.Errorf("%w: X has one more mark, it's O to move", ErrMalformedState)
		}
	default:
		return fmt.Errorf("%w: %d X marks and %d O marks can't come from alternating play", ErrMalformedState, xs, os)
	}

	if slot, ok := s.forced.Slot(); ok {
		if sub := s.board.Get(slot); !sub.Playable() {
			return fmt.Errorf("%w: forced sub-board %d is closed", ErrMalformedState, slot)
		}
	}
	return nil
}
