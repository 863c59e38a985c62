package uttt

import (
	"fmt"
	"strings"

	"github.com/IlikeChooros/go-uttt/pkg/grid"
)

const StartingPosition string = "9/9/9/9/9/9/9/9/9 x -"

// String notation for the state, much like the FEN representation of a chessboard:
//
//	S/S/S/S/S/S/S/S/S <turn> <forced slot>
//
// where `S` is one sub-board, listing cells 0..8 with 'x' and 'o' for
// the marks and a digit for a run of empty cells. For example
//
//	o | x | x
//	---------
//	x | o |
//	---------
//	o |   |
//
// is written as `oxxxo1o2`.
//
// <turn> - either 'o' or 'x'
//
// <forced slot> - the sub-board the side to move must play in, a digit
// between 0 and 8, or '-' if the choice is free
//
// Examples:
//
// * 9/9/9/9/9/9/9/9/9 x -
//
// * 9/9/9/7x1/4xo3/8x/9/4o4/o8 x 0
func (s State) Notation() string {
	builder := strings.Builder{}

	for _, super := range grid.Slots {
		sub := s.board.Get(super)

		counter := 0
		for _, local := range grid.Slots {
			m := sub.Get(local)
			if m == grid.Empty {
				counter++
				continue
			}

			if counter > 0 {
				builder.WriteByte('0' + byte(counter))
				counter = 0
			}
			builder.WriteRune(m.Rune())
		}

		if counter > 0 {
			builder.WriteByte('0' + byte(counter))
		}
		if super != grid.Size-1 {
			builder.WriteByte('/')
		}
	}

	builder.WriteByte(' ')
	builder.WriteRune(s.mover.Rune())
	builder.WriteByte(' ')
	builder.WriteString(s.forced.String())
	return builder.String()
}

// Create the state from given notation string, "startpos" is an alias of
// the starting position. The result is validated.
func FromNotation(notation string) (State, error) {
	if notation == "startpos" {
		notation = StartingPosition
	}

	fields := strings.Fields(notation)
	if len(fields) != 3 {
		return State{}, fmt.Errorf("%w: notation %q must have 3 space separated sections, got %d",
			ErrMalformedState, notation, len(fields))
	}

	subs := strings.Split(fields[0], "/")
	if len(subs) != grid.Size {
		return State{}, fmt.Errorf("%w: expected %d sub-boards, got %d", ErrMalformedState, grid.Size, len(subs))
	}

	var board Board
	for i, str := range subs {
		sub, err := parseSubBoard(str)
		if err != nil {
			return State{}, fmt.Errorf("%w: sub-board %d (%q): %v", ErrMalformedState, i, str, err)
		}
		board.Set(grid.Slot(i), sub)
	}

	mover, ok := grid.MarkFromRune(rune(fields[1][0]))
	if len(fields[1]) != 1 || !ok || mover == grid.Empty {
		return State{}, fmt.Errorf("%w: invalid side %q, expected 'x' or 'o'", ErrMalformedState, fields[1])
	}

	forced := grid.Free()
	switch v := fields[2]; {
	case v == "-":
	case len(v) == 1 && v[0] >= '0' && v[0] <= '8':
		forced = grid.At(grid.Slot(v[0] - '0'))
	default:
		return State{}, fmt.Errorf("%w: invalid forced slot %q, expected a digit 0-8 or '-'", ErrMalformedState, v)
	}

	return NewStateFrom(board, mover, forced)
}

func parseSubBoard(str string) (SubBoard, error) {
	var sub SubBoard
	local := 0

	for _, v := range str {
		switch {
		case v >= '1' && v <= '9':
			local += int(v - '0')
		case v == 'x' || v == 'o':
			if local >= grid.Size {
				return sub, fmt.Errorf("too many cells")
			}
			m, _ := grid.MarkFromRune(v)
			sub.Set(grid.Slot(local), m)
			local++
		default:
			return sub, fmt.Errorf("unexpected token %q", v)
		}

		if local > grid.Size {
			return sub, fmt.Errorf("too many cells")
		}
	}

	if local != grid.Size {
		return sub, fmt.Errorf("expected %d cells, got %d", grid.Size, local)
	}
	return sub, nil
}
