package uttt

import (
	"fmt"
	"strings"

	"github.com/IlikeChooros/go-uttt/pkg/grid"
)

// Decorates the rendered text of a single cell, e.g. with terminal colours
type Painter func(mark grid.Mark, text string) string

const rowSeparator = "-----------------------------"

// Render the board as a 9x9 grid of ' . ', ' X ' and ' O ' cells, with
// '|' between sub-board columns and a dashed line between sub-board rows
func RenderBoard(board Board) string {
	return FormatBoard(board, nil)
}

// Same as RenderBoard, but every cell's text goes through the painter
func FormatBoard(board Board, paint Painter) string {
	builder := strings.Builder{}
	builder.WriteByte('\n')

	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			sub := board.Get(grid.SlotAt(row/3, col/3))
			m := sub.Get(grid.SlotAt(row%3, col%3))

			if col%3 == 0 && col != 0 {
				builder.WriteByte('|')
			}

			text := " . "
			if m != grid.Empty {
				text = " " + strings.ToUpper(string(m.Rune())) + " "
			}
			if paint != nil {
				text = paint(m, text)
			}
			builder.WriteString(text)
		}

		builder.WriteByte('\n')
		if row%3 == 2 && row != 8 {
			builder.WriteString(rowSeparator)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// Inverse of RenderBoard: reads the first 81 'X', 'O' and '.' characters
// row by row, ignoring everything else
func ParseBoard(text string) (Board, error) {
	var (
		board Board
		cells [grid.Size * grid.Size]grid.Mark
		n     int
	)

	for _, r := range text {
		if n == len(cells) {
			break
		}

		switch r {
		case 'X':
			cells[n] = grid.X
		case 'O':
			cells[n] = grid.O
		case '.':
			cells[n] = grid.Empty
		default:
			continue
		}
		n++
	}

	if n != len(cells) {
		return board, fmt.Errorf("%w: board text holds %d cells, expected %d", ErrMalformedState, n, len(cells))
	}

	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			super, local := grid.SlotAt(row/3, col/3), grid.SlotAt(row%3, col%3)
			sub := board.Get(super)
			sub.Set(local, cells[row*9+col])
			board.Set(super, sub)
		}
	}
	return board, nil
}

// Rendered board, the side to move and the forced slot
func (s State) String() string {
	return s.Format(nil)
}

func (s State) Format(paint Painter) string {
	forced := "any"
	if slot, ok := s.forced.Slot(); ok {
		forced = fmt.Sprintf("%d (%d, %d)", slot, slot.Row(), slot.Col())
	}

	return fmt.Sprintf("%s\nCurrent player: %s\nCurrent play slot: %s\n",
		FormatBoard(s.board, paint), strings.ToUpper(string(s.mover.Rune())), forced)
}
