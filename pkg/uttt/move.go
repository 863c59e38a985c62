package uttt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IlikeChooros/go-uttt/pkg/grid"
)

const (
	_moveSuperMask = 0b11110000
	_moveLocalMask = 0b1111
)

// A move packs the super-board slot (high nibble) and the local slot
// of the chosen sub-board (low nibble) into a single byte
type Move uint8

// Sentinel for "no move"
const MoveNone Move = 0xFF

// Create a move, based on super and local slots
func NewMove(super, local grid.Slot) Move {
	return Move((uint8(local) & _moveLocalMask) | ((uint8(super) << 4) & _moveSuperMask))
}

// Get the super-board slot of the move
func (m Move) Super() grid.Slot {
	return grid.Slot((m & _moveSuperMask) >> 4)
}

// Get the slot within the chosen sub-board
func (m Move) Local() grid.Slot {
	return grid.Slot(m & _moveLocalMask)
}

func (m Move) Valid() bool {
	return m.Super().Valid() && m.Local().Valid()
}

// Enum for the squares (same for the sub-boards)
const (
	A3 grid.Slot = iota
	B3
	C3
	A2
	B2
	C2
	A1
	B1
	C1
)

// Get string representation of the move, will contain
// a/b/c 1/2/3 as coorinates, for example super slot = 7,
// local slot = 2 -> <super part><local part>
// -> B1c3
//
//	     	A    B    C
//			 0 | 1 | 2	3
//			-----------
//			 3 | 4 | 5	2
//			-----------
//		     6 | 7 | 8	1
func (m Move) String() string {
	if !m.Valid() {
		return "(none)"
	}

	builder := strings.Builder{}
	super, local := m.Super(), m.Local()
	builder.WriteByte('A' + byte(super.Col()))
	builder.WriteByte('3' - byte(super.Row()))
	builder.WriteByte('a' + byte(local.Col()))
	builder.WriteByte('3' - byte(local.Row()))
	return builder.String()
}

// Convert given move notation (as returned by Move.String) to a move
func MoveFromString(str string) (Move, bool) {
	if len(str) != 4 {
		return MoveNone, false
	}

	// Make sure the coordinates are within the range
	_cmp := func(i int, letter byte) bool {
		return (str[i] >= letter && str[i] <= letter+2) &&
			(str[i+1] >= '1' && str[i+1] <= '3')
	}

	if !_cmp(0, 'A') || !_cmp(2, 'a') {
		return MoveNone, false
	}

	return NewMove(
		grid.SlotAt(int('3'-str[1]), int(str[0]-'A')),
		grid.SlotAt(int('3'-str[3]), int(str[2]-'a')),
	), true
}

// Coordinate pair form, `[super, local]`, or null for MoveNone
func (m Move) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal([2]int{int(m.Super()), int(m.Local())})
}

func (m *Move) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: move: %v", ErrMalformedState, err)
	}
	if pair == nil {
		*m = MoveNone
		return nil
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: move must be a [super, local] pair, got %d values", ErrMalformedState, len(pair))
	}
	for _, v := range pair {
		if v < 0 || v >= grid.Size {
			return fmt.Errorf("%w: move coordinate %d out of range", ErrMalformedState, v)
		}
	}
	*m = NewMove(grid.Slot(pair[0]), grid.Slot(pair[1]))
	return nil
}

// Fixed capacity list of moves, large enough for any position
type MoveList struct {
	moves [grid.Size * grid.Size]Move
	size  uint8
}

// Make a new move list struct
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Reset the movelist, simply sets the size to 0
func (ml *MoveList) Clear() {
	ml.size = 0
}

// Get the actual slice of valid moves
func (ml *MoveList) Slice() []Move {
	return ml.moves[0:ml.size]
}

func (ml *MoveList) Size() int {
	return int(ml.size)
}

// Appends a new move to the list of moves
func (ml *MoveList) Append(move Move) {
	ml.moves[ml.size] = move
	ml.size++
}

func (ml *MoveList) Contains(move Move) bool {
	for _, m := range ml.Slice() {
		if m == move {
			return true
		}
	}
	return false
}

// Convert movelist into a string, uses move notation with space seperation
func (ml *MoveList) String() string {
	if ml.size == 0 {
		return "empty"
	}

	strMoves := make([]string, ml.size)
	for i, m := range ml.Slice() {
		strMoves[i] = m.String()
	}
	return strings.Join(strMoves, " ")
}
