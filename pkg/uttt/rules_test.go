package uttt

import (
	"fmt"
	"os"
	"testing"

	"github.com/IlikeChooros/go-uttt/pkg/grid"
	"github.com/IlikeChooros/go-uttt/pkg/search"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var seed uint64 = 42

func TestMain(m *testing.M) {
	fmt.Printf("Using seed %d\n", seed)
	os.Exit(m.Run())
}

func mustState(t *testing.T, notation string) State {
	t.Helper()
	s, err := FromNotation(notation)
	require.NoError(t, err)
	return s
}

// Play random games from the start, calling visit on every state on the way
func randomGames(r *rand.Rand, games int, visit func(State)) {
	for i := 0; i < games; i++ {
		s := NewState()
		for {
			visit(s)
			moves := s.LegalMoves()
			if len(moves) == 0 {
				break
			}
			s = s.Apply(moves[r.Intn(len(moves))])
		}
	}
}

func TestStartingPosition(t *testing.T) {
	s := NewState()
	require.Equal(t, grid.X, s.Mover())
	require.True(t, s.Forced().IsFree())
	require.NoError(t, s.Validate())
	require.Equal(t, search.OutcomeNone, s.Outcome())

	moves := s.LegalMoves()
	require.Len(t, moves, 81)
	for i, m := range moves {
		require.Equal(t, NewMove(grid.Slot(i/9), grid.Slot(i%9)), m, "canonical order at %d", i)
	}
}

func TestWonSubBoardIsClosed(t *testing.T) {
	var board Board
	sub := board.Get(0)
	sub.Set(0, grid.X)
	sub.Set(1, grid.X)
	sub.Set(2, grid.X)
	board.Set(0, sub)

	s := State{board: board, mover: grid.O}
	require.Equal(t, grid.WinX(), s.SubBoard(0).Score())
	require.False(t, s.SubBoard(0).Playable())
	for local := grid.Slot(3); local < grid.Size; local++ {
		require.Equal(t, grid.Empty, s.At(0, local))
	}

	// Free choice skips the closed sub-board
	for _, m := range s.LegalMoves() {
		require.NotEqual(t, grid.Slot(0), m.Super())
	}
	require.Len(t, s.LegalMoves(), 72)
}

func TestDrawnSubBoardRelaxesForcedSlot(t *testing.T) {
	// Sub-board 4 misses only its center:
	//	x o x
	//	x . o
	//	o x x
	s := mustState(t, "o8/9/9/9/xoxx1ooxx/9/9/9/9 o 4")
	require.Equal(t, []Move{NewMove(4, 4)}, s.LegalMoves())

	next := s.Apply(NewMove(4, 4))
	require.Equal(t, grid.Draw(), next.SubBoard(4).Score())
	require.False(t, next.SubBoard(4).Playable())
	require.True(t, next.Forced().IsFree(), "sub-board 4 is full, the choice must be free")
	require.Equal(t, grid.X, next.Mover())

	moves := next.LegalMoves()
	require.Len(t, moves, 8+7*9)

	supers := map[grid.Slot]int{}
	for _, m := range moves {
		supers[m.Super()]++
	}
	require.NotContains(t, supers, grid.Slot(4))
	require.Equal(t, 8, supers[0])
	for _, super := range []grid.Slot{1, 2, 3, 5, 6, 7, 8} {
		require.Equal(t, 9, supers[super])
	}
}

func TestForcedSlot(t *testing.T) {
	s := NewState().Apply(NewMove(0, 4))
	require.Equal(t, grid.At(4), s.Forced())
	require.Equal(t, grid.O, s.Mover())

	moves := s.LegalMoves()
	require.Len(t, moves, 9)
	for _, m := range moves {
		require.Equal(t, grid.Slot(4), m.Super())
	}

	// Sending the opponent to a won sub-board frees the choice
	won := mustState(t, "xxx3oo1/9/9/9/9/9/9/9/9 o -")
	next := won.Apply(NewMove(1, 0))
	require.True(t, next.Forced().IsFree())
}

func TestApplyIsPure(t *testing.T) {
	s := mustState(t, "9/9/9/7x1/4xo3/8x/9/4o4/o8 x 0")
	before := s
	notation := s.Notation()

	for _, m := range s.LegalMoves() {
		next := s.Apply(m)
		require.NotEqual(t, s, next)
		require.Equal(t, s.Mover(), next.At(m.Super(), m.Local()))
	}
	require.Equal(t, before, s)
	require.Equal(t, notation, s.Notation())
}

func TestPlay(t *testing.T) {
	s := NewState().Apply(NewMove(0, 4))

	next, err := s.Play(NewMove(4, 0))
	require.NoError(t, err)
	require.Equal(t, s.Apply(NewMove(4, 0)), next)

	_, err = s.Play(NewMove(3, 0))
	require.ErrorIs(t, err, ErrIllegalMove)
	require.Contains(t, err.Error(), "A2a3")
	require.Contains(t, err.Error(), "possible moves=[B2a3 B2b3")

	// X is sent back to sub-board 0, where it already holds the center
	_, err = next.Play(NewMove(0, 4))
	require.ErrorIs(t, err, ErrIllegalMove, "occupied cell")

	_, err = s.Play(MoveNone)
	require.ErrorIs(t, err, ErrIllegalMove)
}

// X has won sub-boards 0, 1 and 2, but sub-boards 3 to 8 still accept moves
func wonGame(mover grid.Mark) State {
	var board Board
	xWon := grid.FromCells([grid.Size]grid.Mark{grid.X, grid.X, grid.X})
	board.Set(0, xWon)
	board.Set(1, xWon)
	board.Set(2, xWon)
	return State{board: board, mover: mover}
}

func TestOutcome(t *testing.T) {
	require.Equal(t, search.OutcomeJustMovedWins, wonGame(grid.O).Outcome())
	require.Equal(t, search.OutcomeToMoveWins, wonGame(grid.X).Outcome())
	require.Equal(t, grid.X, wonGame(grid.O).Winner())

	swapped := State{board: swapBoard(wonGame(grid.O).board), mover: grid.X}
	require.Equal(t, search.OutcomeJustMovedWins, swapped.Outcome())
	require.Equal(t, grid.O, swapped.Winner())

	// Alternating won sub-boards block every line
	var drawn Board
	xWon := grid.FromCells([grid.Size]grid.Mark{grid.X, grid.X, grid.X})
	oWon := grid.FromCells([grid.Size]grid.Mark{grid.O, grid.O, grid.O})
	for i, sub := range []SubBoard{xWon, oWon, xWon, xWon, oWon, oWon, oWon, xWon, xWon} {
		drawn.Set(grid.Slot(i), sub)
	}
	draw := State{board: drawn, mover: grid.X}
	require.Equal(t, search.OutcomeDraw, draw.Outcome())
	require.Equal(t, grid.Empty, draw.Winner())
	require.Empty(t, draw.LegalMoves())
}

func TestTerminalHasNoMoves(t *testing.T) {
	s := wonGame(grid.O)
	require.True(t, s.SubBoard(5).Playable())
	require.Empty(t, s.LegalMoves(), "the game is over even though sub-boards remain playable")
	require.Empty(t, Rules{}.GenerateMoves(s, nil))
}

func swapBoard(board Board) Board {
	for _, super := range grid.Slots {
		sub := board.Get(super)
		for _, local := range grid.Slots {
			sub.Set(local, sub.Get(local).Opponent())
		}
		board.Set(super, sub)
	}
	return board
}

func TestRandomPlayouts(t *testing.T) {
	r := rand.New(rand.NewSource(seed))
	states := 0

	randomGames(r, 300, func(s State) {
		states++
		require.NoError(t, s.Validate(), s.Notation())

		moves := s.LegalMoves()
		require.Equal(t, s.Outcome() == search.OutcomeNone, len(moves) > 0, s.Notation())

		for _, m := range moves {
			next := s.Apply(m)
			require.NoError(t, next.Validate(), "%s after %s", s.Notation(), m)
			require.Equal(t, s.Mover().Opponent(), next.Mover())
			require.Equal(t, s.Ply()+1, next.Ply())

			if target := next.SubBoard(m.Local()); target.Playable() {
				require.Equal(t, grid.At(m.Local()), next.Forced())
			} else {
				require.True(t, next.Forced().IsFree())
			}
		}
	})
	require.Greater(t, states, 300*17)
}

func TestEvaluate(t *testing.T) {
	r := rand.New(rand.NewSource(seed + 1))

	randomGames(r, 200, func(s State) {
		flipped := State{board: s.board, mover: s.mover.Opponent(), forced: s.forced}
		require.Equal(t, -s.Evaluate(), flipped.Evaluate())

		if s.Outcome().Terminal() {
			return
		}
		e := s.Evaluate()
		require.LessOrEqual(t, e, search.EvalCeiling)
		require.GreaterOrEqual(t, e, -search.EvalCeiling)
		require.False(t, e.IsMate())

		// Same sign as the board's score from the mover's perspective
		v := s.Score().Scalar()
		if s.Mover() == grid.O {
			v = -v
		}
		require.InDelta(t, v*float64(search.EvalCeiling), float64(e), 1)
	})
}

func TestEvaluateScale(t *testing.T) {
	s := NewState()
	require.Equal(t, search.Evaluation(0), s.Evaluate())

	// X in the center of the center sub-board
	s = s.Apply(NewMove(4, 4))
	v := s.Score().Value
	require.Greater(t, v, 0.0)
	require.Equal(t, -search.Evaluation(v*float64(search.EvalCeiling)), s.Evaluate())
}
