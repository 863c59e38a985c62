package uttt

import (
	"fmt"

	"github.com/IlikeChooros/go-uttt/pkg/grid"
	"github.com/IlikeChooros/go-uttt/pkg/search"
)

// Fill the list with the legal moves of the state, ordered by super slot
// then local slot. Terminal states have none.
func (s State) GenerateMoves(ml *MoveList) {
	ml.Clear()
	if s.Outcome().Terminal() {
		return
	}

	if slot, ok := s.forced.Slot(); ok {
		s.appendEmpty(ml, slot)
		return
	}

	for _, super := range grid.Slots {
		if sub := s.board.Get(super); sub.Playable() {
			s.appendEmpty(ml, super)
		}
	}
}

func (s State) appendEmpty(ml *MoveList, super grid.Slot) {
	sub := s.board.Get(super)
	for _, local := range grid.Slots {
		if sub.Get(local) == grid.Empty {
			ml.Append(NewMove(super, local))
		}
	}
}

// Legal moves of the state in canonical order, empty iff the state is terminal
func (s State) LegalMoves() []Move {
	var ml MoveList
	s.GenerateMoves(&ml)
	return append([]Move(nil), ml.Slice()...)
}

// Successor after placing the mover's mark at the move. The move must be
// legal (see LegalMoves), it isn't checked; use Play for untrusted input.
func (s State) Apply(m Move) State {
	super, local := m.Super(), m.Local()

	sub := s.board.Get(super)
	sub.Set(local, s.mover)
	s.board.Set(super, sub)

	// The opponent is sent to the sub-board matching the local slot,
	// unless it's closed by now
	if next := s.board.Get(local); next.Playable() {
		s.forced = grid.At(local)
	} else {
		s.forced = grid.Free()
	}

	s.mover = s.mover.Opponent()
	return s
}

// Verifies legality of given move, then if it's valid, returns the successor
func (s State) Play(m Move) (State, error) {
	var ml MoveList
	s.GenerateMoves(&ml)
	if !ml.Contains(m) {
		return s, fmt.Errorf("%w: %s, possible moves=[%s]", ErrIllegalMove, m, ml.String())
	}
	return s.Apply(m), nil
}

// Terminal status of the state, relative to the side to move
func (s State) Outcome() search.Outcome {
	switch s.board.Score().Kind {
	case grid.KindWinX:
		return relative(grid.X, s.mover)
	case grid.KindWinO:
		return relative(grid.O, s.mover)
	case grid.KindDraw:
		return search.OutcomeDraw
	}
	return search.OutcomeNone
}

func relative(winner, mover grid.Mark) search.Outcome {
	if winner == mover {
		return search.OutcomeToMoveWins
	}
	return search.OutcomeJustMovedWins
}

// Winner of a finished game, Empty for draws and unfinished games
func (s State) Winner() grid.Mark {
	switch s.board.Score().Kind {
	case grid.KindWinX:
		return grid.X
	case grid.KindWinO:
		return grid.O
	}
	return grid.Empty
}

// Heuristic value of the state from the side to move's perspective, the
// board's scalar score scaled to the evaluation ceiling
func (s State) Evaluate() search.Evaluation {
	v := s.board.Score().Scalar()
	eval := search.Evaluation(v * float64(search.EvalCeiling))
	if s.mover == grid.O {
		return -eval
	}
	return eval
}

// Exposes the rules to the generic search, implements both
// search.Game[State, Move] and search.Evaluator[State]
type Rules struct{}

func (Rules) GenerateMoves(state State, moves []Move) []Move {
	var ml MoveList
	state.GenerateMoves(&ml)
	return append(moves, ml.Slice()...)
}

func (Rules) Apply(state State, move Move) State {
	return state.Apply(move)
}

func (Rules) Outcome(state State) search.Outcome {
	return state.Outcome()
}

func (Rules) Evaluate(state State) search.Evaluation {
	return state.Evaluate()
}

// Negamax searcher over the game rules
func NewSearcher() *search.Negamax[State, Move] {
	return search.NewNegamax[State, Move](Rules{}, Rules{})
}

// Best move from given state searching 'depth' plies deep, ok is false
// when the game is over
func ChooseMove(state State, depth int) (move Move, ok bool, err error) {
	move, ok, err = search.ChooseMove[State, Move](Rules{}, Rules{}, state, depth)
	if !ok {
		move = MoveNone
	}
	return move, ok, err
}
