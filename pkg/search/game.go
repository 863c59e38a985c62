package search

import (
	"fmt"
	"math"
)

// Terminal status of a state, relative to the side to move (states know
// who moves next, not who moved last)
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeToMoveWins
	OutcomeJustMovedWins
	OutcomeDraw
)

func (o Outcome) Terminal() bool {
	return o != OutcomeNone
}

func (o Outcome) String() string {
	switch o {
	case OutcomeToMoveWins:
		return "ToMoveWins"
	case OutcomeJustMovedWins:
		return "JustMovedWins"
	case OutcomeDraw:
		return "Draw"
	}
	return "None"
}

// Signed score of a state, positive is good for the side to move
type Evaluation int32

const (
	// Score of a won terminal state at the root, reduced by one per ply
	// so that faster wins are preferred
	WinEval Evaluation = 1 << 20

	BestEval  = WinEval
	WorstEval = -WinEval

	// Heuristic evaluations must lie within [-EvalCeiling, EvalCeiling]
	EvalCeiling Evaluation = math.MaxInt16 - 1

	infinity = WinEval + 1
)

// Whether the score was proven by reaching terminal states
func (e Evaluation) IsMate() bool {
	return e > WinEval-MaxPly || e < -(WinEval-MaxPly)
}

func (e Evaluation) String() string {
	switch {
	case e > WinEval-MaxPly:
		return fmt.Sprintf("+M%d", int(WinEval-e))
	case e < -(WinEval - MaxPly):
		return fmt.Sprintf("-M%d", int(WinEval+e))
	}
	return fmt.Sprintf("%+.4f", float64(e)/float64(EvalCeiling))
}

// The rules of a two player, zero-sum, perfect information game, as seen by the search.
// Implementations must be pure: no operation may modify a state passed to it.
type Game[S any, M any] interface {
	// Append the legal moves of the state to 'moves', always in the same order.
	// Must return no moves if and only if the state is terminal.
	GenerateMoves(state S, moves []M) []M
	// Successor of the state after given legal move
	Apply(state S, move M) S
	// Terminal status of the state
	Outcome(state S) Outcome
}

// Heuristic evaluation of non-terminal states, from the side to move's perspective
type Evaluator[S any] interface {
	Evaluate(state S) Evaluation
}
