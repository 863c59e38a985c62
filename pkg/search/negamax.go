package search

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// The game contract was broken: a non-terminal state produced no legal moves
var ErrInvariantViolation = errors.New("search: invariant violation")

// How often (in nodes) the limiter is polled inside a single iteration
const pollInterval = 256

// Depth-first alpha-beta searcher with iterative deepening over any Game.
// Not safe for concurrent use, create one per goroutine (see Clone).
type Negamax[S any, M any] struct {
	Limiter LimiterLike

	game      Game[S, M]
	evaluator Evaluator[S]
	listener  StatsListener[M]

	// move buffers, one per ply
	moves       [MaxPly + 1][]M
	nodes       uint64
	aborted     bool
	horizon     bool
	err         error
	isSearching atomic.Bool
}

func NewNegamax[S any, M any](game Game[S, M], evaluator Evaluator[S]) *Negamax[S, M] {
	return &Negamax[S, M]{
		Limiter:   NewLimiter(),
		game:      game,
		evaluator: evaluator,
		listener:  NewStatsListener[M](),
	}
}

// New searcher with the same game, evaluator and a copy of the limits
func (n *Negamax[S, M]) Clone() *Negamax[S, M] {
	limits := *n.Limiter.Limits()
	other := NewNegamax(n.game, n.evaluator)
	other.SetLimits(&limits)
	return other
}

func (n *Negamax[S, M]) SetLimits(limits *Limits) {
	n.Limiter.SetLimits(limits)
}

func (n *Negamax[S, M]) Limits() *Limits {
	return n.Limiter.Limits()
}

func (n *Negamax[S, M]) SetContext(ctx context.Context) {
	n.Limiter.SetContext(ctx)
}

func (n *Negamax[S, M]) SetListener(listener StatsListener[M]) {
	n.listener = listener
}

func (n *Negamax[S, M]) StatsListener() *StatsListener[M] {
	return &n.listener
}

func (n *Negamax[S, M]) IsSearching() bool {
	return n.isSearching.Load()
}

// Signal the running search to stop, the last completed iteration is returned
func (n *Negamax[S, M]) Stop() {
	n.Limiter.SetStop(true)
}

func (n *Negamax[S, M]) Nodes() uint64 {
	return n.nodes
}

// Run the search from given root until a limit is reached, the result is
// proven or the game tree is exhausted. The best move of the last
// completed iteration is returned; equally scored moves are resolved in
// favour of the one generated first.
func (n *Negamax[S, M]) Search(root S) (Result[M], error) {
	n.isSearching.Store(true)
	defer n.isSearching.Store(false)

	n.Limiter.Reset()
	n.nodes, n.err = 0, nil

	result := Result[M]{}
	if outcome := n.game.Outcome(root); outcome.Terminal() {
		result.Eval = terminalEval(outcome, 0)
		return result, nil
	}

	rootMoves := n.game.GenerateMoves(root, nil)
	if len(rootMoves) == 0 {
		return result, fmt.Errorf("%w: non-terminal root has no legal moves", ErrInvariantViolation)
	}

	// Fallback for searches interrupted before the first iteration completes
	result.Move, result.Found = rootMoves[0], true
	result.Pv = []M{rootMoves[0]}

	maxDepth := min(max(n.Limiter.Limits().Depth, 1), MaxPly)
	completed := 0

	for depth := 1; depth <= maxDepth; depth++ {
		n.aborted, n.horizon = false, false
		eval, pv := n.searchRoot(root, rootMoves, depth)
		if n.err != nil {
			return result, n.err
		}
		if n.aborted {
			break
		}

		completed = depth
		result.Move, result.Eval, result.Pv, result.Depth = pv[0], eval, pv, depth

		log.Debug().
			Int("depth", depth).
			Str("eval", eval.String()).
			Uint64("nodes", n.nodes).
			Msg("iteration complete")
		n.listener.invokeDepth(n.stats(result))

		// Proven results don't change with depth, neither do trees with no horizon left
		if eval.IsMate() || !n.horizon || !n.Limiter.Ok(n.nodes, depth) {
			break
		}
	}

	n.Limiter.EvaluateStopReason(n.nodes, completed)
	result.Nodes = n.nodes
	result.TimeMs = n.Limiter.Elapsed()
	result.StopReason = n.Limiter.StopReason()
	n.listener.invokeStop(n.stats(result))
	return result, nil
}

func (n *Negamax[S, M]) stats(result Result[M]) ListenerStats[M] {
	elapsed := n.Limiter.Elapsed()
	return ListenerStats[M]{
		Depth:      result.Depth,
		Nodes:      n.nodes,
		TimeMs:     elapsed,
		Nps:        n.nodes * 1000 / uint64(elapsed),
		Eval:       result.Eval,
		Pv:         result.Pv,
		StopReason: n.Limiter.StopReason(),
	}
}

func (n *Negamax[S, M]) searchRoot(root S, moves []M, depth int) (Evaluation, []M) {
	alpha, beta := -infinity, infinity
	best := -infinity
	var pv []M

	for _, m := range moves {
		v, line := n.negamax(n.game.Apply(root, m), depth-1, 1, -beta, -alpha)
		v = -v
		if n.aborted {
			return 0, nil
		}

		if v > best {
			best = v
			pv = append(append(pv[:0], m), line...)
		}
		alpha = max(alpha, v)
	}
	return best, pv
}

func (n *Negamax[S, M]) negamax(state S, depth, ply int, alpha, beta Evaluation) (Evaluation, []M) {
	n.nodes++
	if n.nodes%pollInterval == 0 && !n.Limiter.Ok(n.nodes, 0) {
		n.aborted = true
	}
	if n.aborted {
		return 0, nil
	}

	if outcome := n.game.Outcome(state); outcome.Terminal() {
		return terminalEval(outcome, ply), nil
	}

	if depth <= 0 {
		n.horizon = true
		return n.evaluator.Evaluate(state), nil
	}

	moves := n.game.GenerateMoves(state, n.moves[ply][:0])
	n.moves[ply] = moves
	if len(moves) == 0 {
		n.err = fmt.Errorf("%w: non-terminal state at ply %d has no legal moves", ErrInvariantViolation, ply)
		n.aborted = true
		return 0, nil
	}

	best := -infinity
	var pv []M
	for _, m := range moves {
		v, line := n.negamax(n.game.Apply(state, m), depth-1, ply+1, -beta, -alpha)
		v = -v
		if n.aborted {
			return 0, nil
		}

		if v > best {
			best = v
			pv = append(append(pv[:0], m), line...)
		}
		alpha = max(alpha, v)
		if alpha >= beta {
			break
		}
	}
	return best, pv
}

// Score of a terminal state reached 'ply' plies below the root
func terminalEval(outcome Outcome, ply int) Evaluation {
	switch outcome {
	case OutcomeToMoveWins:
		return WinEval - Evaluation(ply)
	case OutcomeJustMovedWins:
		return -(WinEval - Evaluation(ply))
	}
	return 0
}

// Pick the best move searching 'depth' plies deep, ok is false when the
// state is terminal
func ChooseMove[S any, M any](game Game[S, M], evaluator Evaluator[S], state S, depth int) (move M, ok bool, err error) {
	n := NewNegamax(game, evaluator)
	n.SetLimits(DefaultLimits().SetDepth(depth))
	result, err := n.Search(state)
	return result.Move, result.Found, err
}
