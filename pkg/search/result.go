package search

import (
	"fmt"
	"strings"
)

// Outcome of a single search. When Found is false the root was terminal
// and Move holds the zero value.
type Result[M any] struct {
	Move       M
	Found      bool
	Eval       Evaluation
	Pv         []M
	Depth      int
	Nodes      uint64
	TimeMs     int
	StopReason StopReason
}

// Nodes per second
func (r Result[M]) Nps() uint64 {
	return r.Nodes * 1000 / uint64(max(r.TimeMs, 1))
}

func (r Result[M]) String() string {
	if !r.Found {
		return "no move, terminal position"
	}

	pv := make([]string, len(r.Pv))
	for i, m := range r.Pv {
		pv[i] = fmt.Sprint(m)
	}

	return fmt.Sprintf("bestmove %v eval %s depth %d nodes %d nps %d time %d pv %s",
		r.Move, r.Eval, r.Depth, r.Nodes, r.Nps(), r.TimeMs, strings.Join(pv, " "))
}
