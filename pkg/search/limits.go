package search

import (
	"encoding/json"
	"math"
	"strings"
)

// Deepest search the engine will run, longer than any game it's meant for
const MaxPly = 128

type Limits struct {
	Depth    int
	Nodes    uint64
	Movetime int
	Infinite bool
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return strings.TrimSpace(builder.String())
}

const (
	DefaultDepthLimit    int    = MaxPly
	DefaultNodeLimit     uint64 = math.MaxUint64
	DefaultMovetimeLimit int    = -1
)

func DefaultLimits() *Limits {
	return &Limits{
		Depth:    DefaultDepthLimit,
		Nodes:    DefaultNodeLimit,
		Movetime: DefaultMovetimeLimit,
		Infinite: true,
	}
}

// Set the maximum depth of the search (in plies), clamped to [1, MaxPly]
func (l *Limits) SetDepth(depth int) *Limits {
	l.Depth = min(max(depth, 1), MaxPly)
	l.Infinite = false
	return l
}

// Set the maxiumum number of nodes engine can visit
func (l *Limits) SetNodes(nodes uint64) *Limits {
	l.Nodes = nodes
	l.Infinite = false
	return l
}

// Set the maximum time for engine to think, in milliseconds
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

func (l *Limits) SetInfinite(infinite bool) *Limits {
	l.Infinite = infinite
	return l
}
