package search

type ListenerStats[M any] struct {
	Depth      int
	Nodes      uint64
	TimeMs     int
	Nps        uint64
	Eval       Evaluation
	Pv         []M
	StopReason StopReason
}

// Listener function callback, receives current search statistics
type ListenerFunc[M any] func(ListenerStats[M])

type StatsListener[M any] struct {
	// called after every completed iteration of the deepening loop
	onDepth ListenerFunc[M]

	// called when the search stops (either by limiter or 'stop' signal)
	onStop ListenerFunc[M]
}

func NewStatsListener[M any]() StatsListener[M] {
	return StatsListener[M]{}
}

// Attach a callback invoked with the principal variation of every completed depth
func (listener *StatsListener[M]) OnDepth(onDepth ListenerFunc[M]) *StatsListener[M] {
	listener.onDepth = onDepth
	return listener
}

// Attach 'on search end' callback, called once, makes 'StopReason' available in the stats
func (listener *StatsListener[M]) OnStop(onStop ListenerFunc[M]) *StatsListener[M] {
	listener.onStop = onStop
	return listener
}

func (listener *StatsListener[M]) invokeDepth(stats ListenerStats[M]) {
	if listener.onDepth != nil {
		listener.onDepth(stats)
	}
}

func (listener *StatsListener[M]) invokeStop(stats ListenerStats[M]) {
	if listener.onStop != nil {
		listener.onStop(stats)
	}
}
