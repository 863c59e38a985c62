package bench

import "sync"

// Distributes the arena's events to every attached listener, one event at
// a time, so the listeners themselves need no synchronization
type ArenaListener[M any] struct {
	mu        sync.Mutex
	listeners []ListenerLike[M]
}

func NewArenaListener[M any](listeners ...ListenerLike[M]) *ArenaListener[M] {
	return &ArenaListener[M]{listeners: listeners}
}

// Attach another listener
func (al *ArenaListener[M]) Add(listener ListenerLike[M]) *ArenaListener[M] {
	al.mu.Lock()
	defer al.mu.Unlock()
	al.listeners = append(al.listeners, listener)
	return al
}

func (al *ArenaListener[M]) each(f func(ListenerLike[M])) {
	al.mu.Lock()
	defer al.mu.Unlock()
	for _, l := range al.listeners {
		f(l)
	}
}

func (al *ArenaListener[M]) OnGameStart(info VersusWorkerInfo[M]) {
	al.each(func(l ListenerLike[M]) { l.OnGameStart(info) })
}

func (al *ArenaListener[M]) OnMoveMade(info VersusWorkerInfo[M]) {
	al.each(func(l ListenerLike[M]) { l.OnMoveMade(info) })
}

func (al *ArenaListener[M]) OnFinishedGame(info VersusWorkerInfo[M]) {
	al.each(func(l ListenerLike[M]) { l.OnFinishedGame(info) })
}

func (al *ArenaListener[M]) OnFinishedWork(info VersusWorkerInfo[M]) {
	al.each(func(l ListenerLike[M]) { l.OnFinishedWork(info) })
}

func (al *ArenaListener[M]) Summary(info VersusSummaryInfo) {
	al.each(func(l ListenerLike[M]) { l.Summary(info) })
}
