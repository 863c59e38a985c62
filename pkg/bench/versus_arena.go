package bench

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/IlikeChooros/go-uttt/pkg/search"
	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

/*
Arena benchmark subpackage, allows to play a series of games between two
players (different search settings, or a random mover) of the same game.
*/

type VersusArena[S any, M any] struct {
	VersusArenaStats
	Game     search.Game[S, M]
	Player1  Player[S, M]
	Player2  Player[S, M]
	NGames   int
	NWorkers int
	// Every game starts from this state
	Position S
	// Seed of the coin flips deciding who moves first
	Seed uint64

	ctx      context.Context
	errOnce  sync.Once
	firstErr error
}

func NewVersusArena[S any, M any](game search.Game[S, M], position S, p1, p2 Player[S, M]) *VersusArena[S, M] {
	return &VersusArena[S, M]{
		Game:     game,
		Player1:  p1,
		Player2:  p2,
		NGames:   100,
		NWorkers: 2,
		Position: position,
		Seed:     uint64(time.Now().UnixNano()),
		ctx:      context.Background(),
	}
}

func (va *VersusArena[S, M]) WithContext(ctx context.Context) *VersusArena[S, M] {
	va.ctx = ctx
	return va
}

func (va *VersusArena[S, M]) Setup(nGames, nWorkers int) *VersusArena[S, M] {
	va.NGames = nGames
	va.NWorkers = max(nWorkers, 1)
	return va
}

// Play all the games, split equally between the workers, and wait for them.
// The listener may be nil. Stops early when the context is done; games cut
// short this way aren't counted.
func (va *VersusArena[S, M]) Run(listener ListenerLike[M]) (VersusSummaryInfo, error) {
	var wg sync.WaitGroup
	nWorkers := min(max(va.NWorkers, 1), max(va.NGames, 1))
	nGames := va.NGames / nWorkers
	rest := va.NGames % nWorkers

	for i := 0; i < nWorkers; i++ {
		delta := 0
		if rest > 0 {
			delta = 1
			rest--
		}

		// Always use a clone, players keep search state
		p1 := va.Player1.Clone()
		p2 := va.Player2.Clone()
		r := rand.New(rand.NewSource(va.Seed + uint64(i)))

		wg.Add(1)
		go func(id, games int) {
			defer wg.Done()
			va.worker(id, games, r, listener, p1, p2)
		}(i, nGames+delta)
	}
	wg.Wait()

	summary := VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		Draws:            va.Draws(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Workers:          nWorkers,
		P1Name:           va.Player1.Name(),
		P2Name:           va.Player2.Name(),
	}
	if listener != nil {
		listener.Summary(summary)
	}

	if va.firstErr == nil {
		if err := va.ctx.Err(); err != nil {
			return summary, err
		}
	}
	return summary, va.firstErr
}

func (va *VersusArena[S, M]) fail(err error) {
	va.errOnce.Do(func() { va.firstErr = err })
}

func (va *VersusArena[S, M]) worker(id, nGames int, r *rand.Rand, listener ListenerLike[M], p1, p2 Player[S, M]) {
	localStats := VersusArenaStats{}
	info := VersusWorkerInfo[M]{
		WorkerID: id,
		NGames:   nGames,
		P1Name:   p1.Name(),
		P2Name:   p2.Name(),
	}

	for i := 0; i < nGames && va.ctx.Err() == nil; i++ {
		info.GameID = uuid.NewString()
		info.P1First = r.Intn(2) == 0
		info.FinishedGames = i

		var (
			outcome GameOutcome
			err     error
		)
		if info.P1First {
			outcome, err = va.playGame(p1, p2, &info, listener)
		} else {
			outcome, err = va.playGame(p2, p1, &info, listener)
		}

		if err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				va.fail(err)
			}
			break
		}

		info.Result = toPlayerResult(outcome, info.P1First)
		va.record(info.Result, outcome)
		localStats.record(info.Result, outcome)
		info.FinishedGames = i + 1
		info.P1Wins, info.P2Wins, info.Draws = localStats.P1Wins(), localStats.P2Wins(), localStats.Draws()

		if listener != nil {
			listener.OnFinishedGame(info)
		}
	}

	if listener != nil {
		listener.OnFinishedWork(info)
	}
}

// Play a single game, 'first' moves first
func (va *VersusArena[S, M]) playGame(first, second Player[S, M], info *VersusWorkerInfo[M], listener ListenerLike[M]) (GameOutcome, error) {
	state := va.Position
	info.Moves = make([]M, 0, 81)
	info.GameMoveNum = 0

	if listener != nil {
		listener.OnGameStart(*info)
	}

	players := [2]Player[S, M]{first, second}
	for turn := 0; ; turn ^= 1 {
		if outcome := va.Game.Outcome(state); outcome.Terminal() {
			return computeOutcome(outcome, len(info.Moves)), nil
		}
		if err := va.ctx.Err(); err != nil {
			return GameOutcome{}, err
		}

		m, err := players[turn].ChooseMove(va.ctx, state)
		if err != nil {
			return GameOutcome{}, err
		}

		state = va.Game.Apply(state, m)
		info.Moves = append(info.Moves, m)
		info.GameMoveNum = len(info.Moves)

		if listener != nil {
			listener.OnMoveMade(*info)
		}
	}
}
