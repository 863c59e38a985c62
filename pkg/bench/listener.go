package bench

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Receives the progress of an arena. Calls come from the worker goroutines,
// implementations must be safe for concurrent use (see ArenaListener).
type ListenerLike[M any] interface {
	OnGameStart(info VersusWorkerInfo[M])
	OnMoveMade(info VersusWorkerInfo[M])
	OnFinishedGame(info VersusWorkerInfo[M])
	OnFinishedWork(info VersusWorkerInfo[M])
	Summary(info VersusSummaryInfo)
}

// Logs the arena's progress with the global logger, moves at trace level
type DefaultListener[M any] struct{}

func (DefaultListener[M]) OnGameStart(info VersusWorkerInfo[M]) {
	log.Debug().
		Int("worker", info.WorkerID).
		Str("game", info.GameID).
		Bool("p1_first", info.P1First).
		Msg("game started")
}

func (DefaultListener[M]) OnMoveMade(info VersusWorkerInfo[M]) {
	log.Trace().
		Str("game", info.GameID).
		Int("move_num", info.GameMoveNum).
		Str("move", fmt.Sprint(info.Moves[len(info.Moves)-1])).
		Msg("move made")
}

func (DefaultListener[M]) OnFinishedGame(info VersusWorkerInfo[M]) {
	log.Info().
		Int("worker", info.WorkerID).
		Str("game", info.GameID).
		Stringer("winner", info.Result).
		Int("moves", info.GameMoveNum).
		Msgf("game %d/%d finished", info.FinishedGames, info.NGames)
}

func (DefaultListener[M]) OnFinishedWork(info VersusWorkerInfo[M]) {
	log.Debug().
		Int("worker", info.WorkerID).
		Int("p1_wins", info.P1Wins).
		Int("p2_wins", info.P2Wins).
		Int("draws", info.Draws).
		Msg("worker finished")
}

func (DefaultListener[M]) Summary(info VersusSummaryInfo) {
	log.Info().
		Int("games", info.TotalGames).
		Int("workers", info.Workers).
		Msgf("%s %d : %d %s, draws %d (first to move won %d, second %d)",
			info.P1Name, info.P1Wins, info.P2Wins, info.P2Name, info.Draws,
			info.FirstToMoveWins, info.SecondToMoveWins)
}
