package bench

import (
	"context"
	"fmt"

	"github.com/IlikeChooros/go-uttt/pkg/search"
	"golang.org/x/exp/rand"
)

// Anything that picks moves in a game. A player is used by one goroutine
// at a time, the arena gives every worker its own clone.
type Player[S any, M any] interface {
	Name() string
	// Choose a move in a non-terminal state
	ChooseMove(ctx context.Context, state S) (M, error)
	Clone() Player[S, M]
}

// Plays the best move found by a negamax search within the limits
type NegamaxPlayer[S any, M any] struct {
	name     string
	searcher *search.Negamax[S, M]
}

func NewNegamaxPlayer[S any, M any](name string, searcher *search.Negamax[S, M]) *NegamaxPlayer[S, M] {
	return &NegamaxPlayer[S, M]{name: name, searcher: searcher}
}

func (p *NegamaxPlayer[S, M]) Name() string {
	return p.name
}

func (p *NegamaxPlayer[S, M]) ChooseMove(ctx context.Context, state S) (M, error) {
	p.searcher.SetContext(ctx)
	result, err := p.searcher.Search(state)
	if err != nil {
		return result.Move, err
	}
	if !result.Found {
		return result.Move, fmt.Errorf("%s: no move in a finished game", p.name)
	}
	return result.Move, nil
}

func (p *NegamaxPlayer[S, M]) Clone() Player[S, M] {
	return NewNegamaxPlayer(p.name, p.searcher.Clone())
}

// Plays uniformly random legal moves
type RandomPlayer[S any, M any] struct {
	game  search.Game[S, M]
	rand  *rand.Rand
	moves []M
}

func NewRandomPlayer[S any, M any](game search.Game[S, M], seed uint64) *RandomPlayer[S, M] {
	return &RandomPlayer[S, M]{game: game, rand: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer[S, M]) Name() string {
	return "random"
}

func (p *RandomPlayer[S, M]) ChooseMove(_ context.Context, state S) (M, error) {
	p.moves = p.game.GenerateMoves(state, p.moves[:0])
	if len(p.moves) == 0 {
		var none M
		return none, fmt.Errorf("%s: no move in a finished game", p.Name())
	}
	return p.moves[p.rand.Intn(len(p.moves))], nil
}

// Clones get a seed drawn from this player's generator
func (p *RandomPlayer[S, M]) Clone() Player[S, M] {
	return NewRandomPlayer(p.game, p.rand.Uint64())
}
