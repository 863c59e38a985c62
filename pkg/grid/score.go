package grid

import "fmt"

type Kind uint8

const (
	KindInProgress Kind = iota
	KindWinX
	KindWinO
	KindDraw
)

// Result of scoring a cell or a grid. Value is meaningful only for
// KindInProgress and lies in [-1, 1], from X's perspective.
type Score struct {
	Kind  Kind
	Value float64
}

func WinX() Score { return Score{Kind: KindWinX} }
func WinO() Score { return Score{Kind: KindWinO} }
func Draw() Score { return Score{Kind: KindDraw} }

func InProgress(v float64) Score {
	return Score{Kind: KindInProgress, Value: v}
}

// Either side has won
func (s Score) Decisive() bool {
	return s.Kind == KindWinX || s.Kind == KindWinO
}

// Scalar value from X's perspective: wins are +-1, draws 0
func (s Score) Scalar() float64 {
	switch s.Kind {
	case KindWinX:
		return 1
	case KindWinO:
		return -1
	case KindDraw:
		return 0
	}
	return s.Value
}

func (s Score) String() string {
	switch s.Kind {
	case KindWinX:
		return "WinX"
	case KindWinO:
		return "WinO"
	case KindDraw:
		return "Draw"
	}
	return fmt.Sprintf("InProgress(%.4f)", s.Value)
}

// Anything that can sit in a grid cell and be scored, a Mark or a Grid itself
type Node interface {
	Score() Score
	Playable() bool
}

// Score one winning line. A drawn member blocks the line for good.
func scoreLine[T Node](g *Grid[T], line [3]Slot) Score {
	var (
		sum        float64
		hasX, hasO int
	)

	for _, slot := range line {
		member := g.Get(slot).Score()
		switch member.Kind {
		case KindDraw:
			return Draw()
		case KindWinX:
			hasX++
			sum += 1
		case KindWinO:
			hasO++
			sum -= 1
		default:
			sum += member.Value
		}
	}

	switch {
	case hasX == 3:
		return WinX()
	case hasO == 3:
		return WinO()
	case hasX > 0 && hasO > 0:
		return Draw()
	}
	return InProgress(sum / 3)
}

// Score the grid: the first won line (in canonical order) decides it,
// otherwise it's the mean of the open lines, or a draw if none are open.
func (g Grid[T]) Score() Score {
	var (
		sum      float64
		winnable bool
	)

	for _, line := range Lines {
		ls := scoreLine(&g, line)
		switch ls.Kind {
		case KindWinX, KindWinO:
			return ls
		case KindInProgress:
			winnable = true
			sum += ls.Value
		}
	}

	if !winnable {
		return Draw()
	}
	return InProgress(sum / float64(len(Lines)))
}

// A grid accepts moves while no one has won it and at least one child
// still accepts moves.
func (g Grid[T]) Playable() bool {
	if g.Score().Decisive() {
		return false
	}

	for _, s := range Slots {
		if g.Get(s).Playable() {
			return true
		}
	}
	return false
}
