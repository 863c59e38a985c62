package uttt

import "errors"

var (
	// Externally supplied state failed structural or consistency validation
	ErrMalformedState = errors.New("malformed state")

	// A move outside of the state's legal moves was played
	ErrIllegalMove = errors.New("illegal move")
)
