package uttt

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/IlikeChooros/go-uttt/pkg/grid"
)

// Structured form of a state:
//
//	{"ultra_grid": {"grid": [[{"grid": [["Empty", "X", "O"], ...]}, ...], ...]},
//	 "crosses_turn": true, "current_play_slot": 9}
//
// where 9 stands for a free choice of sub-board
type stateJSON struct {
	UltraGrid       *Board       `json:"ultra_grid"`
	CrossesTurn     *bool        `json:"crosses_turn"`
	CurrentPlaySlot *grid.Forced `json:"current_play_slot"`
}

func (s State) MarshalJSON() ([]byte, error) {
	crosses := s.mover == grid.X
	return json.Marshal(stateJSON{
		UltraGrid:       &s.board,
		CrossesTurn:     &crosses,
		CurrentPlaySlot: &s.forced,
	})
}

// Decode and validate the state, every field is required
func (s *State) UnmarshalJSON(data []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	switch {
	case raw.UltraGrid == nil:
		return fmt.Errorf("%w: missing \"ultra_grid\"", ErrMalformedState)
	case raw.CrossesTurn == nil:
		return fmt.Errorf("%w: missing \"crosses_turn\"", ErrMalformedState)
	case raw.CurrentPlaySlot == nil:
		return fmt.Errorf("%w: missing \"current_play_slot\"", ErrMalformedState)
	}

	mover := grid.O
	if *raw.CrossesTurn {
		mover = grid.X
	}

	state, err := NewStateFrom(*raw.UltraGrid, mover, *raw.CurrentPlaySlot)
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// Decode a state from its structured form
func ParseState(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		if !errors.Is(err, ErrMalformedState) {
			err = fmt.Errorf("%w: %v", ErrMalformedState, err)
		}
		return State{}, err
	}
	return s, nil
}
