package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedState = errors.New("malformed state")

// Serialize encodes the full snapshot sent over the relay.
func Serialize(s GameState) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("serialize state: %w", err)
	}
	return b, nil
}

// Deserialize decodes a snapshot. Missing board, pieceInHand and winner
// fields mean "empty"/"none". Shape is checked (a 4x4 board, player 0 or 1,
// a known phase); legality is not.
func Deserialize(data []byte) (GameState, error) {
	type plain GameState
	wire := struct {
		plain
		Board [][]PieceID `json:"board"`
	}{plain: plain{PieceInHand: NoPiece, Winner: WinnerNone}}
	if err := json.Unmarshal(data, &wire); err != nil {
		return GameState{}, fmt.Errorf("deserialize state: %w", err)
	}

	s := GameState(wire.plain)
	s.Board = NewBoard()
	if wire.Board != nil {
		if len(wire.Board) != BoardSize {
			return GameState{}, fmt.Errorf("deserialize state: %w: board has %d rows", ErrMalformedState, len(wire.Board))
		}
		for r, row := range wire.Board {
			if len(row) != BoardSize {
				return GameState{}, fmt.Errorf("deserialize state: %w: board row %d has %d cells", ErrMalformedState, r, len(row))
			}
			copy(s.Board[r][:], row)
		}
	}
	if s.CurrentPlayer != 0 && s.CurrentPlayer != 1 {
		return GameState{}, fmt.Errorf("deserialize state: %w: current player %d", ErrMalformedState, s.CurrentPlayer)
	}
	if s.Phase != PhasePlace && s.Phase != PhaseSelect {
		return GameState{}, fmt.Errorf("deserialize state: %w: phase %q", ErrMalformedState, s.Phase)
	}
	if s.AvailablePieceIDs == nil {
		s.AvailablePieceIDs = []PieceID{}
	}
	return s, nil
}
