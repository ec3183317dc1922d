package game

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const BoardSize = 4

// PieceID references a catalog entry. NoPiece marks an empty cell or an
// empty hand and encodes as JSON null.
type PieceID int

const NoPiece PieceID = -1

func (p PieceID) MarshalJSON() ([]byte, error) {
	if p == NoPiece {
		return []byte("null"), nil
	}
	return json.Marshal(int(p))
}

func (p *PieceID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = NoPiece
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("piece id: %w", err)
	}
	*p = PieceID(v)
	return nil
}

type Board [BoardSize][BoardSize]PieceID

func NewBoard() Board {
	var b Board
	for r := range b {
		for c := range b[r] {
			b[r][c] = NoPiece
		}
	}
	return b
}

func (b Board) Full() bool {
	for r := range b {
		for c := range b[r] {
			if b[r][c] == NoPiece {
				return false
			}
		}
	}
	return true
}

type Phase string

const (
	PhasePlace  Phase = "place"  // place the piece in hand
	PhaseSelect Phase = "select" // pick a piece for the opponent
)

type Rules struct {
	AllowDiagonals    bool `json:"allowDiagonals"`
	AllowSquare2x2    bool `json:"allowSquare2x2"`
	RequireCallQuarto bool `json:"requireCallQuarto"`
}

func DefaultRules() Rules {
	return Rules{AllowDiagonals: true}
}

// Winner is a player index, WinnerDraw, or WinnerNone.
// On the wire: 0, 1, "draw" or null.
type Winner int

const (
	WinnerNone Winner = -1
	WinnerDraw Winner = 2
)

func PlayerWinner(player int) Winner { return Winner(player) }

func (w Winner) Decided() bool { return w != WinnerNone }

func (w Winner) MarshalJSON() ([]byte, error) {
	switch w {
	case WinnerNone:
		return []byte("null"), nil
	case WinnerDraw:
		return []byte(`"draw"`), nil
	case 0, 1:
		return json.Marshal(int(w))
	}
	return nil, fmt.Errorf("invalid winner %d", int(w))
}

func (w *Winner) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null":
		*w = WinnerNone
		return nil
	case `"draw"`:
		*w = WinnerDraw
		return nil
	case "0":
		*w = 0
		return nil
	case "1":
		*w = 1
		return nil
	}
	return fmt.Errorf("invalid winner %s", data)
}

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Placement struct {
	Row     int     `json:"row"`
	Col     int     `json:"col"`
	PieceID PieceID `json:"pieceId"`
}

type GameState struct {
	Board             Board      `json:"board"`
	AvailablePieceIDs []PieceID  `json:"availablePieceIds"`
	CurrentPlayer     int        `json:"currentPlayer"`
	Phase             Phase      `json:"phase"`
	PieceInHand       PieceID    `json:"pieceInHand"`
	Rules             Rules      `json:"rules"`
	Winner            Winner     `json:"winner"`
	LastPlacement     *Placement `json:"lastPlacement,omitempty"` // UI highlight only
}
