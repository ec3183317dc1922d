package game

import (
	"errors"
	"fmt"
)

type Attribute int

const (
	AttrColor Attribute = iota
	AttrHeight
	AttrShape
	AttrFill
)

var Attributes = [...]Attribute{AttrColor, AttrHeight, AttrShape, AttrFill}

func (a Attribute) String() string {
	switch a {
	case AttrColor:
		return "color"
	case AttrHeight:
		return "height"
	case AttrShape:
		return "shape"
	case AttrFill:
		return "fill"
	}
	return fmt.Sprintf("Attribute(%d)", int(a))
}

// Piece attributes are binary; the false value is the first name in each pair.
type Piece struct {
	ID     PieceID `json:"id"`
	Dark   bool    `json:"dark"`   // light | dark
	Short  bool    `json:"short"`  // tall | short
	Round  bool    `json:"round"`  // square | round
	Hollow bool    `json:"hollow"` // solid | hollow
}

func (p Piece) Has(a Attribute) bool {
	switch a {
	case AttrColor:
		return p.Dark
	case AttrHeight:
		return p.Short
	case AttrShape:
		return p.Round
	case AttrFill:
		return p.Hollow
	}
	return false
}

func (p Piece) String() string {
	name := func(v bool, off, on string) string {
		if v {
			return on
		}
		return off
	}
	return fmt.Sprintf("%s %s %s %s",
		name(p.Dark, "light", "dark"),
		name(p.Short, "tall", "short"),
		name(p.Round, "square", "round"),
		name(p.Hollow, "solid", "hollow"))
}

const PieceCount = 16

var ErrInvalidPieceID = errors.New("invalid piece id")

var catalog = func() [PieceCount]Piece {
	var out [PieceCount]Piece
	id := 0
	for _, dark := range []bool{false, true} {
		for _, short := range []bool{false, true} {
			for _, round := range []bool{false, true} {
				for _, hollow := range []bool{false, true} {
					out[id] = Piece{ID: PieceID(id), Dark: dark, Short: short, Round: round, Hollow: hollow}
					id++
				}
			}
		}
	}
	return out
}()

// AllPieces returns a copy of the catalog in id order.
func AllPieces() []Piece {
	out := make([]Piece, PieceCount)
	copy(out, catalog[:])
	return out
}

func PieceByID(id PieceID) (Piece, error) {
	if id < 0 || int(id) >= PieceCount {
		return Piece{}, fmt.Errorf("%w %d", ErrInvalidPieceID, int(id))
	}
	return catalog[id], nil
}

func allPieceIDs() []PieceID {
	ids := make([]PieceID, PieceCount)
	for i := range ids {
		ids[i] = PieceID(i)
	}
	return ids
}
