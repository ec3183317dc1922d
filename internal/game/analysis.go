package game

import (
	"errors"
	"fmt"
)

var ErrInvariant = errors.New("state invariant violated")

// LegalPlacements lists the empty cells the piece in hand may go to, row-major.
func LegalPlacements(s GameState) []Coord {
	if IsTerminal(s) {
		return nil
	}
	var out []Coord
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if IsPlacementAllowed(s, r, c) {
				out = append(out, Coord{Row: r, Col: c})
			}
		}
	}
	return out
}

func LegalSelections(s GameState) []PieceID {
	if IsTerminal(s) || s.Phase != PhaseSelect {
		return nil
	}
	return append([]PieceID(nil), s.AvailablePieceIDs...)
}

// CheckInvariants reports the first structural problem in s: a piece used
// twice, an out-of-range id, a hand that disagrees with the phase, or an
// available list that is not the catalog minus placed and held pieces.
func CheckInvariants(s GameState) error {
	seen := make(map[PieceID]string, PieceCount)
	mark := func(id PieceID, where string) error {
		if _, err := PieceByID(id); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvariant, where, err)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w: piece %d in %s and %s", ErrInvariant, int(id), prev, where)
		}
		seen[id] = where
		return nil
	}

	for r := range s.Board {
		for c, id := range s.Board[r] {
			if id == NoPiece {
				continue
			}
			if err := mark(id, fmt.Sprintf("cell %d,%d", r, c)); err != nil {
				return err
			}
		}
	}
	for _, id := range s.AvailablePieceIDs {
		if err := mark(id, "available"); err != nil {
			return err
		}
	}
	if s.PieceInHand != NoPiece {
		if err := mark(s.PieceInHand, "hand"); err != nil {
			return err
		}
	}

	if len(seen) != PieceCount {
		return fmt.Errorf("%w: %d pieces accounted for", ErrInvariant, len(seen))
	}
	if s.CurrentPlayer != 0 && s.CurrentPlayer != 1 {
		return fmt.Errorf("%w: current player %d", ErrInvariant, s.CurrentPlayer)
	}
	if s.Winner.Decided() {
		return nil
	}
	switch s.Phase {
	case PhasePlace:
		if s.PieceInHand == NoPiece {
			return fmt.Errorf("%w: place phase without a piece in hand", ErrInvariant)
		}
	case PhaseSelect:
		if s.PieceInHand != NoPiece {
			return fmt.Errorf("%w: select phase with piece %d in hand", ErrInvariant, int(s.PieceInHand))
		}
	default:
		return fmt.Errorf("%w: unknown phase %q", ErrInvariant, s.Phase)
	}
	return nil
}
