package game

import "fmt"

// CreateInitialState starts a game. Player 0 opens by selecting a piece
// for player 1.
func CreateInitialState(rules Rules) GameState {
	return GameState{
		Board:             NewBoard(),
		AvailablePieceIDs: allPieceIDs(),
		CurrentPlayer:     0,
		Phase:             PhaseSelect,
		PieceInHand:       NoPiece,
		Rules:             rules,
		Winner:            WinnerNone,
	}
}

func IsTerminal(s GameState) bool { return s.Winner.Decided() }

func inBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func IsPlacementAllowed(s GameState, row, col int) bool {
	return s.Phase == PhasePlace && s.PieceInHand != NoPiece && inBounds(row, col) && s.Board[row][col] == NoPiece
}

// PlacePiece puts the piece in hand on (row, col). Illegal placements and
// placements after the game ended return s unchanged. The error is only
// set when the board references a piece outside the catalog.
func PlacePiece(s GameState, row, col int) (GameState, error) {
	if IsTerminal(s) || !IsPlacementAllowed(s, row, col) {
		return s, nil
	}
	pieceID := s.PieceInHand

	next := s
	next.Board[row][col] = pieceID
	next.PieceInHand = NoPiece
	next.LastPlacement = &Placement{Row: row, Col: col, PieceID: pieceID}

	line, err := DetectWin(next.Board, next.Rules)
	if err != nil {
		return s, fmt.Errorf("place piece at %d,%d: %w", row, col, err)
	}
	if line != nil {
		if next.Rules.RequireCallQuarto {
			// provisional: the front end decides when the call is announced
			next.Phase = PhaseSelect
		}
		next.Winner = PlayerWinner(next.CurrentPlayer)
		return next, nil
	}

	if next.Board.Full() {
		next.Winner = WinnerDraw
		return next, nil
	}

	// same player now selects for the opponent
	next.Phase = PhaseSelect
	return next, nil
}

func IsSelectionAllowed(s GameState, id PieceID) bool {
	if s.Phase != PhaseSelect {
		return false
	}
	for _, a := range s.AvailablePieceIDs {
		if a == id {
			return true
		}
	}
	return false
}

// SelectPieceForOpponent hands id to the opponent, who then places it.
func SelectPieceForOpponent(s GameState, id PieceID) GameState {
	if IsTerminal(s) || !IsSelectionAllowed(s, id) {
		return s
	}
	next := s
	next.AvailablePieceIDs = make([]PieceID, 0, len(s.AvailablePieceIDs)-1)
	for _, a := range s.AvailablePieceIDs {
		if a != id {
			next.AvailablePieceIDs = append(next.AvailablePieceIDs, a)
		}
	}
	next.PieceInHand = id
	next.Phase = PhasePlace
	next.CurrentPlayer = 1 - s.CurrentPlayer
	return next
}

// WinningLine returns the cells of the first winning candidate, or nil.
func WinningLine(s GameState) ([]Coord, error) {
	return DetectWin(s.Board, s.Rules)
}
