package game

// winsWith reports whether placing id on an empty cell of b completes a
// winning candidate.
func winsWith(b Board, rules Rules, id PieceID) (Coord, bool, error) {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b[r][c] != NoPiece {
				continue
			}
			trial := b
			trial[r][c] = id
			line, err := DetectWin(trial, rules)
			if err != nil {
				return Coord{}, false, err
			}
			if line != nil {
				return Coord{Row: r, Col: c}, true, nil
			}
		}
	}
	return Coord{}, false, nil
}

func safePieces(b Board, rules Rules, available []PieceID) (int, error) {
	n := 0
	for _, id := range available {
		_, wins, err := winsWith(b, rules, id)
		if err != nil {
			return 0, err
		}
		if !wins {
			n++
		}
	}
	return n, nil
}

// ChoosePlacement picks a cell for the piece in hand: a winning cell when
// there is one, otherwise the cell that leaves the most pieces the opponent
// cannot win with. Ties go to the first cell in row-major order.
func ChoosePlacement(s GameState) (Coord, bool, error) {
	cells := LegalPlacements(s)
	if len(cells) == 0 {
		return Coord{}, false, nil
	}
	if at, wins, err := winsWith(s.Board, s.Rules, s.PieceInHand); err != nil || wins {
		return at, err == nil, err
	}

	best, bestScore := cells[0], -1
	for _, at := range cells {
		trial := s.Board
		trial[at.Row][at.Col] = s.PieceInHand
		score, err := safePieces(trial, s.Rules, s.AvailablePieceIDs)
		if err != nil {
			return Coord{}, false, err
		}
		if score > bestScore {
			best, bestScore = at, score
		}
	}
	return best, true, nil
}

// ChooseSelection picks the first available piece the opponent cannot win
// with right away, falling back to the lowest available id.
func ChooseSelection(s GameState) (PieceID, bool, error) {
	ids := LegalSelections(s)
	if len(ids) == 0 {
		return NoPiece, false, nil
	}
	for _, id := range ids {
		_, wins, err := winsWith(s.Board, s.Rules, id)
		if err != nil {
			return NoPiece, false, err
		}
		if !wins {
			return id, true, nil
		}
	}
	return ids[0], true, nil
}
