package main

import (
	"fmt"
	"io"
	"strings"

	"quarto/internal/game"
)

// pieceCode is a four letter tag: Light/Dark, Tall/Short, sQuare/Round,
// Full/Hollow.
func pieceCode(id game.PieceID) string {
	p, err := game.PieceByID(id)
	if err != nil {
		return "????"
	}
	pick := func(v bool, off, on byte) byte {
		if v {
			return on
		}
		return off
	}
	return string([]byte{
		pick(p.Dark, 'L', 'D'),
		pick(p.Short, 'T', 'S'),
		pick(p.Round, 'Q', 'R'),
		pick(p.Hollow, 'F', 'H'),
	})
}

func printBoard(w io.Writer, s game.GameState) {
	fmt.Fprintln(w, "      0     1     2     3")
	for r := 0; r < game.BoardSize; r++ {
		fmt.Fprintf(w, "%d ", r)
		for c := 0; c < game.BoardSize; c++ {
			id := s.Board[r][c]
			if id == game.NoPiece {
				fmt.Fprint(w, "  ....")
			} else {
				fmt.Fprintf(w, "  %s", pieceCode(id))
			}
		}
		fmt.Fprintln(w)
	}
}

func printStatus(w io.Writer, s game.GameState, names [2]string) {
	printBoard(w, s)
	switch {
	case s.Winner == game.WinnerDraw:
		fmt.Fprintln(w, "Draw: the board is full.")
		return
	case s.Winner.Decided():
		fmt.Fprintf(w, "%s wins.\n", names[int(s.Winner)])
		return
	}

	avail := make([]string, 0, len(s.AvailablePieceIDs))
	for _, id := range s.AvailablePieceIDs {
		avail = append(avail, fmt.Sprintf("%d:%s", id, pieceCode(id)))
	}
	fmt.Fprintf(w, "Available: %s\n", strings.Join(avail, " "))

	who := names[s.CurrentPlayer]
	if s.Phase == game.PhasePlace {
		fmt.Fprintf(w, "%s places %s (p <row> <col>)\n", who, pieceCode(s.PieceInHand))
	} else {
		fmt.Fprintf(w, "%s selects a piece for the opponent (s <id>)\n", who)
	}
}
