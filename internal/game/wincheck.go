package game

// LinesToCheck lists rows, then columns, then (if enabled) the two diagonals.
func LinesToCheck(rules Rules) [][]Coord {
	lines := make([][]Coord, 0, 2*BoardSize+2)
	for r := 0; r < BoardSize; r++ {
		line := make([]Coord, BoardSize)
		for c := range line {
			line[c] = Coord{Row: r, Col: c}
		}
		lines = append(lines, line)
	}
	for c := 0; c < BoardSize; c++ {
		line := make([]Coord, BoardSize)
		for r := range line {
			line[r] = Coord{Row: r, Col: c}
		}
		lines = append(lines, line)
	}
	if rules.AllowDiagonals {
		diag := make([]Coord, BoardSize)
		anti := make([]Coord, BoardSize)
		for i := 0; i < BoardSize; i++ {
			diag[i] = Coord{Row: i, Col: i}
			anti[i] = Coord{Row: i, Col: BoardSize - 1 - i}
		}
		lines = append(lines, diag, anti)
	}
	return lines
}

// SquaresToCheck lists the nine 2x2 sub-squares row-major, or nothing when
// the variant is off.
func SquaresToCheck(rules Rules) [][]Coord {
	if !rules.AllowSquare2x2 {
		return nil
	}
	squares := make([][]Coord, 0, (BoardSize-1)*(BoardSize-1))
	for r := 0; r < BoardSize-1; r++ {
		for c := 0; c < BoardSize-1; c++ {
			squares = append(squares, []Coord{
				{Row: r, Col: c}, {Row: r, Col: c + 1},
				{Row: r + 1, Col: c}, {Row: r + 1, Col: c + 1},
			})
		}
	}
	return squares
}

// HasCommonAttribute reports whether exactly four pieces share at least
// one attribute value.
func HasCommonAttribute(ids []PieceID) (bool, error) {
	if len(ids) != 4 {
		return false, nil
	}
	pieces := make([]Piece, len(ids))
	for i, id := range ids {
		p, err := PieceByID(id)
		if err != nil {
			return false, err
		}
		pieces[i] = p
	}
	for _, attr := range Attributes {
		first := pieces[0].Has(attr)
		same := true
		for _, p := range pieces[1:] {
			if p.Has(attr) != first {
				same = false
				break
			}
		}
		if same {
			return true, nil
		}
	}
	return false, nil
}

// DetectWin returns the first fully occupied candidate whose pieces share an
// attribute. Lines are checked before squares.
func DetectWin(b Board, rules Rules) ([]Coord, error) {
	candidates := append(LinesToCheck(rules), SquaresToCheck(rules)...)
	ids := make([]PieceID, 0, 4)
	for _, cells := range candidates {
		ids = ids[:0]
		for _, at := range cells {
			if b[at.Row][at.Col] == NoPiece {
				break
			}
			ids = append(ids, b[at.Row][at.Col])
		}
		if len(ids) != len(cells) {
			continue
		}
		ok, err := HasCommonAttribute(ids)
		if err != nil {
			return nil, err
		}
		if ok {
			return cells, nil
		}
	}
	return nil, nil
}
