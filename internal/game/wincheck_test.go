package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	pieces := AllPieces()
	require.Len(t, pieces, PieceCount)

	seen := map[[4]bool]bool{}
	for i, p := range pieces {
		assert.Equal(t, PieceID(i), p.ID)
		key := [4]bool{p.Dark, p.Short, p.Round, p.Hollow}
		assert.False(t, seen[key], "duplicate attributes for %d", i)
		seen[key] = true
	}

	first, err := PieceByID(0)
	require.NoError(t, err)
	assert.Equal(t, "light tall square solid", first.String())
	last, err := PieceByID(15)
	require.NoError(t, err)
	assert.Equal(t, "dark short round hollow", last.String())
}

func TestPieceByIDOutOfRange(t *testing.T) {
	for _, id := range []PieceID{-1, 16, 100} {
		_, err := PieceByID(id)
		assert.ErrorIs(t, err, ErrInvalidPieceID, "id %d", id)
	}
}

func TestHasCommonAttributeAllSubsets(t *testing.T) {
	shared := func(ids []PieceID) bool {
		for bit := 0; bit < 4; bit++ {
			v := int(ids[0]) >> bit & 1
			same := true
			for _, id := range ids[1:] {
				if int(id)>>bit&1 != v {
					same = false
				}
			}
			if same {
				return true
			}
		}
		return false
	}

	count := 0
	for a := 0; a < PieceCount; a++ {
		for b := a + 1; b < PieceCount; b++ {
			for c := b + 1; c < PieceCount; c++ {
				for d := c + 1; d < PieceCount; d++ {
					ids := []PieceID{PieceID(a), PieceID(b), PieceID(c), PieceID(d)}
					got, err := HasCommonAttribute(ids)
					require.NoError(t, err)
					require.Equal(t, shared(ids), got, "ids %v", ids)
					count++
				}
			}
		}
	}
	assert.Equal(t, 1820, count)
}

func TestHasCommonAttributeNeedsFour(t *testing.T) {
	ok, err := HasCommonAttribute([]PieceID{0, 1, 2})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = HasCommonAttribute([]PieceID{0, 1, 2, 16})
	assert.ErrorIs(t, err, ErrInvalidPieceID)
}

func TestCandidateCounts(t *testing.T) {
	tests := []struct {
		name    string
		rules   Rules
		lines   int
		squares int
	}{
		{"no diagonals", Rules{}, 8, 0},
		{"diagonals", Rules{AllowDiagonals: true}, 10, 0},
		{"squares", Rules{AllowDiagonals: true, AllowSquare2x2: true}, 10, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, LinesToCheck(tt.rules), tt.lines)
			assert.Len(t, SquaresToCheck(tt.rules), tt.squares)
		})
	}
}

func TestDetectWinOrder(t *testing.T) {
	// column 0 and row 3 both win; the row comes first
	b := NewBoard()
	b[0][0], b[1][0], b[2][0], b[3][0] = 0, 1, 2, 3
	b[3][1], b[3][2], b[3][3] = 4, 5, 6

	line, err := DetectWin(b, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, []Coord{{3, 0}, {3, 1}, {3, 2}, {3, 3}}, line)

	// a diagonal loses to a column
	b = NewBoard()
	b[0][0], b[1][1], b[2][2], b[3][3] = 0, 1, 2, 3
	b[0][1], b[2][1], b[3][1] = 4, 5, 6
	line, err = DetectWin(b, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, []Coord{{0, 1}, {1, 1}, {2, 1}, {3, 1}}, line)
}

func TestDetectWinDiagonalRule(t *testing.T) {
	b := NewBoard()
	b[0][3], b[1][2], b[2][1], b[3][0] = 8, 9, 10, 11

	line, err := DetectWin(b, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, []Coord{{0, 3}, {1, 2}, {2, 1}, {3, 0}}, line)

	line, err = DetectWin(b, Rules{})
	require.NoError(t, err)
	assert.Nil(t, line)
}

func TestDetectWinSquareAfterLines(t *testing.T) {
	b := NewBoard()
	for r := range drawBoard {
		for c, id := range drawBoard[r] {
			b[r][c] = id
		}
	}
	rules := Rules{AllowDiagonals: true, AllowSquare2x2: true}

	line, err := DetectWin(b, rules)
	require.NoError(t, err)
	assert.Equal(t, []Coord{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, line)

	line, err = DetectWin(b, DefaultRules())
	require.NoError(t, err)
	assert.Nil(t, line)
}
