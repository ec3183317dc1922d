package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTrip(t *testing.T) {
	s := play(t, CreateInitialState(Rules{AllowDiagonals: true, AllowSquare2x2: true}), []Placement{
		{Row: 0, Col: 0, PieceID: 12},
		{Row: 2, Col: 3, PieceID: 7},
	})
	s = SelectPieceForOpponent(s, 9)

	states := []GameState{CreateInitialState(DefaultRules()), s}
	for _, want := range states {
		data, err := Serialize(want)
		require.NoError(t, err)
		got, err := Deserialize(data)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSerializeWireShape(t *testing.T) {
	s := SelectPieceForOpponent(CreateInitialState(DefaultRules()), 4)
	s, err := PlacePiece(s, 1, 2)
	require.NoError(t, err)

	data, err := Serialize(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "select", raw["phase"])
	assert.Nil(t, raw["pieceInHand"])
	assert.Nil(t, raw["winner"])
	assert.Equal(t, float64(1), raw["currentPlayer"])
	assert.Equal(t, map[string]any{"row": float64(1), "col": float64(2), "pieceId": float64(4)}, raw["lastPlacement"])
	assert.Equal(t, map[string]any{"allowDiagonals": true, "allowSquare2x2": false, "requireCallQuarto": false}, raw["rules"])

	board := raw["board"].([]any)
	require.Len(t, board, BoardSize)
	assert.Equal(t, []any{nil, nil, float64(4), nil}, board[1])
}

func TestWinnerJSON(t *testing.T) {
	tests := []struct {
		winner Winner
		wire   string
	}{
		{WinnerNone, "null"},
		{WinnerDraw, `"draw"`},
		{PlayerWinner(0), "0"},
		{PlayerWinner(1), "1"},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.winner)
		require.NoError(t, err)
		assert.Equal(t, tt.wire, string(data))

		var back Winner
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, tt.winner, back)
	}

	var w Winner
	assert.Error(t, json.Unmarshal([]byte(`"nobody"`), &w))
}

func TestDeserializeForeignSnapshot(t *testing.T) {
	payload := `{
		"board": [[null,null,null,null],[null,3,null,null],[null,null,null,null],[null,null,null,null]],
		"availablePieceIds": [0,1,2,4,5,6,7,8,9,10,11,12,13,14,15],
		"currentPlayer": 0,
		"phase": "select",
		"pieceInHand": null,
		"rules": {"allowDiagonals": true, "allowSquare2x2": false, "requireCallQuarto": false},
		"winner": null
	}`
	s, err := Deserialize([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, PieceID(3), s.Board[1][1])
	assert.Equal(t, NoPiece, s.Board[0][0])
	assert.Equal(t, NoPiece, s.PieceInHand)
	assert.Nil(t, s.LastPlacement)
	assert.NoError(t, CheckInvariants(s))

	_, err = Deserialize([]byte(`{"board": "nope"}`))
	assert.Error(t, err)
}

func TestDeserializeRejectsMalformedShape(t *testing.T) {
	valid := func(board, player, phase string) string {
		return `{"board":` + board + `,"availablePieceIds":[],"currentPlayer":` + player +
			`,"phase":` + phase + `,"pieceInHand":null,"rules":{},"winner":null}`
	}
	empty := `[[null,null,null,null],[null,null,null,null],[null,null,null,null],[null,null,null,null]]`

	tests := []struct {
		name    string
		payload string
	}{
		{"short row", valid(`[[null,null,null],[],[],[]]`, "0", `"select"`)},
		{"missing row", valid(`[[null,null,null,null],[null,null,null,null],[null,null,null,null]]`, "0", `"select"`)},
		{"long row", valid(`[[null,null,null,null,null],[null,null,null,null],[null,null,null,null],[null,null,null,null]]`, "0", `"select"`)},
		{"player out of range", valid(empty, "2", `"select"`)},
		{"negative player", valid(empty, "-1", `"place"`)},
		{"unknown phase", valid(empty, "0", `"dance"`)},
		{"missing phase", `{"board":` + empty + `,"currentPlayer":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize([]byte(tt.payload))
			assert.ErrorIs(t, err, ErrMalformedState)
		})
	}

	s, err := Deserialize([]byte(valid(empty, "1", `"place"`)))
	require.NoError(t, err)
	assert.Equal(t, NewBoard(), s.Board)
	assert.Equal(t, 1, s.CurrentPlayer)
}
