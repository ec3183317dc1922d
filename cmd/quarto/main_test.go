package main

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quarto/internal/game"
)

func TestParseCommand(t *testing.T) {
	cmd, err := parseCommand("p 1 2\n")
	require.NoError(t, err)
	assert.Equal(t, command{verb: verbPlace, args: []int{1, 2}}, cmd)

	cmd, err = parseCommand("  QUARTO ")
	require.NoError(t, err)
	assert.Equal(t, verbQuarto, cmd.verb)

	for _, bad := range []string{"", "s", "s x", "p 1", "jump 1 2", "quit now"} {
		_, err := parseCommand(bad)
		assert.ErrorIs(t, err, errBadCommand, bad)
	}
}

func TestPieceCode(t *testing.T) {
	assert.Equal(t, "LTQF", pieceCode(0))
	assert.Equal(t, "DSRH", pieceCode(15))
	assert.Equal(t, "????", pieceCode(16))
}

func run(t *testing.T, rules game.Rules, bot bool, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader(strings.Join(script, "\n") + "\n"))
	require.NoError(t, runLocal(in, &out, rules, bot))
	return out.String()
}

func TestLocalRowWin(t *testing.T) {
	out := run(t, game.DefaultRules(), false,
		"s 0", "p 0 0",
		"s 1", "p 0 1",
		"s 2", "p 0 2",
		"s 3", "p 0 3",
		"quit")
	assert.Contains(t, out, "Player 1 wins.")
	assert.Contains(t, out, "Game over.")
}

func TestLocalRejectsBadMoves(t *testing.T) {
	out := run(t, game.DefaultRules(), false, "p 0 0", "s 99", "hello", "quit")
	assert.Contains(t, out, "You cannot place there.")
	assert.Contains(t, out, "That piece is not available.")
	assert.Contains(t, out, errBadCommand.Error())
}

func TestLocalCallQuarto(t *testing.T) {
	rules := game.Rules{RequireCallQuarto: true}
	out := run(t, rules, false,
		"s 0", "p 0 0",
		"s 1", "p 0 1",
		"s 2", "p 0 2",
		"s 3", "p 0 3",
		"s 4", "quarto",
		"rematch", "quit")
	assert.Contains(t, out, "there is a Quarto on the board")
	assert.Contains(t, out, "Player 1: Quarto!")
	// twice in the first game, once more after the rematch
	assert.Equal(t, 3, strings.Count(out, "Player 1 selects a piece"))
}

func TestLocalBotFinishes(t *testing.T) {
	// each block offers every selection and every cell; rejected lines are skipped
	var block []string
	for id := 0; id < game.PieceCount; id++ {
		block = append(block, fmt.Sprintf("s %d", id))
	}
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			block = append(block, fmt.Sprintf("p %d %d", r, c))
		}
	}
	var script []string
	for i := 0; i < game.PieceCount; i++ {
		script = append(script, block...)
	}

	out := run(t, game.DefaultRules(), true, script...)
	assert.Contains(t, out, "CPU places at")
	assert.Contains(t, out, "CPU hands over")
	assert.Contains(t, out, "Game over.")
}

func TestEOFQuits(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runLocal(bufio.NewReader(strings.NewReader("")), &out, game.DefaultRules(), false))
}
