package main

import (
	"errors"
	"strconv"
	"strings"
)

type verb string

const (
	verbSelect  verb = "s"
	verbPlace   verb = "p"
	verbQuarto  verb = "quarto"
	verbRematch verb = "rematch"
	verbDecline verb = "decline"
	verbQuit    verb = "quit"
)

type command struct {
	verb verb
	args []int
}

var errBadCommand = errors.New("commands: s <id> | p <row> <col> | quarto | rematch | decline | quit")

func parseCommand(line string) (command, error) {
	parts := strings.Fields(strings.ToLower(line))
	if len(parts) == 0 {
		return command{}, errBadCommand
	}
	cmd := command{verb: verb(parts[0])}

	want := 0
	switch cmd.verb {
	case verbSelect:
		want = 1
	case verbPlace:
		want = 2
	case verbQuarto, verbRematch, verbDecline, verbQuit:
	default:
		return command{}, errBadCommand
	}
	if len(parts)-1 != want {
		return command{}, errBadCommand
	}
	for _, p := range parts[1:] {
		n, err := strconv.Atoi(p)
		if err != nil {
			return command{}, errBadCommand
		}
		cmd.args = append(cmd.args, n)
	}
	return cmd, nil
}
