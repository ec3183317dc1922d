package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quarto/internal/game"
)

func main() {
	_ = godotenv.Load()

	diagonals := flag.Bool("diagonals", true, "diagonals count as lines")
	square := flag.Bool("square", false, "2x2 squares count as lines")
	callQuarto := flag.Bool("call-quarto", false, "a win must be called with 'quarto'")
	bot := flag.Bool("bot", false, "second player is the computer (local games)")
	server := flag.String("server", os.Getenv("QUARTO_SERVER"), "relay base url, e.g. http://localhost:5175; empty plays locally")
	roomID := flag.String("room", "", "room to join; empty creates one")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rules := game.Rules{AllowDiagonals: *diagonals, AllowSquare2x2: *square, RequireCallQuarto: *callQuarto}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	if *server != "" {
		err = runOnline(ctx, *server, *roomID, rules)
	} else {
		err = runLocal(bufio.NewReader(os.Stdin), os.Stdout, rules, *bot)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("quarto")
	}
}

// runLocal plays hot-seat games on one terminal until the players quit.
func runLocal(in *bufio.Reader, out io.Writer, rules game.Rules, bot bool) error {
	names := [2]string{"Player 1", "Player 2"}
	if bot {
		names[1] = "CPU"
	}

	for {
		s, quit, err := playLocal(in, out, rules, names, bot)
		if err != nil || quit {
			return err
		}
		printStatus(out, s, names)

		fmt.Fprintln(out, "Game over. rematch or quit?")
		for {
			cmd, err := readCommand(in, out)
			if err != nil {
				return err
			}
			if cmd.verb == verbQuit {
				return nil
			}
			if cmd.verb == verbRematch {
				break
			}
			fmt.Fprintln(out, "rematch or quit?")
		}
	}
}

func playLocal(in *bufio.Reader, out io.Writer, rules game.Rules, names [2]string, bot bool) (game.GameState, bool, error) {
	s := game.CreateInitialState(rules)
	for !game.IsTerminal(s) {
		fmt.Fprintln(out)
		printStatus(out, s, names)

		if bot && s.CurrentPlayer == 1 {
			next, err := botTurn(out, s)
			if err != nil {
				return s, false, err
			}
			s = next
			continue
		}

		cmd, err := readCommand(in, out)
		if err != nil {
			return s, true, err
		}
		switch cmd.verb {
		case verbQuit:
			return s, true, nil
		case verbSelect:
			id := game.PieceID(cmd.args[0])
			if !game.IsSelectionAllowed(s, id) {
				fmt.Fprintln(out, "That piece is not available.")
				continue
			}
			s = game.SelectPieceForOpponent(s, id)
		case verbPlace:
			row, col := cmd.args[0], cmd.args[1]
			if !game.IsPlacementAllowed(s, row, col) {
				fmt.Fprintln(out, "You cannot place there.")
				continue
			}
			next, err := game.PlacePiece(s, row, col)
			if err != nil {
				return s, false, err
			}
			s = next
			if s.Rules.RequireCallQuarto && s.Winner.Decided() && s.Winner != game.WinnerDraw {
				called, err := awaitCall(in, out, names[s.CurrentPlayer])
				if err != nil || !called {
					return s, true, err
				}
			}
		default:
			fmt.Fprintln(out, "Not available right now.")
		}
	}
	return s, false, nil
}

// awaitCall holds the announcement until the winner calls the Quarto. It
// reports false when the player quits instead.
func awaitCall(in *bufio.Reader, out io.Writer, who string) (bool, error) {
	fmt.Fprintf(out, "%s, there is a Quarto on the board. Call it!\n", who)
	for {
		cmd, err := readCommand(in, out)
		if err != nil || cmd.verb == verbQuit {
			return false, err
		}
		if cmd.verb == verbQuarto {
			fmt.Fprintf(out, "%s: Quarto!\n", who)
			return true, nil
		}
	}
}

func botTurn(out io.Writer, s game.GameState) (game.GameState, error) {
	if s.Phase == game.PhaseSelect {
		id, ok, err := game.ChooseSelection(s)
		if err != nil || !ok {
			return s, err
		}
		fmt.Fprintf(out, "CPU hands over %d:%s\n", id, pieceCode(id))
		return game.SelectPieceForOpponent(s, id), nil
	}

	at, ok, err := game.ChoosePlacement(s)
	if err != nil || !ok {
		return s, err
	}
	fmt.Fprintf(out, "CPU places at %d %d\n", at.Row, at.Col)
	next, err := game.PlacePiece(s, at.Row, at.Col)
	if err == nil && next.Rules.RequireCallQuarto && next.Winner == game.PlayerWinner(1) {
		fmt.Fprintln(out, "CPU: Quarto!")
	}
	return next, err
}

// readCommand prompts until a well formed command arrives. EOF reads as quit.
func readCommand(in *bufio.Reader, out io.Writer) (command, error) {
	for {
		fmt.Fprint(out, "> ")
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return command{}, err
		}
		if err != nil && line == "" {
			return command{verb: verbQuit}, nil
		}
		cmd, perr := parseCommand(line)
		if perr != nil {
			fmt.Fprintln(out, perr)
			if err != nil {
				return command{verb: verbQuit}, nil
			}
			continue
		}
		return cmd, nil
	}
}
