package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"quarto/internal/client"
	"quarto/internal/game"
	"quarto/internal/relay"
)

func runOnline(ctx context.Context, server, roomID string, rules game.Rules) error {
	if roomID == "" {
		t, err := client.CreateRoom(ctx, server)
		if err != nil {
			return err
		}
		roomID = t.ID
		fmt.Printf("Created room %s. Share %s\n", t.ID, t.URL)
	}

	conn, err := client.Dial(ctx, client.WebsocketURL(server))
	if err != nil {
		return err
	}
	defer conn.Close()

	sess := client.NewSession(roomID, conn, rules)
	if err := sess.Join(); err != nil {
		return err
	}

	inbound := make(chan relay.ServerMessage)
	readErr := make(chan error, 1)
	go func() {
		for {
			msg, err := conn.Receive()
			if errors.Is(err, relay.ErrUnknownEvent) || errors.Is(err, relay.ErrMalformedMessage) {
				log.Warn().Err(err).Msg("skipping frame")
				continue
			}
			if err != nil {
				readErr <- err
				return
			}
			select {
			case inbound <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	out := os.Stdout
	for {
		select {
		case <-ctx.Done():
			return sess.Leave()
		case err := <-readErr:
			return fmt.Errorf("connection lost: %w", err)
		case msg := <-inbound:
			if err := sess.Handle(msg); err != nil {
				log.Warn().Err(err).Msg("message rejected")
				continue
			}
			showOnline(out, sess, msg)
		case line, ok := <-lines:
			if !ok {
				return sess.Leave()
			}
			quit, err := onlineCommand(out, sess, line)
			if err != nil {
				return err
			}
			if quit {
				return sess.Leave()
			}
		}
	}
}

func seatNames(sess *client.Session) [2]string {
	names := [2]string{"Player 1", "Player 2"}
	names[sess.PlayerNumber()] += " (you)"
	return names
}

func onlineCommand(out io.Writer, sess *client.Session, line string) (bool, error) {
	cmd, err := parseCommand(line)
	if err != nil {
		fmt.Fprintln(out, err)
		return false, nil
	}

	applied := true
	switch cmd.verb {
	case verbQuit:
		return true, nil
	case verbSelect:
		applied, err = sess.Select(game.PieceID(cmd.args[0]))
	case verbPlace:
		applied, err = sess.Place(cmd.args[0], cmd.args[1])
	case verbQuarto:
		st := sess.State()
		if st.Winner == game.PlayerWinner(sess.PlayerNumber()) {
			fmt.Fprintln(out, "Quarto!")
		} else {
			fmt.Fprintln(out, "There is no Quarto of yours to call.")
		}
		return false, nil
	case verbRematch:
		err = sess.RequestRematch()
		fmt.Fprintln(out, "Rematch requested, waiting for the opponent.")
	case verbDecline:
		err = sess.DeclineRematch()
	}
	if err != nil {
		return false, err
	}
	if !applied {
		fmt.Fprintln(out, "Not your move.")
		return false, nil
	}
	if cmd.verb == verbSelect || cmd.verb == verbPlace {
		printStatus(out, sess.State(), seatNames(sess))
	}
	return false, nil
}

func showOnline(out io.Writer, sess *client.Session, msg relay.ServerMessage) {
	switch m := msg.(type) {
	case relay.Connected:
		fmt.Fprintf(out, "Connected as %s, room %s\n", m.ID, sess.RoomID())
	case relay.Players:
		fmt.Fprintf(out, "%d in room, you are player %d\n", len(m.IDs), sess.PlayerNumber()+1)
	case relay.State, relay.RematchAccepted:
		printStatus(out, sess.State(), seatNames(sess))
	case relay.RematchRequested:
		if sess.Rematch() == client.RematchIncoming {
			fmt.Fprintln(out, "Opponent wants a rematch: rematch or decline?")
		}
	case relay.RematchDeclined:
		if n := sess.Notice(); n != "" {
			fmt.Fprintf(out, "Rematch off: %s.\n", n)
		}
	}
}
