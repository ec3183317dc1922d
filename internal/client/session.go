// Package client is the player side of an online game: it keeps the local
// game state in step with the relay and turns local moves into snapshots.
package client

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"quarto/internal/game"
	"quarto/internal/relay"
)

type RematchStatus string

const (
	RematchNone     RematchStatus = "none"
	RematchWaiting  RematchStatus = "waiting"
	RematchIncoming RematchStatus = "incoming"
)

const (
	NoticeOpponentLeft     = "opponent left"
	NoticeOpponentDeclined = "opponent declined"
)

// Transport delivers messages to the relay.
type Transport interface {
	Send(msg relay.ClientMessage) error
}

// Session is not safe for concurrent use; drive it from one event loop.
type Session struct {
	roomID  string
	tr      Transport
	selfID  string
	players []string
	seated  bool // a players list has arrived
	state   game.GameState
	rematch RematchStatus
	notice  string
}

func NewSession(roomID string, tr Transport, rules game.Rules) *Session {
	return &Session{
		roomID:  roomID,
		tr:      tr,
		state:   game.CreateInitialState(rules),
		rematch: RematchNone,
	}
}

func (s *Session) Join() error {
	return s.tr.Send(relay.Join{RoomID: s.roomID})
}

func (s *Session) Leave() error {
	return s.tr.Send(relay.Leave{RoomID: s.roomID})
}

func (s *Session) RoomID() string         { return s.roomID }
func (s *Session) ID() string             { return s.selfID }
func (s *Session) State() game.GameState  { return s.state }
func (s *Session) Rematch() RematchStatus { return s.rematch }
func (s *Session) Notice() string         { return s.notice }

func (s *Session) Players() []string {
	return append([]string(nil), s.players...)
}

// PlayerNumber is 0 for the first participant to join and 1 otherwise.
func (s *Session) PlayerNumber() int {
	if len(s.players) == 0 || s.players[0] == s.selfID {
		return 0
	}
	return 1
}

// MyTurn is false until the relay has sent the participant list, so two
// fresh sessions never both act as player 0.
func (s *Session) MyTurn() bool {
	return s.seated && !game.IsTerminal(s.state) && s.state.CurrentPlayer == s.PlayerNumber()
}

// Place puts the piece in hand on (row, col) and publishes the result. It
// reports false when the move was not ours to make or not legal.
func (s *Session) Place(row, col int) (bool, error) {
	if !s.MyTurn() || !game.IsPlacementAllowed(s.state, row, col) {
		return false, nil
	}
	next, err := game.PlacePiece(s.state, row, col)
	if err != nil {
		return false, err
	}
	s.state = next
	return true, s.publish()
}

func (s *Session) Select(id game.PieceID) (bool, error) {
	if !s.MyTurn() || !game.IsSelectionAllowed(s.state, id) {
		return false, nil
	}
	s.state = game.SelectPieceForOpponent(s.state, id)
	return true, s.publish()
}

// RequestRematch asks for a rematch, or accepts one already offered.
func (s *Session) RequestRematch() error {
	s.rematch = RematchWaiting
	s.notice = ""
	return s.tr.Send(relay.RequestRematch{RoomID: s.roomID})
}

func (s *Session) DeclineRematch() error {
	s.rematch = RematchNone
	return s.tr.Send(relay.DeclineRematch{RoomID: s.roomID})
}

// Handle applies one message from the relay.
func (s *Session) Handle(msg relay.ServerMessage) error {
	switch m := msg.(type) {
	case relay.Connected:
		s.selfID = m.ID
	case relay.Players:
		s.players = append([]string(nil), m.IDs...)
		s.seated = true
	case relay.State:
		st, err := game.Deserialize(m.Snapshot)
		if err != nil {
			return fmt.Errorf("room %s: %w", s.roomID, err)
		}
		if err := game.CheckInvariants(st); err != nil {
			log.Warn().Err(err).Str("room", s.roomID).Msg("received state breaks invariants")
		}
		s.state = st
		if !st.Winner.Decided() {
			s.rematch = RematchNone
		}
	case relay.RematchRequested:
		if m.RequesterID != s.selfID {
			s.rematch = RematchIncoming
		}
	case relay.RematchAccepted:
		s.state = game.CreateInitialState(s.state.Rules)
		s.rematch = RematchNone
		s.notice = ""
		return s.publish()
	case relay.RematchDeclined:
		s.rematch = RematchNone
		switch {
		case m.Reason == relay.ReasonDisconnect:
			s.notice = NoticeOpponentLeft
		case m.DeclinerID != s.selfID:
			s.notice = NoticeOpponentDeclined
		}
	default:
		log.Debug().Type("message", m).Msg("ignored")
	}
	return nil
}

func (s *Session) publish() error {
	data, err := game.Serialize(s.state)
	if err != nil {
		return fmt.Errorf("publish state: %w", err)
	}
	return s.tr.Send(relay.PublishState{RoomID: s.roomID, State: data})
}
