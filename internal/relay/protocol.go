// Package relay defines the messages exchanged between clients and the
// relay server. Each direction is a closed set of types: the unexported
// marker methods keep other packages from adding kinds, and Decode*/Encode*
// are the only places that map event names to types.
package relay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type Event string

const (
	EventJoin           Event = "join"
	EventLeave          Event = "leave"
	EventState          Event = "state"
	EventRequestRematch Event = "requestRematch"
	EventDeclineRematch Event = "declineRematch"

	EventConnected        Event = "connected"
	EventPlayers          Event = "players"
	EventRematchRequested Event = "rematchRequested"
	EventRematchAccepted  Event = "rematchAccepted"
	EventRematchDeclined  Event = "rematchDeclined"
)

// ReasonDisconnect tags a rematch cancelled because a participant left.
const ReasonDisconnect = "disconnect"

var (
	ErrUnknownEvent     = errors.New("unknown event")
	ErrMalformedMessage = errors.New("malformed message")
)

// Envelope is the frame on the wire.
type Envelope struct {
	Event Event           `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ClientMessage is sent by clients to the server.
type ClientMessage interface {
	clientEvent() Event
}

type Join struct {
	RoomID string `json:"roomId"`
}

type Leave struct {
	RoomID string `json:"roomId"`
}

// PublishState carries a full game snapshot. The relay never looks inside.
type PublishState struct {
	RoomID string          `json:"roomId"`
	State  json.RawMessage `json:"state"`
}

type RequestRematch struct {
	RoomID string `json:"roomId"`
}

type DeclineRematch struct {
	RoomID string `json:"roomId"`
}

func (Join) clientEvent() Event           { return EventJoin }
func (Leave) clientEvent() Event          { return EventLeave }
func (PublishState) clientEvent() Event   { return EventState }
func (RequestRematch) clientEvent() Event { return EventRequestRematch }
func (DeclineRematch) clientEvent() Event { return EventDeclineRematch }

// ServerMessage is sent by the server to clients.
type ServerMessage interface {
	serverEvent() Event
}

type Connected struct {
	ID string `json:"id"`
}

// Players lists the room's connection ids in join order.
type Players struct {
	IDs []string
}

// State is a snapshot forwarded verbatim.
type State struct {
	Snapshot json.RawMessage
}

type RematchRequested struct {
	RequesterID string `json:"requesterId"`
}

type RematchAccepted struct{}

type RematchDeclined struct {
	DeclinerID string `json:"declinerId"`
	Reason     string `json:"reason,omitempty"`
}

func (Connected) serverEvent() Event        { return EventConnected }
func (Players) serverEvent() Event          { return EventPlayers }
func (State) serverEvent() Event            { return EventState }
func (RematchRequested) serverEvent() Event { return EventRematchRequested }
func (RematchAccepted) serverEvent() Event  { return EventRematchAccepted }
func (RematchDeclined) serverEvent() Event  { return EventRematchDeclined }

// noSnapshot reports an absent or null state payload.
func noSnapshot(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func encode(event Event, payload any) ([]byte, error) {
	env := Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", event, err)
		}
		env.Data = data
	}
	return json.Marshal(env)
}

func decodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}
	return env, nil
}

func decodePayload[T any](env Envelope) (T, error) {
	var v T
	if len(env.Data) == 0 {
		return v, fmt.Errorf("%w: %s without data", ErrMalformedMessage, env.Event)
	}
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %w", ErrMalformedMessage, env.Event, err)
	}
	return v, nil
}

func EncodeClient(m ClientMessage) ([]byte, error) {
	switch m := m.(type) {
	case Join, Leave, RequestRematch, DeclineRematch:
		return encode(m.clientEvent(), m)
	case PublishState:
		if noSnapshot(m.State) {
			return nil, fmt.Errorf("%w: state without snapshot", ErrMalformedMessage)
		}
		return encode(EventState, m)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownEvent, m)
}

func DecodeClient(data []byte) (ClientMessage, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	switch env.Event {
	case EventJoin:
		return decodePayload[Join](env)
	case EventLeave:
		return decodePayload[Leave](env)
	case EventState:
		m, err := decodePayload[PublishState](env)
		if err == nil && noSnapshot(m.State) {
			err = fmt.Errorf("%w: state without snapshot", ErrMalformedMessage)
		}
		return m, err
	case EventRequestRematch:
		return decodePayload[RequestRematch](env)
	case EventDeclineRematch:
		return decodePayload[DeclineRematch](env)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownEvent, env.Event)
}

func EncodeServer(m ServerMessage) ([]byte, error) {
	switch m := m.(type) {
	case Connected, RematchRequested, RematchDeclined:
		return encode(m.serverEvent(), m)
	case Players:
		ids := m.IDs
		if ids == nil {
			ids = []string{}
		}
		return encode(EventPlayers, ids)
	case State:
		return encode(EventState, m.Snapshot)
	case RematchAccepted:
		return encode(EventRematchAccepted, nil)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownEvent, m)
}

func DecodeServer(data []byte) (ServerMessage, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	switch env.Event {
	case EventConnected:
		return decodePayload[Connected](env)
	case EventPlayers:
		ids, err := decodePayload[[]string](env)
		return Players{IDs: ids}, err
	case EventState:
		if noSnapshot(env.Data) {
			return nil, fmt.Errorf("%w: state without snapshot", ErrMalformedMessage)
		}
		return State{Snapshot: env.Data}, nil
	case EventRematchRequested:
		return decodePayload[RematchRequested](env)
	case EventRematchAccepted:
		return RematchAccepted{}, nil
	case EventRematchDeclined:
		return decodePayload[RematchDeclined](env)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownEvent, env.Event)
}
