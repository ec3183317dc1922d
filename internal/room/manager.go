package room

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"quarto/internal/relay"
)

type Store interface {
	GetRoom(id string) (*Room, bool)
	SaveRoom(r *Room)
	Rooms() []*Room
}

const DefaultIDLength = 8

var ErrRoomIDExhausted = errors.New("could not allocate a free room id")

// Manager is the room registry. Each method holds the manager lock for its
// whole run, so room events are applied one at a time.
type Manager struct {
	mu       sync.Mutex
	store    Store
	hub      Broadcaster
	idLength int
}

func NewManager(s Store, hub Broadcaster, idLength int) *Manager {
	if idLength <= 0 {
		idLength = DefaultIDLength
	}
	return &Manager{store: s, hub: hub, idLength: idLength}
}

func (m *Manager) SetBroadcaster(hub Broadcaster) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hub = hub
}

// Info is a read-only view of a room.
type Info struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	HasState     bool      `json:"hasState"`
	Pending      []string  `json:"pendingRematch"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (m *Manager) Info(id string) (Info, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(id)
	if !ok {
		return Info{}, false
	}
	return Info{
		ID:           r.ID,
		Participants: r.participants(),
		HasState:     len(r.State) > 0,
		Pending:      r.Rematch.Pending(),
		CreatedAt:    r.CreatedAt,
	}, true
}

// CreateRoom registers an empty room under a fresh id.
func (m *Manager) CreateRoom() (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for attempt := 0; attempt < 16; attempt++ {
		id, err := randCode(m.idLength)
		if err != nil {
			return nil, fmt.Errorf("create room: %w", err)
		}
		if _, taken := m.store.GetRoom(id); taken {
			continue
		}
		r := NewRoom(id)
		m.store.SaveRoom(r)
		log.Info().Str("room", id).Msg("room created")
		return r, nil
	}
	return nil, ErrRoomIDExhausted
}

// Join adds connID to the room, creating the room if needed. Everyone gets
// the new participant list; the joiner alone gets the last snapshot.
func (m *Manager) Join(roomID, connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		r = NewRoom(roomID)
		log.Info().Str("room", roomID).Msg("room created on join")
	}
	r.add(connID)
	m.store.SaveRoom(r)
	log.Info().Str("room", roomID).Str("conn", connID).Int("participants", len(r.Participants)).Msg("joined")

	m.sendPlayers(r)
	if len(r.State) > 0 {
		m.send(connID, relay.State{Snapshot: r.State})
	}
}

// Leave removes connID from one room.
func (m *Manager) Leave(roomID, connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok || !r.Has(connID) {
		return
	}
	m.depart(r, connID)
}

// Disconnect removes connID from every room it is in.
func (m *Manager) Disconnect(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.store.Rooms() {
		if r.Has(connID) {
			m.depart(r, connID)
		}
	}
}

func (m *Manager) depart(r *Room, connID string) {
	r.remove(connID)
	if r.Rematch.Cancel() {
		log.Info().Str("room", r.ID).Str("conn", connID).Msg("rematch cancelled by departure")
		m.sendAll(r.participants(), relay.RematchDeclined{DeclinerID: connID, Reason: relay.ReasonDisconnect})
	}
	m.store.SaveRoom(r)
	log.Info().Str("room", r.ID).Str("conn", connID).Int("participants", len(r.Participants)).Msg("left")
	m.sendPlayers(r)
}

// PublishState stores the snapshot and forwards it to everyone but the
// sender. Snapshots for unknown rooms are dropped.
func (m *Manager) PublishState(roomID, connID string, snapshot json.RawMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		log.Debug().Str("room", roomID).Str("conn", connID).Msg("state for unknown room dropped")
		return
	}
	r.State = append(json.RawMessage(nil), snapshot...)
	m.store.SaveRoom(r)
	m.sendAll(r.others(connID), relay.State{Snapshot: r.State})
}

func (m *Manager) RequestRematch(roomID, connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok || !r.Has(connID) {
		log.Debug().Str("room", roomID).Str("conn", connID).Msg("rematch request from outside the room dropped")
		return
	}
	outcome := r.Rematch.Request(connID)
	log.Info().Str("room", roomID).Str("conn", connID).Stringer("outcome", outcome).Msg("rematch requested")

	switch outcome {
	case RematchPending:
		m.sendAll(r.others(connID), relay.RematchRequested{RequesterID: connID})
	case RematchAgreed:
		m.sendAll(r.participants(), relay.RematchAccepted{})
	case RematchIgnored:
	}
	m.store.SaveRoom(r)
}

func (m *Manager) DeclineRematch(roomID, connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok || !r.Has(connID) {
		log.Debug().Str("room", roomID).Str("conn", connID).Msg("rematch decline from outside the room dropped")
		return
	}
	r.Rematch.Decline()
	m.store.SaveRoom(r)
	log.Info().Str("room", roomID).Str("conn", connID).Msg("rematch declined")
	m.sendAll(r.participants(), relay.RematchDeclined{DeclinerID: connID})
}

func (m *Manager) sendPlayers(r *Room) {
	m.sendAll(r.participants(), relay.Players{IDs: r.participants()})
}

func (m *Manager) sendAll(to []string, msg relay.ServerMessage) {
	for _, id := range to {
		m.send(id, msg)
	}
}

func (m *Manager) send(connID string, msg relay.ServerMessage) {
	if m.hub == nil {
		log.Warn().Str("conn", connID).Msg("no broadcaster set")
		return
	}
	m.hub.Send(connID, msg)
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) (string, error) {
	b := make([]byte, n)
	limit := big.NewInt(int64(len(letters)))
	for i := range b {
		k, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b[i] = letters[k.Int64()]
	}
	return string(b), nil
}
