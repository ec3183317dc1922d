package room

import (
	"encoding/json"
	"time"
)

type Room struct {
	ID           string          `json:"id"`
	Participants []string        `json:"participants"` // join order
	State        json.RawMessage `json:"state,omitempty"`
	Rematch      Rematch         `json:"-"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func NewRoom(id string) *Room {
	return &Room{ID: id, Participants: []string{}, CreatedAt: time.Now()}
}

func (r *Room) Has(connID string) bool {
	for _, id := range r.Participants {
		if id == connID {
			return true
		}
	}
	return false
}

func (r *Room) add(connID string) bool {
	if r.Has(connID) {
		return false
	}
	r.Participants = append(r.Participants, connID)
	return true
}

func (r *Room) remove(connID string) bool {
	for i, id := range r.Participants {
		if id == connID {
			r.Participants = append(r.Participants[:i:i], r.Participants[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) others(connID string) []string {
	out := make([]string, 0, len(r.Participants))
	for _, id := range r.Participants {
		if id != connID {
			out = append(out, id)
		}
	}
	return out
}

func (r *Room) participants() []string {
	return append([]string{}, r.Participants...)
}
