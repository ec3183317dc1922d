package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quarto/internal/room"
)

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	_, ok := m.GetRoom("A")
	assert.False(t, ok)
	assert.Empty(t, m.Rooms())

	m.SaveRoom(room.NewRoom("B"))
	m.SaveRoom(room.NewRoom("A"))
	r, ok := m.GetRoom("A")
	require.True(t, ok)
	assert.Equal(t, "A", r.ID)

	ids := []string{}
	for _, r := range m.Rooms() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"A", "B"}, ids)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	m := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			m.SaveRoom(room.NewRoom(id))
			_, _ = m.GetRoom(id)
			_ = m.Rooms()
		}(string(rune('A' + i)))
	}
	wg.Wait()
	assert.Len(t, m.Rooms(), 8)
}
