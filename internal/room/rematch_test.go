package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRematchStates(t *testing.T) {
	var r Rematch

	assert.Equal(t, RematchPending, r.Request("a"))
	assert.Equal(t, []string{"a"}, r.Pending())
	assert.Equal(t, RematchIgnored, r.Request("a"))
	assert.Equal(t, RematchAgreed, r.Request("b"))
	assert.Empty(t, r.Pending())

	assert.False(t, r.Cancel())
	r.Request("b")
	assert.True(t, r.Cancel())
	assert.Empty(t, r.Pending())

	r.Request("a")
	r.Decline()
	assert.Equal(t, RematchPending, r.Request("b"))
}

func TestRoomParticipants(t *testing.T) {
	r := NewRoom("x")
	assert.True(t, r.add("a"))
	assert.True(t, r.add("b"))
	assert.False(t, r.add("a"))
	assert.Equal(t, []string{"b"}, r.others("a"))

	keep := r.participants()
	assert.True(t, r.remove("a"))
	assert.False(t, r.remove("a"))
	assert.Equal(t, []string{"b"}, r.Participants)
	assert.Equal(t, []string{"a", "b"}, keep)
}
