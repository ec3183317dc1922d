package room

import "quarto/internal/relay"

// Broadcaster delivers a message to one connection. Implementations must
// not block the caller.
type Broadcaster interface {
	Send(connID string, msg relay.ServerMessage)
}
