package ws

import "encoding/json"

// RoomManager is the part of the room registry the hub drives.
type RoomManager interface {
	Join(roomID, connID string)
	Leave(roomID, connID string)
	Disconnect(connID string)
	PublishState(roomID, connID string, snapshot json.RawMessage)
	RequestRematch(roomID, connID string)
	DeclineRematch(roomID, connID string)
}
