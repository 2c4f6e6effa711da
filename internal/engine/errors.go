package engine

import "errors"

var (
	// ErrInvalidRoom means the session points at a room the world does not have.
	ErrInvalidRoom = errors.New("Invalid room")
	// ErrRoomNotFound means an exit leads to a room the world does not have.
	ErrRoomNotFound = errors.New("Room not found")
	// ErrItemNotFound means a take or drop query matched nothing.
	ErrItemNotFound = errors.New("Item not found")
)
