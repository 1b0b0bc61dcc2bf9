//go:generate go run go.uber.org/mock/mockgen -source=room.go -destination=../mocks/mock_chat_room.go -package=mocks
package domain

import (
	"context"
	"strings"
)

type RoomID string

// NewRoomID derives a stable identifier from a room name.
func NewRoomID(name string) RoomID {
	return RoomID(strings.ToLower(strings.TrimSpace(name)))
}

// ChatRoom is the live connection to a multi-user conversation, owned by a provider.
// Join and Leave are network bound and may block.
type ChatRoom interface {
	Name() string
	IsJoined() bool
	Join(ctx context.Context) error
	Leave(ctx context.Context) error
}

// RoomEntry is a chat room known locally.
// Room is nil when the room is not bound to a live connection.
type RoomEntry struct {
	ID       RoomID
	Name     string
	Room     ChatRoom
	AutoJoin bool
}

func NewRoomEntry(name string, room ChatRoom) *RoomEntry {
	return &RoomEntry{
		ID:   NewRoomID(name),
		Name: name,
		Room: room,
	}
}

// HasHandle reports whether the entry is bound to a live connection.
func (e *RoomEntry) HasHandle() bool {
	return e != nil && e.Room != nil
}

// Connected reports whether the room is currently joined.
func (e *RoomEntry) Connected() bool {
	return e.HasHandle() && e.Room.IsJoined()
}

// DisplayName prefers the handle's name and falls back to the local one.
func (e *RoomEntry) DisplayName() string {
	if e.HasHandle() {
		if name := e.Room.Name(); name != "" {
			return name
		}
	}
	return e.Name
}

// Session is an open conversation window on a chat room.
type Session struct {
	ID       string
	RoomID   RoomID
	RoomName string
}
