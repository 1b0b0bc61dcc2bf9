package event

import (
	"chat-rooms/domain"
	"time"

	"github.com/google/uuid"
)

type DomainEvent interface {
	RoomID() domain.RoomID
}

type RoomJoined struct {
	RequestID uuid.UUID
	Room      domain.RoomID
	Name      string
	At        time.Time
}

func (e RoomJoined) RoomID() domain.RoomID { return e.Room }

type RoomLeft struct {
	RequestID uuid.UUID
	Room      domain.RoomID
	Name      string
	At        time.Time
}

func (e RoomLeft) RoomID() domain.RoomID { return e.Room }

// RoomRemoved is emitted once the entry left the room list.
// Connected tells whether a background leave was started.
type RoomRemoved struct {
	RequestID uuid.UUID
	Room      domain.RoomID
	Name      string
	Connected bool
	At        time.Time
}

func (e RoomRemoved) RoomID() domain.RoomID { return e.Room }

// ActionFailed carries Reported when the user was shown the failure.
type ActionFailed struct {
	RequestID uuid.UUID
	Room      domain.RoomID
	Name      string
	Action    domain.Action
	Reason    domain.FailureReason
	Err       string
	Reported  bool
	At        time.Time
}

func (e ActionFailed) RoomID() domain.RoomID { return e.Room }

// FromOutcome maps a finished action to the event describing it.
func FromOutcome(o domain.ActionOutcome) DomainEvent {
	if o.Err != nil {
		return ActionFailed{
			RequestID: o.RequestID,
			Room:      o.RoomID,
			Name:      o.RoomName,
			Action:    o.Action,
			Reason:    o.Reason,
			Err:       o.Err.Error(),
			Reported:  o.Reported,
			At:        o.At,
		}
	}
	switch o.Action {
	case domain.ActionJoin:
		return RoomJoined{RequestID: o.RequestID, Room: o.RoomID, Name: o.RoomName, At: o.At}
	case domain.ActionLeave:
		return RoomLeft{RequestID: o.RequestID, Room: o.RoomID, Name: o.RoomName, At: o.At}
	default:
		return RoomRemoved{RequestID: o.RequestID, Room: o.RoomID, Name: o.RoomName, At: o.At}
	}
}
