package domain

import (
	"chat-rooms/errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Action int

const (
	ActionJoin Action = iota + 1
	ActionLeave
	ActionRemove
)

func (a Action) String() string {
	switch a {
	case ActionJoin:
		return "join"
	case ActionLeave:
		return "leave"
	case ActionRemove:
		return "remove"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

func (a Action) Valid() bool {
	return a >= ActionJoin && a <= ActionRemove
}

// ParseAction maps a user supplied verb to an Action.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "join":
		return ActionJoin, nil
	case "leave":
		return ActionLeave, nil
	case "remove", "rm":
		return ActionRemove, nil
	default:
		return 0, fmt.Errorf("%w: %q", errors.ErrUnknownAction, s)
	}
}

// ActionRequest is one user gesture on one chat room.
type ActionRequest struct {
	ID          uuid.UUID  `validate:"required"`
	Action      Action     `validate:"min=1,max=3"`
	Entry       *RoomEntry `validate:"required"`
	RequestedAt time.Time  `validate:"required"`
}

func NewActionRequest(action Action, entry *RoomEntry) ActionRequest {
	return ActionRequest{
		ID:          uuid.New(),
		Action:      action,
		Entry:       entry,
		RequestedAt: time.Now().UTC(),
	}
}

// ActionOutcome is the single result delivered for an ActionRequest.
// Reported is true when the user was shown a warning or an error.
type ActionOutcome struct {
	RequestID uuid.UUID
	Action    Action
	RoomID    RoomID
	RoomName  string
	Reason    FailureReason
	Err       error
	Reported  bool
	At        time.Time
}

func (o ActionOutcome) Succeeded() bool {
	return o.Err == nil
}
