package sink

import (
	"chat-rooms/contract"
	"chat-rooms/domain"
	"chat-rooms/domain/event"
	"chat-rooms/repositories"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var _ contract.EventSink = OutcomeSink{}

// OutcomeSink keeps a trace of every dispatched action.
type OutcomeSink struct {
	repository repositories.IOutcomeRepository
	log        *slog.Logger
}

func NewOutcomeSink(repository repositories.IOutcomeRepository, log *slog.Logger) OutcomeSink {
	return OutcomeSink{repository: repository, log: log}
}

func (s OutcomeSink) Consume(ctx context.Context, e event.DomainEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch evt := e.(type) {
	case event.RoomJoined:
		return s.repository.Store(toDiskOutcome(evt.RequestID, evt.Room, evt.Name, domain.ActionJoin, evt.At))
	case event.RoomLeft:
		return s.repository.Store(toDiskOutcome(evt.RequestID, evt.Room, evt.Name, domain.ActionLeave, evt.At))
	case event.RoomRemoved:
		return s.repository.Store(toDiskOutcome(evt.RequestID, evt.Room, evt.Name, domain.ActionRemove, evt.At))
	case event.ActionFailed:
		outcome := toDiskOutcome(evt.RequestID, evt.Room, evt.Name, evt.Action, evt.At)
		outcome.Reason = evt.Reason.String()
		outcome.Error = evt.Err
		outcome.Reported = evt.Reported
		return s.repository.Store(outcome)
	default:
		s.log.Debug(fmt.Sprintf("Not implemented event : %v", evt))
		return nil
	}
}

func toDiskOutcome(requestID uuid.UUID, room domain.RoomID, name string, action domain.Action, at time.Time) repositories.DiskOutcome {
	return repositories.DiskOutcome{
		ID:     requestID,
		Room:   room,
		Name:   name,
		Action: action.String(),
		At:     at,
	}
}
