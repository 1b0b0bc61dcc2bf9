//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-rooms/domain"
	"chat-rooms/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging during supervision, so workers don't have to name themselves.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// SessionManager owns the conversation windows opened on chat rooms.
type SessionManager interface {
	GetSession(entry *domain.RoomEntry) *domain.Session
	CloseSession(session *domain.Session)
}

// RoomList is the view listing every known chat room.
type RoomList interface {
	RemoveRoom(entry *domain.RoomEntry)
	Refresh()
}

// Notifier is the surface showing warnings and errors to the user.
type Notifier interface {
	ReportWarning(title, message string)
	ReportError(title, message string)
}

// Localizer resolves a message key with its substitution arguments.
type Localizer interface {
	Text(key string, args ...any) string
}

type IDispatcher interface {
	Dispatch(ctx context.Context, req domain.ActionRequest) (<-chan domain.ActionOutcome, error)
	Start(ctx context.Context) error
	Stop()
}
