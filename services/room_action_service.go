package services

import (
	"chat-rooms/contract"
	"chat-rooms/domain"
	"chat-rooms/projection"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
)

// Binder returns the live handle of a room by name.
type Binder func(name string) domain.ChatRoom

type IRoomActionService interface {
	Perform(ctx context.Context, action domain.Action, roomName string) (<-chan domain.ActionOutcome, error)
	Track(name string, connect bool) (*domain.RoomEntry, error)
	Connect(name string) error
	AutoJoin(ctx context.Context) (int, error)
	Rooms() []projection.RoomRow
}

// RoomActionService addresses chat rooms by name on top of the dispatcher.
type RoomActionService struct {
	log        *slog.Logger
	dispatcher contract.IDispatcher
	rooms      *projection.RoomList
	bind       Binder
}

func NewRoomActionService(
	log *slog.Logger,
	dispatcher contract.IDispatcher,
	rooms *projection.RoomList,
	bind Binder,
) *RoomActionService {
	return &RoomActionService{
		log:        log,
		dispatcher: dispatcher,
		rooms:      rooms,
		bind:       bind,
	}
}

func (s *RoomActionService) Perform(ctx context.Context, action domain.Action, roomName string) (<-chan domain.ActionOutcome, error) {
	entry, err := s.rooms.FindByName(roomName)
	if err != nil {
		return nil, err
	}
	return s.dispatcher.Dispatch(ctx, domain.NewActionRequest(action, entry))
}

// Track adds a room to the list. A connected room gets a live handle and is rejoined at start-up.
func (s *RoomActionService) Track(name string, connect bool) (*domain.RoomEntry, error) {
	var room domain.ChatRoom
	if connect {
		room = s.bind(name)
	}
	entry := domain.NewRoomEntry(name, room)
	entry.AutoJoin = connect
	if err := s.rooms.Add(entry); err != nil {
		return nil, err
	}
	s.log.Debug("Chat room tracked", "room", name, "connected", connect)
	return entry, nil
}

func (s *RoomActionService) Connect(name string) error {
	entry, err := s.rooms.FindByName(name)
	if err != nil {
		return err
	}
	return s.rooms.Bind(entry.ID, s.bind(entry.Name))
}

// AutoJoin dispatches a join for every bound room flagged for auto-join and not joined yet.
func (s *RoomActionService) AutoJoin(ctx context.Context) (int, error) {
	var errs []error
	dispatched := 0
	for _, entry := range s.rooms.Entries() {
		if !entry.AutoJoin || !entry.HasHandle() || entry.Connected() {
			continue
		}
		if _, err := s.dispatcher.Dispatch(ctx, domain.NewActionRequest(domain.ActionJoin, entry)); err != nil {
			errs = append(errs, fmt.Errorf("auto-join %s: %w", entry.Name, err))
			continue
		}
		dispatched++
	}
	if dispatched > 0 {
		s.log.Info(fmt.Sprintf("%d chat rooms auto-joined", dispatched))
	}
	return dispatched, stderrors.Join(errs...)
}

func (s *RoomActionService) Rooms() []projection.RoomRow {
	return s.rooms.Rows()
}
