// Package projection builds the local list of chat rooms from dispatched actions.
// Does not emit events or interact with the user directly.
package projection

import (
	"chat-rooms/contract"
	"chat-rooms/domain"
	"chat-rooms/domain/event"
	"chat-rooms/errors"
	"chat-rooms/repositories"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
)

var (
	_ contract.RoomList  = (*RoomList)(nil)
	_ contract.EventSink = (*RoomList)(nil)
)

// RoomRow is a read-only snapshot of one line of the list.
type RoomRow struct {
	ID        domain.RoomID
	Name      string
	Connected bool
	Bound     bool
	AutoJoin  bool
}

// RoomList holds every known chat room, backed by a repository.
type RoomList struct {
	mu         sync.RWMutex
	log        *slog.Logger
	repository repositories.IRoomRepository
	entries    map[domain.RoomID]*domain.RoomEntry
	revision   uint64
}

func NewRoomList(log *slog.Logger, repository repositories.IRoomRepository) *RoomList {
	return &RoomList{
		log:        log,
		repository: repository,
		entries:    make(map[domain.RoomID]*domain.RoomEntry),
	}
}

// Restore loads persisted rooms. bind may return nil to keep a room offline.
func (l *RoomList) Restore(bind func(room repositories.DiskRoom) domain.ChatRoom) error {
	rooms, err := l.repository.List()
	if err != nil {
		return fmt.Errorf("restore room list: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, room := range rooms {
		entry := &domain.RoomEntry{ID: room.ID, Name: room.Name, AutoJoin: room.AutoJoin}
		if bind != nil {
			entry.Room = bind(room)
		}
		l.entries[room.ID] = entry
	}
	l.log.Info(fmt.Sprintf("%d chat rooms restored", len(rooms)))
	return nil
}

func (l *RoomList) Add(entry *domain.RoomEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[entry.ID]; ok {
		return fmt.Errorf("%w: %s", errors.ErrRoomAlreadyTracked, entry.Name)
	}
	if err := l.persist(entry); err != nil {
		return err
	}
	l.entries[entry.ID] = entry
	l.revision++
	return nil
}

// Bind attaches a live handle to a known room.
// The entry is replaced, never mutated, so dispatched requests keep the handle they were built with.
func (l *RoomList) Bind(id domain.RoomID, room domain.ChatRoom) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrRoomNotFound, id)
	}
	bound := *entry
	bound.Room = room
	l.entries[id] = &bound
	l.revision++
	return l.persist(&bound)
}

func (l *RoomList) Get(id domain.RoomID) (*domain.RoomEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entry, ok := l.entries[id]
	return entry, ok
}

func (l *RoomList) FindByName(name string) (*domain.RoomEntry, error) {
	entry, ok := l.Get(domain.NewRoomID(name))
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrRoomNotFound, name)
	}
	return entry, nil
}

// Entries returns the tracked entries sorted by name.
func (l *RoomList) Entries() []*domain.RoomEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := lo.Values(l.entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Rows returns a snapshot sorted by name.
func (l *RoomList) Rows() []RoomRow {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rows := lo.MapToSlice(l.entries, func(_ domain.RoomID, e *domain.RoomEntry) RoomRow {
		return RoomRow{
			ID:        e.ID,
			Name:      e.DisplayName(),
			Connected: e.Connected(),
			Bound:     e.HasHandle(),
			AutoJoin:  e.AutoJoin,
		}
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// RemoveRoom drops the entry from the list and from disk.
func (l *RoomList) RemoveRoom(entry *domain.RoomEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, entry.ID)
	l.revision++
	if err := l.repository.Delete(entry.ID); err != nil {
		l.log.Error("Failed to delete chat room", "room", entry.Name, "error", err)
	}
}

// Refresh recomputes the connectivity of every entry and persists it.
func (l *RoomList) Refresh() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.entries {
		if err := l.persist(entry); err != nil {
			l.log.Error("Failed to persist chat room", "room", entry.Name, "error", err)
		}
	}
	l.revision++
	l.log.Debug("Room list refreshed", "rooms", len(l.entries), "revision", l.revision)
}

// Revision increases on every change of the list.
func (l *RoomList) Revision() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revision
}

// Consume refreshes the list once a room was joined.
func (l *RoomList) Consume(_ context.Context, e event.DomainEvent) error {
	if _, ok := e.(event.RoomJoined); ok {
		l.Refresh()
	}
	return nil
}

func (l *RoomList) persist(entry *domain.RoomEntry) error {
	return l.repository.Save(repositories.DiskRoom{
		ID:        entry.ID,
		Name:      entry.Name,
		Connected: entry.Connected(),
		AutoJoin:  entry.AutoJoin,
		UpdatedAt: time.Now().UTC(),
	})
}
