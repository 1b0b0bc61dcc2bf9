package runtime

import (
	"chat-rooms/contract"
	"chat-rooms/domain"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var _ contract.SessionManager = (*SessionRegistry)(nil)

// SessionRegistry keeps at most one open session per chat room.
type SessionRegistry struct {
	mu       sync.RWMutex
	log      *slog.Logger
	sessions map[domain.RoomID]*domain.Session
}

func NewSessionRegistry(log *slog.Logger) *SessionRegistry {
	return &SessionRegistry{
		log:      log,
		sessions: make(map[domain.RoomID]*domain.Session),
	}
}

// OpenSession returns the session of the room, creating it on first use.
func (r *SessionRegistry) OpenSession(entry *domain.RoomEntry) *domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[entry.ID]; ok {
		return session
	}
	session := &domain.Session{
		ID:       uuid.NewString(),
		RoomID:   entry.ID,
		RoomName: entry.DisplayName(),
	}
	r.sessions[entry.ID] = session
	r.log.Debug("Session opened", "room", session.RoomName, "session", session.ID)
	return session
}

// GetSession returns nil when no session is open on the room.
func (r *SessionRegistry) GetSession(entry *domain.RoomEntry) *domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[entry.ID]
}

// CloseSession forgets the session. Closing a stale or nil session is a no-op.
func (r *SessionRegistry) CloseSession(session *domain.Session) {
	if session == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[session.RoomID]
	if !ok || current.ID != session.ID {
		return
	}
	delete(r.sessions, session.RoomID)
	r.log.Debug("Session closed", "room", session.RoomName, "session", session.ID)
}

// Sessions returns the open sessions sorted by room.
func (r *SessionRegistry) Sessions() []domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := lo.MapToSlice(r.sessions, func(_ domain.RoomID, s *domain.Session) domain.Session {
		return *s
	})
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].RoomID < sessions[j].RoomID })
	return sessions
}
