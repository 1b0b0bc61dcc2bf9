package runtime

import (
	"chat-rooms/domain"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistry(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	standup := domain.NewRoomEntry("team-standup", nil)
	random := domain.NewRoomEntry("random", nil)

	t.Run("should reuse the open session of a room", func(t *testing.T) {
		req := require.New(t)
		registry := NewSessionRegistry(log)

		first := registry.OpenSession(standup)
		second := registry.OpenSession(standup)

		req.Same(first, second)
		req.Same(first, registry.GetSession(standup))
	})

	t.Run("should return nil when no session is open", func(t *testing.T) {
		req := require.New(t)
		registry := NewSessionRegistry(log)

		req.Nil(registry.GetSession(standup))
	})

	t.Run("should close only the matching session", func(t *testing.T) {
		req := require.New(t)
		registry := NewSessionRegistry(log)
		registry.OpenSession(standup)
		registry.OpenSession(random)

		registry.CloseSession(registry.GetSession(standup))
		registry.CloseSession(&domain.Session{ID: "stale", RoomID: random.ID})
		registry.CloseSession(nil)

		req.Nil(registry.GetSession(standup))
		req.NotNil(registry.GetSession(random))
		req.Len(registry.Sessions(), 1)
		req.Equal(random.ID, registry.Sessions()[0].RoomID)
	})
}
