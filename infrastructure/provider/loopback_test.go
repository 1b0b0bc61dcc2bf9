package provider

import (
	"chat-rooms/domain"
	"chat-rooms/errors"
	"context"
	stderrors "errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestLoopbackRoom(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctx := context.Background()

	t.Run("should refuse to join when the provider is not registered", func(t *testing.T) {
		req := require.New(t)
		// Given an unregistered provider
		provider := NewLoopbackProvider(log, 0)
		room := provider.Room("team-standup")

		// When joining
		err := room.Join(ctx)

		// Then the failure is classified as provider not registered
		req.ErrorIs(err, errors.ErrProviderNotRegistered)
		req.Equal(domain.ReasonProviderNotRegistered, domain.ClassifyFailure(err))
		req.False(room.IsJoined())
	})

	t.Run("should join once and refuse a second subscription", func(t *testing.T) {
		req := require.New(t)
		provider := NewLoopbackProvider(log, 0)
		provider.Register()
		room := provider.Room("team-standup")

		req.NoError(room.Join(ctx))
		req.True(room.IsJoined())

		err := room.Join(ctx)
		req.ErrorIs(err, errors.ErrSubscriptionAlreadyExists)
		req.Equal(domain.ReasonSubscriptionAlreadyExists, domain.ClassifyFailure(err))
		joins, leaves := room.Calls()
		req.Equal(2, joins)
		req.Zero(leaves)
	})

	t.Run("should leave a joined room and ignore a room not joined", func(t *testing.T) {
		req := require.New(t)
		provider := NewLoopbackProvider(log, 0)
		provider.Register()
		room := provider.Room("random")

		req.NoError(room.Leave(ctx))
		req.NoError(room.Join(ctx))
		req.NoError(room.Leave(ctx))
		req.False(room.IsJoined())
	})

	t.Run("should refuse to leave when the provider is not registered", func(t *testing.T) {
		req := require.New(t)
		provider := NewLoopbackProvider(log, 0)
		provider.Register()
		room := provider.Room("random")
		req.NoError(room.Join(ctx))

		provider.Unregister()

		req.False(room.IsJoined())
		req.ErrorIs(room.Leave(ctx), errors.ErrProviderNotRegistered)
	})

	t.Run("should fail once with an injected failure", func(t *testing.T) {
		req := require.New(t)
		provider := NewLoopbackProvider(log, 0)
		provider.Register()
		room := provider.Room("random")
		boom := stderrors.New("connection reset")
		room.FailNext(boom)

		err := room.Join(ctx)

		req.ErrorIs(err, boom)
		req.ErrorIs(err, errors.ErrOperationFailed)
		req.Equal(domain.ReasonOther, domain.ClassifyFailure(err))
		req.NoError(room.Join(ctx))
	})

	t.Run("should keep an injected classified failure as is", func(t *testing.T) {
		req := require.New(t)
		provider := NewLoopbackProvider(log, 0)
		provider.Register()
		room := provider.Room("random")
		room.FailNext(domain.NewOperationFailed(domain.ReasonSubscriptionAlreadyExists, "random", nil))

		req.Equal(domain.ReasonSubscriptionAlreadyExists, domain.ClassifyFailure(room.Join(ctx)))
	})

	t.Run("should give up when the context ends before the round trip", func(t *testing.T) {
		req := require.New(t)
		provider := NewLoopbackProvider(log, time.Second)
		provider.Register()
		room := provider.Room("random")
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		req.ErrorIs(room.Join(cancelled), context.Canceled)
		joins, _ := room.Calls()
		req.Zero(joins)
	})

	t.Run("should return the same room for the same name", func(t *testing.T) {
		req := require.New(t)
		provider := NewLoopbackProvider(log, 0)

		req.Same(provider.Room("Team-Standup"), provider.Room("team-standup "))
		req.Equal("Team-Standup", provider.Room("team-standup").Name())
	})
}
