package event

import (
	"chat-rooms/domain"
	"chat-rooms/errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestFromOutcome(t *testing.T) {
	at := time.Now().UTC()
	id := uuid.New()
	outcome := func(action domain.Action, err error) domain.ActionOutcome {
		return domain.ActionOutcome{
			RequestID: id, Action: action, RoomID: "random", RoomName: "random",
			Reason: domain.ClassifyFailure(err), Err: err, At: at,
		}
	}

	t.Run("success maps to the action event", func(t *testing.T) {
		req := require.New(t)
		req.Equal(RoomJoined{RequestID: id, Room: "random", Name: "random", At: at}, FromOutcome(outcome(domain.ActionJoin, nil)))
		req.Equal(RoomLeft{RequestID: id, Room: "random", Name: "random", At: at}, FromOutcome(outcome(domain.ActionLeave, nil)))
		req.Equal(RoomRemoved{RequestID: id, Room: "random", Name: "random", At: at}, FromOutcome(outcome(domain.ActionRemove, nil)))
	})

	t.Run("failure keeps the reason and the error text", func(t *testing.T) {
		req := require.New(t)
		evt := FromOutcome(outcome(domain.ActionJoin, errors.ErrProviderNotRegistered))

		failed, ok := evt.(ActionFailed)
		req.True(ok)
		req.Equal(domain.ReasonProviderNotRegistered, failed.Reason)
		req.Equal(errors.ErrProviderNotRegistered.Error(), failed.Err)
		req.Equal(domain.RoomID("random"), failed.RoomID())
		req.False(failed.Reported)
	})

	t.Run("a warning shown to the user stays reported", func(t *testing.T) {
		req := require.New(t)
		warned := outcome(domain.ActionLeave, errors.ErrNotConnected)
		warned.Reason = domain.ReasonNone
		warned.Reported = true

		failed, ok := FromOutcome(warned).(ActionFailed)
		req.True(ok)
		req.True(failed.Reported)
		req.Equal(domain.ReasonNone, failed.Reason)
		req.Equal(domain.ActionLeave, failed.Action)
	})
}
