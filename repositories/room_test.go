package repositories

import (
	"chat-rooms/domain"
	"chat-rooms/errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Test_Save_And_List_Rooms(t *testing.T) {
	req := require.New(t)
	repository := NewRoomRepository(openDB(t), slog.Default())
	at := time.Now().UTC()

	rooms := []DiskRoom{
		{ID: "team-standup", Name: "team-standup", Connected: true, UpdatedAt: at},
		{ID: "random", Name: "random", AutoJoin: true, UpdatedAt: at},
	}
	for _, room := range rooms {
		req.NoError(repository.Save(room))
	}

	fetched, err := repository.List()
	req.NoError(err)
	req.Len(fetched, 2)
	// Sorted by name
	req.Equal("random", fetched[0].Name)
	req.True(fetched[0].AutoJoin)
	req.Equal("team-standup", fetched[1].Name)
	req.True(fetched[1].Connected)
	req.True(at.Equal(fetched[1].UpdatedAt))
}

func Test_Save_Overwrites_Room(t *testing.T) {
	req := require.New(t)
	repository := NewRoomRepository(openDB(t), slog.Default())

	req.NoError(repository.Save(DiskRoom{ID: "team-standup", Name: "team-standup", Connected: true, UpdatedAt: time.Now()}))
	req.NoError(repository.Save(DiskRoom{ID: "team-standup", Name: "team-standup", Connected: false, UpdatedAt: time.Now()}))

	room, err := repository.Get("team-standup")
	req.NoError(err)
	req.False(room.Connected)
}

func Test_Delete_Room(t *testing.T) {
	req := require.New(t)
	repository := NewRoomRepository(openDB(t), slog.Default())
	req.NoError(repository.Save(DiskRoom{ID: "team-standup", Name: "team-standup", UpdatedAt: time.Now()}))

	req.NoError(repository.Delete("team-standup"))
	req.NoError(repository.Delete("team-standup"))

	_, err := repository.Get(domain.RoomID("team-standup"))
	req.ErrorIs(err, errors.ErrRoomNotFound)
	rooms, err := repository.List()
	req.NoError(err)
	req.Empty(rooms)
}
