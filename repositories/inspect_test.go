package repositories

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_Inspect_Records(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	rooms := NewRoomRepository(db, slog.Default())
	outcomes := NewOutcomeRepository(db, slog.Default())

	req.NoError(rooms.Save(DiskRoom{ID: "random", Name: "random", UpdatedAt: time.Now()}))
	req.NoError(outcomes.Store(DiskOutcome{ID: uuid.New(), Room: "random", Name: "random", Action: "join", At: time.Now()}))
	req.NoError(db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("room:broken"), []byte{0xff, 0xff})
	}))

	// Prefix only
	records, err := Inspect(db, "room:")
	req.NoError(err)
	req.Len(records, 2)
	req.Equal("room:broken", records[0].Key)
	req.Contains(records[0].Value, "<undecodable")
	req.Equal("room:random", records[1].Key)
	var fields map[string]any
	req.NoError(json.Unmarshal([]byte(records[1].Value), &fields))
	req.Equal("random", fields["name"])

	// Everything
	all, err := Inspect(db, "")
	req.NoError(err)
	req.Len(all, 3)
	req.Contains(all[0].Key, "outcome:random:")
}
