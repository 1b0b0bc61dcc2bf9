package repositories

import (
	"chat-rooms/domain"
	"chat-rooms/errors"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const roomPrefix = "room:"

type IRoomRepository interface {
	Save(room DiskRoom) error
	Get(id domain.RoomID) (DiskRoom, error)
	Delete(id domain.RoomID) error
	List() ([]DiskRoom, error)
}

// DiskRoom is the persisted state of a RoomEntry.
type DiskRoom struct {
	ID        domain.RoomID
	Name      string
	Connected bool
	AutoJoin  bool
	UpdatedAt time.Time
}

type RoomRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewRoomRepository(db *badger.DB, log *slog.Logger) RoomRepository {
	return RoomRepository{db: db, log: log}
}

func roomKey(id domain.RoomID) []byte {
	return []byte(roomPrefix + string(id))
}

// Save upserts the room under "room:{id}".
func (r RoomRepository) Save(room DiskRoom) error {
	bytes, err := encodeRoom(room)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(roomKey(room.ID), bytes)
	})
}

func (r RoomRepository) Get(id domain.RoomID) (DiskRoom, error) {
	var room DiskRoom
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(roomKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			room, err = decodeRoom(value)
			return err
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return DiskRoom{}, fmt.Errorf("%w: %s", errors.ErrRoomNotFound, id)
	}
	return room, err
}

// Delete is idempotent.
func (r RoomRepository) Delete(id domain.RoomID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(roomKey(id))
	})
}

// List returns every persisted room sorted by name.
func (r RoomRepository) List() ([]DiskRoom, error) {
	var rooms []DiskRoom
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(roomPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				room, err := decodeRoom(value)
				if err != nil {
					return err
				}
				rooms = append(rooms, room)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })
	return rooms, nil
}

func encodeRoom(room DiskRoom) ([]byte, error) {
	s, err := structpb.NewStruct(map[string]any{
		"id":         string(room.ID),
		"name":       room.Name,
		"connected":  room.Connected,
		"auto_join":  room.AutoJoin,
		"updated_at": room.UpdatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func decodeRoom(value []byte) (DiskRoom, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(value, &s); err != nil {
		return DiskRoom{}, err
	}
	fields := s.GetFields()
	updatedAt, err := time.Parse(time.RFC3339Nano, fields["updated_at"].GetStringValue())
	if err != nil {
		return DiskRoom{}, fmt.Errorf("decode room updated_at: %w", err)
	}
	return DiskRoom{
		ID:        domain.RoomID(fields["id"].GetStringValue()),
		Name:      fields["name"].GetStringValue(),
		Connected: fields["connected"].GetBoolValue(),
		AutoJoin:  fields["auto_join"].GetBoolValue(),
		UpdatedAt: updatedAt,
	}, nil
}
