//go:generate go run go.uber.org/mock/mockgen -source=outcome.go -destination=../mocks/mock_outcome_repository.go -package=mocks
package repositories

import (
	"chat-rooms/domain"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type IOutcomeRepository interface {
	Store(outcome DiskOutcome) error
	Last(room domain.RoomID, limit int) ([]DiskOutcome, error)
}

// DiskOutcome is the persisted trace of one dispatched action.
type DiskOutcome struct {
	ID       uuid.UUID
	Room     domain.RoomID
	Name     string
	Action   string
	Reason   string
	Error    string
	Reported bool
	At       time.Time
}

type OutcomeRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewOutcomeRepository(db *badger.DB, log *slog.Logger) OutcomeRepository {
	return OutcomeRepository{db: db, log: log}
}

// outcomePrefix escapes the room so that ':' inside an id cannot reach another room's keys.
func outcomePrefix(room domain.RoomID) string {
	return fmt.Sprintf("outcome:%s:", url.QueryEscape(string(room)))
}

// Store persists an outcome under "outcome:{escaped room}:{timestamp_padded}:{uuid}".
// The 19-digit padding keeps keys in chronological order; the uuid breaks ties.
func (r OutcomeRepository) Store(outcome DiskOutcome) error {
	key := fmt.Sprintf("%s%019d:%s", outcomePrefix(outcome.Room), outcome.At.UnixNano(), outcome.ID)
	s, err := structpb.NewStruct(map[string]any{
		"id":       outcome.ID.String(),
		"room":     string(outcome.Room),
		"name":     outcome.Name,
		"action":   outcome.Action,
		"reason":   outcome.Reason,
		"error":    outcome.Error,
		"reported": outcome.Reported,
		"at":       outcome.At.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	bytes, err := proto.Marshal(s)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// Last returns at most limit outcomes of the room, newest first.
// A limit lower than one returns everything.
func (r OutcomeRepository) Last(room domain.RoomID, limit int) ([]DiskOutcome, error) {
	var outcomes []DiskOutcome
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(outcomePrefix(room))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts from the greatest possible timestamp
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(outcomes) == limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d outcomes reached", limit))
				break
			}
			err := it.Item().Value(func(value []byte) error {
				outcome, err := decodeOutcome(value)
				if err != nil {
					return err
				}
				outcomes = append(outcomes, outcome)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return outcomes, err
}

func decodeOutcome(value []byte) (DiskOutcome, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(value, &s); err != nil {
		return DiskOutcome{}, err
	}
	fields := s.GetFields()
	id, err := uuid.Parse(fields["id"].GetStringValue())
	if err != nil {
		return DiskOutcome{}, err
	}
	at, err := time.Parse(time.RFC3339Nano, fields["at"].GetStringValue())
	if err != nil {
		return DiskOutcome{}, fmt.Errorf("decode outcome at: %w", err)
	}
	return DiskOutcome{
		ID:       id,
		Room:     domain.RoomID(fields["room"].GetStringValue()),
		Name:     fields["name"].GetStringValue(),
		Action:   fields["action"].GetStringValue(),
		Reason:   fields["reason"].GetStringValue(),
		Error:    fields["error"].GetStringValue(),
		Reported: fields["reported"].GetBoolValue(),
		At:       at,
	}, nil
}
