package repositories

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// RawRecord is a stored key with its value rendered as JSON.
type RawRecord struct {
	Key   string
	Value string
}

// Inspect lists the raw records under prefix in key order. An empty prefix scans everything.
// Values that are not encoded structs are reported instead of failing the scan.
func Inspect(db *badger.DB, prefix string) ([]RawRecord, error) {
	var records []RawRecord
	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.KeyCopy(nil))
			err := item.Value(func(v []byte) error {
				records = append(records, RawRecord{Key: key, Value: renderValue(v)})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return records, err
}

func renderValue(v []byte) string {
	var s structpb.Struct
	if err := proto.Unmarshal(v, &s); err != nil {
		return fmt.Sprintf("<undecodable: %v>", err)
	}
	out, err := protojson.MarshalOptions{UseProtoNames: true}.Marshal(&s)
	if err != nil {
		return fmt.Sprintf("<unrenderable: %v>", err)
	}
	return string(out)
}
