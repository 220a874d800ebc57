package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"neurograph/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// EncodeNetwork serializes rec, stamping the current schema/codec versions
// so incompatible readers can detect the record.
func EncodeNetwork(rec model.NetworkRecord) ([]byte, error) {
	rec.SchemaVersion = CurrentSchemaVersion
	rec.CodecVersion = CurrentCodecVersion
	return json.Marshal(rec)
}

// DecodeNetwork deserializes a network record and rejects version tags this
// reader does not understand.
func DecodeNetwork(data []byte) (model.NetworkRecord, error) {
	var rec model.NetworkRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.NetworkRecord{}, err
	}
	if err := checkVersion(rec.VersionedRecord); err != nil {
		return model.NetworkRecord{}, err
	}
	return rec, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return fmt.Errorf("%w: schema=%d codec=%d", ErrVersionMismatch, v.SchemaVersion, v.CodecVersion)
	}
	return nil
}
