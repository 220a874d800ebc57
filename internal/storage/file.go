package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"neurograph/internal/model"
)

// ErrNotFound distinguishes a missing network file from other I/O failures.
var ErrNotFound = errors.New("network file not found")

// SaveFile writes rec to path, overwriting an existing file. A failed write
// leaves no committed state; callers treat the error as not-saved.
func SaveFile(path string, rec model.NetworkRecord) error {
	data, err := EncodeNetwork(rec)
	if err != nil {
		return fmt.Errorf("encode network %s: %w", rec.ID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a network record from path. A missing file fails with
// ErrNotFound; an incompatible version tag fails with ErrVersionMismatch.
func LoadFile(path string) (model.NetworkRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.NetworkRecord{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return model.NetworkRecord{}, fmt.Errorf("read %s: %w", path, err)
	}
	rec, err := DecodeNetwork(data)
	if err != nil {
		return model.NetworkRecord{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return rec, nil
}
