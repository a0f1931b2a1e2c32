// Package storage provides the slot store adapters: named slots of
// serialized state in device-local persistent storage.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileSlotStore keeps one JSON file per slot under a data directory.
// Durable only on this device; slots written by another process win on a
// last-writer basis.
type FileSlotStore struct {
	dir string
}

func NewFileSlotStore(dir string) (*FileSlotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create slot directory")
	}
	return &FileSlotStore{dir: dir}, nil
}

func (s *FileSlotStore) Save(slot string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "serialize slot %q", slot)
	}
	if err := os.WriteFile(s.path(slot), data, 0o666); err != nil {
		return errors.Wrapf(err, "write slot %q", slot)
	}
	return nil
}

func (s *FileSlotStore) Load(slot string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(slot))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "read slot %q", slot)
	}
	// Malformed content loads as absent so callers fall back to their
	// empty shape.
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *FileSlotStore) Delete(slot string) error {
	err := os.Remove(s.path(slot))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete slot %q", slot)
	}
	return nil
}

func (s *FileSlotStore) path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}
