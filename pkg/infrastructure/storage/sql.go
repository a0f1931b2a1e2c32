package storage

import (
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// SQLSlotStore keeps slots in a single key/value table. Same contract as the
// file store, for deployments that already run MySQL.
type SQLSlotStore struct {
	db *sqlx.DB
}

func NewSQLSlotStore(db *sqlx.DB) *SQLSlotStore {
	return &SQLSlotStore{db: db}
}

func (s *SQLSlotStore) Save(slot string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "serialize slot %q", slot)
	}
	_, err = s.db.Exec(
		`INSERT INTO slots (name, data) VALUES (?, ?) ON DUPLICATE KEY UPDATE data = VALUES(data)`,
		slot, data,
	)
	return errors.Wrapf(err, "write slot %q", slot)
}

func (s *SQLSlotStore) Load(slot string, v any) (bool, error) {
	var data []byte
	err := s.db.Get(&data, `SELECT data FROM slots WHERE name = ?`, slot)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "read slot %q", slot)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *SQLSlotStore) Delete(slot string) error {
	_, err := s.db.Exec(`DELETE FROM slots WHERE name = ?`, slot)
	return errors.Wrapf(err, "delete slot %q", slot)
}
