package userdata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const selectValueQuery = `SELECT data_value FROM user_data WHERE user_id = ? AND data_key = ?`

const upsertValueQuery = `INSERT INTO user_data (user_id, data_key, data_value, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (user_id, data_key) DO UPDATE SET data_value = EXCLUDED.data_value, updated_at = EXCLUDED.updated_at`

const upsertValueQueryMySQL = `INSERT INTO user_data (user_id, data_key, data_value, updated_at)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE data_value = VALUES(data_value), updated_at = VALUES(updated_at)`

// SQLStore keeps user lists in the user_data table. It works with the
// postgres, sqlite and mysql drivers.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Get(ctx context.Context, userID, key string) ([]byte, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind(selectValueQuery), userID, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("get %s for %s: %w", key, userID, err)
	}
	return []byte(value), nil
}

func (s *SQLStore) Put(ctx context.Context, userID, key string, value []byte) error {
	query := upsertValueQuery
	if s.db.DriverName() == "mysql" {
		query = upsertValueQueryMySQL
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(query), userID, key, string(value), s.now().UTC())
	if err != nil {
		return fmt.Errorf("put %s for %s: %w", key, userID, err)
	}
	return nil
}
