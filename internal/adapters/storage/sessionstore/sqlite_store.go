package sessionstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"siuportal/internal/adapters/storage"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new session store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a session Record by its ID.
// PRE: id is non-empty
// POST: Returns the record or ErrNotFound
func (s *SQLiteStore) Get(ctx context.Context, id string) (Record, error) {
	query := "SELECT id, token, user_json, created_at FROM session WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	return entity, err
}

// Save persists a session Record.
// PRE: entity.ID is non-empty
// POST: Record is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity Record) error {
	fields := []string{"id", "token", "user_json", "created_at"}
	placeholders := []string{"?", "?", "?", "?"}
	updates := []string{
		"token=excluded.token",
		"user_json=excluded.user_json",
	}

	query := fmt.Sprintf(
		"INSERT INTO session (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Token,
		entity.UserJSON,
		entity.CreatedAt.Format("2006-01-02T15:04:05.999999999Z07:00"),
	)
	return err
}

// Delete removes a session Record.
// PRE: id is non-empty
// POST: Record with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE id = ?", id)
	return err
}

// DeleteExpired drops every record created before the cutoff.
func (s *SQLiteStore) DeleteExpired(ctx context.Context, cutoff time.Time) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE created_at < ?",
		cutoff.Format("2006-01-02T15:04:05.999999999Z07:00"))
	return err
}

// scanRecord extracts a Record from a row scanner function.
func scanRecord(scan func(dest ...interface{}) error) (Record, error) {
	var entity Record
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.Token,
		&entity.UserJSON,
		&createdAt,
	)
	if err != nil {
		return Record{}, err
	}
	entity.CreatedAt, _ = parseTime(createdAt)
	return entity, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
