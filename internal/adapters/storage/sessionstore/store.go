package sessionstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// ErrNotFound is returned when no record exists for an id.
var ErrNotFound = errors.New("session not found")

// Record is one persisted login. The cookie only carries the record
// id; the token and profile never leave the server.
type Record struct {
	ID        string
	Token     string
	UserJSON  string
	CreatedAt time.Time
}

// Store persists session records across restarts.
type Store interface {
	Get(ctx context.Context, id string) (Record, error)
	Save(ctx context.Context, value Record) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, cutoff time.Time) error
}

// NewRecordID returns a 128-bit random hex id for a new session.
func NewRecordID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
