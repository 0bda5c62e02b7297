package sessionstore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"siuportal/internal/adapters/storage"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return NewSQLiteStore(db)
}

func TestSaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := Record{
		ID:        NewRecordID(),
		Token:     "tok-xyz",
		UserJSON:  `{"id":7,"nama":"Budi","role":"member"}`,
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Token != rec.Token || got.UserJSON != rec.UserJSON {
		t.Errorf("Get = %+v", got)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
}

func TestGetMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := Record{ID: "fixed", Token: "old", UserJSON: "{}", CreatedAt: time.Now().UTC()}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	rec.Token = "new"
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save (update): %v", err)
	}

	got, err := store.Get(ctx, "fixed")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Token != "new" {
		t.Errorf("Token = %q, want new", got.Token)
	}
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := Record{ID: "gone", Token: "t", UserJSON: "{}", CreatedAt: time.Now().UTC()}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteExpired(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	old := Record{ID: "old", Token: "t", UserJSON: "{}", CreatedAt: now.Add(-48 * time.Hour)}
	fresh := Record{ID: "fresh", Token: "t", UserJSON: "{}", CreatedAt: now.Add(-time.Hour)}
	for _, r := range []Record{old, fresh} {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("Save(%s): %v", r.ID, err)
		}
	}

	if err := store.DeleteExpired(ctx, now.Add(-24*time.Hour)); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}

	if _, err := store.Get(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old record should be gone, got %v", err)
	}
	if _, err := store.Get(ctx, "fresh"); err != nil {
		t.Errorf("fresh record should survive, got %v", err)
	}
}

// A session written by one process must be readable after reopening the
// database file, which is what keeps logins alive across restarts.
func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	db1, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := storage.InitDB(db1); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	rec := Record{ID: NewRecordID(), Token: "tok", UserJSON: `{"id":1}`, CreatedAt: time.Now().UTC()}
	if err := NewSQLiteStore(db1).Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	db1.Close()

	db2, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()

	got, err := NewSQLiteStore(db2).Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Token != "tok" {
		t.Errorf("Token = %q after reopen", got.Token)
	}
}

func TestNewRecordID(t *testing.T) {
	a, b := NewRecordID(), NewRecordID()
	if len(a) != 32 {
		t.Errorf("id length = %d, want 32 hex chars", len(a))
	}
	if a == b {
		t.Error("ids must be unique")
	}
}
