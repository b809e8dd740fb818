package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/msomdec/flexbase/internal/domain"
	"github.com/msomdec/flexbase/internal/repository/sqlite"
)

// Verify that *sqlite.DB implements domain.Database at compile time.
var _ domain.Database = (*sqlite.DB)(nil)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createUser inserts a user with a derived email and returns it.
func createUser(t *testing.T, db *sqlite.DB, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	if err := db.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return u
}

func TestNew(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file was not created")
	}

	var fkEnabled int
	if err := db.SqlDB.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Fatalf("check foreign_keys: %v", err)
	}
	if fkEnabled != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fkEnabled)
	}

	var mode string
	if err := db.SqlDB.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("check journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Fatalf("expected journal_mode=wal, got %q", mode)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate (idempotent): %v", err)
	}

	var count int
	err := db.SqlDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM goose_db_version WHERE version_id > 0").Scan(&count)
	if err != nil {
		t.Fatalf("count goose_db_version: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5 migration records, got %d", count)
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	db := newTestDB(t)
	store := db.FileStore()
	ctx := context.Background()

	if err := store.Save(ctx, "profiles/user_1.png", []byte("first")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "profiles/user_1.png", []byte("second")); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}

	data, err := store.Get(ctx, "profiles/user_1.png")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected overwritten data, got %q", data)
	}

	if err := store.Delete(ctx, "profiles/user_1.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "profiles/user_1.png"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "profiles/user_1.png"); err != nil {
		t.Fatalf("Delete of missing key: %v", err)
	}
}
