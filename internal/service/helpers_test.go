package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/flexbase/internal/domain"
	"github.com/msomdec/flexbase/internal/repository/sqlite"
	"github.com/msomdec/flexbase/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00")
	webpBytes = []byte("RIFF\x24\x00\x00\x00WEBPVP8 ")
)

type testEnv struct {
	db          *sqlite.DB
	files       domain.FileStore
	auth        *service.AuthService
	social      *service.SocialService
	media       *service.MediaService
	collections *service.CollectionService
	posts       *service.PostService
	profiles    *service.ProfileService
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	files := db.FileStore()
	media := service.NewMediaService(files)
	social := service.NewSocialService(db.Users(), db.Follows())
	collections := service.NewCollectionService(db.Collections(), media)
	posts := service.NewPostService(db.Posts(), media)
	return &testEnv{
		db:    db,
		files: files,
		// Use cost 4 for fast tests.
		auth:        service.NewAuthService(db.Users(), testJWTSecret, 4, time.Hour),
		social:      social,
		media:       media,
		collections: collections,
		posts:       posts,
		profiles:    service.NewProfileService(db.Users(), social, posts, collections, media),
	}
}

func (e *testEnv) register(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := e.auth.Register(context.Background(), username, username+"@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register %q: %v", username, err)
	}
	return u
}

// reload fetches the current state of u.
func (e *testEnv) reload(t *testing.T, u *domain.User) *domain.User {
	t.Helper()
	fresh, err := e.db.Users().GetByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetByID(%d): %v", u.ID, err)
	}
	return fresh
}

// countBlobs reports how many media objects are stored.
func (e *testEnv) countBlobs(t *testing.T) int {
	t.Helper()
	var n int
	if err := e.db.SqlDB.QueryRow("SELECT COUNT(*) FROM file_blobs").Scan(&n); err != nil {
		t.Fatalf("count blobs: %v", err)
	}
	return n
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
