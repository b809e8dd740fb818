package domain

import "context"

// Database is a storage backend: its lifecycle plus the repositories
// bound to it. The SQLite implementation owns its migration files; another
// backend would bring its own.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error

	Users() UserRepository
	Follows() FollowRepository
	Collections() CollectionRepository
	Posts() PostRepository
	// FileStore is the backend's own media store, used when no external
	// media backend is configured.
	FileStore() FileStore
}
