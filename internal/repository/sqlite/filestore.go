package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/flexbase/internal/domain"
)

// fileStore implements domain.FileStore using SQLite BLOBs.
type fileStore struct {
	db *sql.DB
}

// Save writes data under key, replacing any previous blob. Profile images
// reuse a fixed key per user, so overwrite is the normal path.
func (s *fileStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO file_blobs (storage_key, data, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (storage_key) DO UPDATE SET data = excluded.data, created_at = excluded.created_at`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("save media blob %q: %w", key, err)
	}
	return nil
}

func (s *fileStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM file_blobs WHERE storage_key = ?", key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get media blob %q: %w", key, err)
	}
	return data, nil
}

// Delete is a no-op for a missing key.
func (s *fileStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM file_blobs WHERE storage_key = ?", key,
	); err != nil {
		return fmt.Errorf("delete media blob %q: %w", key, err)
	}
	return nil
}
