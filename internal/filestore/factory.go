package filestore

import (
	"context"
	"fmt"

	"github.com/msomdec/flexbase/internal/config"
	"github.com/msomdec/flexbase/internal/domain"
)

// BlobSource hands out the database-backed store used by the sqlite backend.
type BlobSource interface {
	FileStore() domain.FileStore
}

// NewFromConfig creates the FileStore selected by cfg.Backend.
func NewFromConfig(ctx context.Context, cfg config.MediaConfig, db BlobSource) (domain.FileStore, error) {
	switch cfg.Backend {
	case "", "sqlite":
		return db.FileStore(), nil
	case "filesystem":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("filesystem media backend requires media.dir to be set")
		}
		return NewFileSystemStore(cfg.Dir)
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 media backend requires media.s3_bucket to be set")
		}
		return NewS3StoreFromConfig(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown media backend: %s", cfg.Backend)
	}
}
