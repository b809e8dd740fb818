package domain

import "context"

// MediaCategory namespaces stored uploads.
type MediaCategory string

const (
	MediaProfiles    MediaCategory = "profiles"
	MediaCollections MediaCategory = "collections"
	MediaPosts       MediaCategory = "posts"
)

// MediaURLPrefix is prepended to a storage key to form the reference
// persisted on records and served over HTTP.
const MediaURLPrefix = "/uploads/"

// Upload is a single file received from a client.
type Upload struct {
	Filename string
	Data     []byte
}

// FileStore abstracts raw file byte storage. Save overwrites an existing key.
// Implementations live in the sqlite repository (BLOBs) and in the
// filestore package (filesystem, S3).
type FileStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
