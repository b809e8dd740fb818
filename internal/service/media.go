package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/flexbase/internal/domain"
)

// MaxUploadSize bounds a single uploaded image.
const MaxUploadSize = 10 * 1024 * 1024 // 10MB

// allowedImageTypes maps sniffed content types to the stored extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// MediaService validates uploads and stores them in a domain.FileStore.
// Records reference media as MediaURLPrefix + storage key.
type MediaService struct {
	files domain.FileStore
	now   func() time.Time
}

// NewMediaService creates a new MediaService.
func NewMediaService(files domain.FileStore) *MediaService {
	return &MediaService{files: files, now: time.Now}
}

// Validate checks size and sniffed type and returns the content type.
func (s *MediaService) Validate(up domain.Upload) (string, error) {
	if len(up.Data) == 0 {
		return "", fmt.Errorf("%w: %w: %s is empty", domain.ErrUpload, domain.ErrInvalidInput, sanitizeFilename(up.Filename))
	}
	if len(up.Data) > MaxUploadSize {
		return "", fmt.Errorf("%w: %w: %s exceeds the 10MB limit", domain.ErrUpload, domain.ErrInvalidInput, sanitizeFilename(up.Filename))
	}
	contentType := http.DetectContentType(up.Data)
	if _, ok := allowedImageTypes[contentType]; !ok {
		return "", fmt.Errorf("%w: %w: Only JPEG, PNG, GIF and WebP images are accepted.", domain.ErrUpload, domain.ErrInvalidInput)
	}
	return contentType, nil
}

// Store validates and saves one upload, returning its reference.
func (s *MediaService) Store(ctx context.Context, category domain.MediaCategory, ownerID int64, up domain.Upload) (string, error) {
	contentType, err := s.Validate(up)
	if err != nil {
		return "", err
	}

	key := s.storageKey(category, ownerID, up.Filename, contentType)
	if err := s.files.Save(ctx, key, up.Data); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpload, err)
	}
	return domain.MediaURLPrefix + key, nil
}

// StoreAll validates every upload before saving any of them. If a save
// fails, the media already saved by this call is deleted.
func (s *MediaService) StoreAll(ctx context.Context, category domain.MediaCategory, ownerID int64, uploads []domain.Upload) ([]string, error) {
	for _, up := range uploads {
		if _, err := s.Validate(up); err != nil {
			return nil, err
		}
	}

	refs := make([]string, 0, len(uploads))
	for _, up := range uploads {
		ref, err := s.Store(ctx, category, ownerID, up)
		if err != nil {
			s.DeleteAll(ctx, refs)
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Delete removes the media behind ref. References that do not point into
// the store (such as the default avatar) are ignored.
func (s *MediaService) Delete(ctx context.Context, ref string) error {
	key, ok := KeyFromRef(ref)
	if !ok {
		return nil
	}
	if err := s.files.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete media %q: %w", key, err)
	}
	return nil
}

// DeleteAll is the compensating cleanup for a failed write. Failures are
// logged, not returned.
func (s *MediaService) DeleteAll(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := s.Delete(ctx, ref); err != nil {
			slog.Warn("orphaned media cleanup failed", "ref", ref, "error", err)
		}
	}
}

// Open returns the bytes stored under key and their content type.
func (s *MediaService) Open(ctx context.Context, key string) ([]byte, string, error) {
	if key == "" || strings.Contains(key, "..") {
		return nil, "", domain.ErrNotFound
	}
	data, err := s.files.Get(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("open media %q: %w", key, err)
	}
	return data, http.DetectContentType(data), nil
}

// KeyFromRef strips MediaURLPrefix from a stored reference.
func KeyFromRef(ref string) (string, bool) {
	key, ok := strings.CutPrefix(ref, domain.MediaURLPrefix)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

func (s *MediaService) storageKey(category domain.MediaCategory, ownerID int64, filename, contentType string) string {
	ext := allowedImageTypes[contentType]
	if category == domain.MediaProfiles {
		// One picture per user; re-uploads of the same type overwrite.
		return fmt.Sprintf("%s/user_%d%s", category, ownerID, ext)
	}

	name := sanitizeFilename(filename)
	if filepath.Ext(name) == "" {
		name += ext
	}
	return fmt.Sprintf("%s/%d_%s_%s", category, s.now().UnixMilli(), uuid.NewString(), name)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if len(name) > 64 {
		name = name[len(name)-64:]
	}
	if name == "" {
		return "upload"
	}
	return name
}
