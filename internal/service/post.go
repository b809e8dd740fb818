package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msomdec/flexbase/internal/domain"
)

// PostService creates and lists image posts.
type PostService struct {
	posts domain.PostRepository
	media *MediaService
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository, media *MediaService) *PostService {
	return &PostService{posts: posts, media: media}
}

// CreatePost validates the post, stores its images and saves it. Stored
// images are removed again if the post cannot be saved.
func (s *PostService) CreatePost(ctx context.Context, ownerID int64, caption string, hashtags []string, uploads []domain.Upload) (*domain.Post, error) {
	if len(uploads) == 0 {
		return nil, invalid("At least one image is required.")
	}
	if len(uploads) > domain.MaxPostImages {
		return nil, invalid(fmt.Sprintf("At most %d images are allowed.", domain.MaxPostImages))
	}
	caption = strings.TrimSpace(caption)
	if utf8.RuneCountInString(caption) > domain.MaxCaptionLength {
		return nil, invalid(fmt.Sprintf("Caption must be at most %d characters.", domain.MaxCaptionLength))
	}

	refs, err := s.media.StoreAll(ctx, domain.MediaPosts, ownerID, uploads)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		UserID:   ownerID,
		Images:   refs,
		Caption:  caption,
		Hashtags: NormalizeHashtags(hashtags),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		s.media.DeleteAll(ctx, refs)
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// ListByOwner returns the owner's posts, newest first.
func (s *PostService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Post, error) {
	return s.posts.ListByUser(ctx, ownerID)
}

// NormalizeHashtags splits each raw value on whitespace and commas, strips
// leading '#', drops empties and removes duplicates keeping first occurrence.
func NormalizeHashtags(raw []string) []string {
	tags := []string{}
	seen := make(map[string]bool)
	for _, v := range raw {
		fields := strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		for _, f := range fields {
			tag := strings.TrimLeft(f, "#")
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
