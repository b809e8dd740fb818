package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/flexbase/internal/domain"
)

// MaxBioLength bounds the profile bio.
const MaxBioLength = 300

// ProfileView is everything a profile page shows.
type ProfileView struct {
	User        *domain.User
	Followers   []domain.UserSummary
	Following   []domain.UserSummary
	Posts       []domain.Post
	Collections []domain.CollectionItem
	IsFollowing bool // viewer follows User
	ViewingSelf bool
}

// ProfileService edits and assembles user profiles.
type ProfileService struct {
	users       domain.UserRepository
	social      *SocialService
	posts       *PostService
	collections *CollectionService
	media       *MediaService
}

// NewProfileService creates a new ProfileService.
func NewProfileService(users domain.UserRepository, social *SocialService, posts *PostService, collections *CollectionService, media *MediaService) *ProfileService {
	return &ProfileService{
		users:       users,
		social:      social,
		posts:       posts,
		collections: collections,
		media:       media,
	}
}

// UpdateProfile sets the bio and, when picture is non-nil, replaces the
// profile image. An old image stored under a different key is removed
// once the row points at the new one.
func (s *ProfileService) UpdateProfile(ctx context.Context, user *domain.User, bio string, picture *domain.Upload) (*domain.User, error) {
	bio = strings.TrimSpace(bio)
	if utf8.RuneCountInString(bio) > MaxBioLength {
		return nil, invalid(fmt.Sprintf("Bio must be at most %d characters.", MaxBioLength))
	}

	image := user.ProfileImage
	if picture != nil {
		ref, err := s.media.Store(ctx, domain.MediaProfiles, user.ID, *picture)
		if err != nil {
			return nil, err
		}
		image = ref
	}

	if err := s.users.UpdateProfile(ctx, user.ID, bio, image); err != nil {
		if image != user.ProfileImage {
			s.media.DeleteAll(ctx, []string{image})
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if image != user.ProfileImage {
		s.media.DeleteAll(ctx, []string{user.ProfileImage})
	}

	return s.users.GetByID(ctx, user.ID)
}

// View assembles the profile of username as seen by viewer.
func (s *ProfileService) View(ctx context.Context, viewer *domain.User, username string) (*ProfileView, error) {
	var (
		target *domain.User
		err    error
	)
	if viewer != nil && username == viewer.Username {
		target = viewer
	} else if target, err = s.users.GetByUsername(ctx, username); err != nil {
		return nil, fmt.Errorf("find profile %q: %w", username, err)
	}
	return s.assemble(ctx, viewer, target)
}

// ViewSelf assembles the viewer's own profile.
func (s *ProfileService) ViewSelf(ctx context.Context, viewer *domain.User) (*ProfileView, error) {
	if viewer == nil {
		return nil, errors.New("view self: no viewer")
	}
	return s.assemble(ctx, viewer, viewer)
}

func (s *ProfileService) assemble(ctx context.Context, viewer, target *domain.User) (*ProfileView, error) {
	view := &ProfileView{
		User:        target,
		ViewingSelf: viewer != nil && viewer.ID == target.ID,
	}

	var err error
	if view.Followers, err = s.social.Followers(ctx, target.ID); err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	if view.Following, err = s.social.Following(ctx, target.ID); err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	if view.Posts, err = s.posts.ListByOwner(ctx, target.ID); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if view.Collections, err = s.collections.ListByOwner(ctx, target.ID); err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	if viewer != nil && !view.ViewingSelf {
		if view.IsFollowing, err = s.social.IsFollowing(ctx, viewer.ID, target.ID); err != nil {
			return nil, fmt.Errorf("check follow: %w", err)
		}
	}
	return view, nil
}
