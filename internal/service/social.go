package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/flexbase/internal/domain"
)

// SearchLimit caps the number of users returned by a username search.
const SearchLimit = 8

// SocialService maintains the follow graph. Callers pass the already
// authenticated user; identity is never re-checked here.
type SocialService struct {
	users   domain.UserRepository
	follows domain.FollowRepository
}

// NewSocialService creates a new SocialService.
func NewSocialService(users domain.UserRepository, follows domain.FollowRepository) *SocialService {
	return &SocialService{users: users, follows: follows}
}

// Follow adds the edge self -> target.
func (s *SocialService) Follow(ctx context.Context, self *domain.User, targetUsername string) error {
	target, err := s.resolveOther(ctx, self, targetUsername)
	if err != nil {
		return err
	}
	if err := s.follows.Add(ctx, self.ID, target.ID); err != nil {
		return fmt.Errorf("follow %s: %w", target.Username, err)
	}
	return nil
}

// Unfollow removes the edge self -> target. Removing an absent edge succeeds.
func (s *SocialService) Unfollow(ctx context.Context, self *domain.User, targetUsername string) error {
	target, err := s.resolveOther(ctx, self, targetUsername)
	if err != nil {
		return err
	}
	if _, err := s.follows.Remove(ctx, self.ID, target.ID); err != nil {
		return fmt.Errorf("unfollow %s: %w", target.Username, err)
	}
	return nil
}

// UnfollowUser is Unfollow for a username taken from a request body.
func (s *SocialService) UnfollowUser(ctx context.Context, self *domain.User, username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: Username required", domain.ErrInvalidInput)
	}
	return s.Unfollow(ctx, self, username)
}

// RemoveFollower removes the edge follower -> self. The resulting state is
// the same as the follower unfollowing self.
func (s *SocialService) RemoveFollower(ctx context.Context, self *domain.User, followerUsername string) error {
	if strings.TrimSpace(followerUsername) == "" {
		return fmt.Errorf("%w: Username required", domain.ErrInvalidInput)
	}
	follower, err := s.resolveOther(ctx, self, followerUsername)
	if err != nil {
		return err
	}
	if _, err := s.follows.Remove(ctx, follower.ID, self.ID); err != nil {
		return fmt.Errorf("remove follower %s: %w", follower.Username, err)
	}
	return nil
}

// Followers lists the users following userID, oldest edge first.
func (s *SocialService) Followers(ctx context.Context, userID int64) ([]domain.UserSummary, error) {
	return s.follows.ListFollowers(ctx, userID)
}

// Following lists the users userID follows, oldest edge first.
func (s *SocialService) Following(ctx context.Context, userID int64) ([]domain.UserSummary, error) {
	return s.follows.ListFollowing(ctx, userID)
}

func (s *SocialService) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	return s.follows.Exists(ctx, followerID, followeeID)
}

// Search returns up to SearchLimit users whose username starts with q,
// ignoring case. An empty query yields an empty result.
func (s *SocialService) Search(ctx context.Context, q string) ([]domain.UserSummary, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []domain.UserSummary{}, nil
	}
	users, err := s.users.SearchByPrefix(ctx, q, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

// RepairCounts recomputes follower/following counters from the edge table.
func (s *SocialService) RepairCounts(ctx context.Context) (int64, error) {
	return s.follows.RepairCounts(ctx)
}

// resolveOther loads username, rejecting self before touching storage.
func (s *SocialService) resolveOther(ctx context.Context, self *domain.User, username string) (*domain.User, error) {
	if username == self.Username {
		return nil, domain.ErrSelfFollow
	}
	other, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	if other.ID == self.ID {
		return nil, domain.ErrSelfFollow
	}
	return other, nil
}
