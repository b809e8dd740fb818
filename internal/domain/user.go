package domain

import (
	"context"
	"time"
)

// DefaultProfileImage is shown for users who never uploaded a picture.
const DefaultProfileImage = "/static/img/default-avatar.png"

// User represents a registered collector.
type User struct {
	ID             int64
	Username       string
	Email          string
	PasswordHash   string
	Bio            string
	ProfileImage   string
	Followers      []int64 // IDs of users following this user
	Following      []int64 // IDs of users this user follows
	FollowersCount int
	FollowingCount int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Avatar returns the profile image reference, falling back to the placeholder.
func (u *User) Avatar() string {
	if u.ProfileImage == "" {
		return DefaultProfileImage
	}
	return u.ProfileImage
}

// UserSummary is the trimmed-down view used by follower lists and search.
type UserSummary struct {
	ID           int64
	Username     string
	ProfileImage string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdateProfile(ctx context.Context, id int64, bio string, profileImage string) error
	// SearchByPrefix matches usernames case-insensitively, ordered by
	// lower(username) then id.
	SearchByPrefix(ctx context.Context, prefix string, limit int) ([]UserSummary, error)
}
