package domain

import "context"

// FollowRepository stores directed follow edges. Each edge is one row, and
// the follower/following counters on both users are maintained in the same
// transaction as the edge.
type FollowRepository interface {
	// Add creates the edge followerID -> followeeID.
	// Returns ErrAlreadyFollowing if it exists and ErrNotFound if either user is missing.
	Add(ctx context.Context, followerID, followeeID int64) error
	// Remove deletes the edge if present and reports whether a row was removed.
	Remove(ctx context.Context, followerID, followeeID int64) (bool, error)
	Exists(ctx context.Context, followerID, followeeID int64) (bool, error)
	ListFollowers(ctx context.Context, userID int64) ([]UserSummary, error)
	ListFollowing(ctx context.Context, userID int64) ([]UserSummary, error)
	// RepairCounts recomputes every user's counters from the edge table and
	// returns the number of users whose counters were wrong.
	RepairCounts(ctx context.Context) (int64, error)
}
