package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/flexbase/internal/domain"
)

// followRepo implements domain.FollowRepository using SQLite.
type followRepo struct {
	db *sql.DB
}

func (r *followRepo) Add(ctx context.Context, followerID, followeeID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?)`,
		followerID, followeeID, time.Now().UTC(),
	)
	if err != nil {
		switch {
		case isUniqueConstraintError(err):
			return domain.ErrAlreadyFollowing
		case isForeignKeyError(err):
			return domain.ErrNotFound
		case strings.Contains(err.Error(), "CHECK constraint failed"):
			return domain.ErrSelfFollow
		}
		return fmt.Errorf("insert follow: %w", err)
	}

	if err := adjustCounts(ctx, tx, followerID, followeeID, 1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *followRepo) Remove(ctx context.Context, followerID, followeeID int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"DELETE FROM follows WHERE follower_id = ? AND followee_id = ?", followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("delete follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	if err := adjustCounts(ctx, tx, followerID, followeeID, -1); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

func (r *followRepo) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = ? AND followee_id = ?)",
		followerID, followeeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return exists, nil
}

func (r *followRepo) ListFollowers(ctx context.Context, userID int64) ([]domain.UserSummary, error) {
	return r.listSummaries(ctx,
		`SELECT u.id, u.username, u.profile_image FROM follows f
		 JOIN users u ON u.id = f.follower_id
		 WHERE f.followee_id = ?
		 ORDER BY f.created_at, f.follower_id`, userID)
}

func (r *followRepo) ListFollowing(ctx context.Context, userID int64) ([]domain.UserSummary, error) {
	return r.listSummaries(ctx,
		`SELECT u.id, u.username, u.profile_image FROM follows f
		 JOIN users u ON u.id = f.followee_id
		 WHERE f.follower_id = ?
		 ORDER BY f.created_at, f.followee_id`, userID)
}

func (r *followRepo) RepairCounts(ctx context.Context) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE users SET
			followers_count = (SELECT COUNT(*) FROM follows WHERE followee_id = users.id),
			following_count = (SELECT COUNT(*) FROM follows WHERE follower_id = users.id)
		WHERE followers_count <> (SELECT COUNT(*) FROM follows WHERE followee_id = users.id)
		   OR following_count <> (SELECT COUNT(*) FROM follows WHERE follower_id = users.id)`)
	if err != nil {
		return 0, fmt.Errorf("repair follow counts: %w", err)
	}

	fixed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return fixed, nil
}

func (r *followRepo) listSummaries(ctx context.Context, query string, userID int64) ([]domain.UserSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}
	defer rows.Close()

	users := []domain.UserSummary{}
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.ProfileImage); err != nil {
			return nil, fmt.Errorf("scan user summary: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// adjustCounts moves both sides of an edge by delta inside tx.
func adjustCounts(ctx context.Context, tx *sql.Tx, followerID, followeeID int64, delta int) error {
	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET following_count = following_count + ? WHERE id = ?", delta, followerID,
	); err != nil {
		return fmt.Errorf("update following count: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET followers_count = followers_count + ? WHERE id = ?", delta, followeeID,
	); err != nil {
		return fmt.Errorf("update followers count: %w", err)
	}
	return nil
}
