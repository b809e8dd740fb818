package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/flexbase/internal/domain"
)

const userColumns = `id, username, email, password_hash, bio, profile_image,
	followers_count, following_count, created_at, updated_at`

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, bio, profile_image, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash, user.Bio, user.ProfileImage, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			if strings.Contains(err.Error(), "users.email") {
				return domain.ErrDuplicateEmail
			}
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

// GetByUsername matches the username exactly (case-sensitive).
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "username = ?", username)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, bio string, profileImage string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET bio = ?, profile_image = ?, updated_at = ? WHERE id = ?`,
		bio, profileImage, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]domain.UserSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, profile_image FROM users
		 WHERE username LIKE ? ESCAPE '\'
		 ORDER BY lower(username), id
		 LIMIT ?`,
		escapeLike(prefix)+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
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

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Bio, &user.ProfileImage,
		&user.FollowersCount, &user.FollowingCount, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	if user.Followers, err = r.edgeIDs(ctx,
		"SELECT follower_id FROM follows WHERE followee_id = ? ORDER BY created_at, follower_id", user.ID); err != nil {
		return nil, err
	}
	if user.Following, err = r.edgeIDs(ctx,
		"SELECT followee_id FROM follows WHERE follower_id = ? ORDER BY created_at, followee_id", user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) edgeIDs(ctx context.Context, query string, userID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list follow edges: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan follow edge: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// escapeLike neutralises LIKE wildcards so user input is matched literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
