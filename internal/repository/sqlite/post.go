package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/flexbase/internal/domain"
)

// postRepo implements domain.PostRepository using SQLite.
type postRepo struct {
	db *sql.DB
}

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		"INSERT INTO posts (user_id, caption, created_at) VALUES (?, ?, ?)",
		post.UserID, post.Caption, now,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert post: %w", err)
	}

	postID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get post id: %w", err)
	}

	for i, ref := range post.Images {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO post_images (post_id, sort_order, ref) VALUES (?, ?, ?)",
			postID, i, ref,
		); err != nil {
			return fmt.Errorf("insert post image: %w", err)
		}
	}

	for i, tag := range post.Hashtags {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO post_hashtags (post_id, sort_order, tag) VALUES (?, ?, ?)",
			postID, i, tag,
		); err != nil {
			return fmt.Errorf("insert hashtag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	post.ID = postID
	post.CreatedAt = now
	return nil
}

// ListByUser returns the user's posts newest first.
func (r *postRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, caption, created_at FROM posts
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Caption, &p.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range posts {
		if posts[i].Images, err = loadRefs(ctx, r.db,
			"SELECT ref FROM post_images WHERE post_id = ? ORDER BY sort_order", posts[i].ID); err != nil {
			return nil, fmt.Errorf("load post images: %w", err)
		}
		if posts[i].Hashtags, err = loadRefs(ctx, r.db,
			"SELECT tag FROM post_hashtags WHERE post_id = ? ORDER BY sort_order", posts[i].ID); err != nil {
			return nil, fmt.Errorf("load hashtags: %w", err)
		}
	}
	return posts, nil
}
