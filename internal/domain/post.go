package domain

import (
	"context"
	"time"
)

const (
	MaxPostImages    = 10
	MaxCaptionLength = 2200
)

type Post struct {
	ID        int64
	UserID    int64
	Images    []string
	Caption   string
	Hashtags  []string // stored without the leading '#'
	CreatedAt time.Time
}

type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	ListByUser(ctx context.Context, userID int64) ([]Post, error)
}
