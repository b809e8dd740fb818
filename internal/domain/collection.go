package domain

import (
	"context"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// MaxCollectionImages bounds the images attached to one collection item.
const MaxCollectionImages = 5

// CollectionItem is an owned pair of sneakers and its custody history.
type CollectionItem struct {
	ID             int64
	UserID         int64
	Images         []string
	Brand          string
	BoughtOn       time.Time
	BoughtAtPrice  float64
	MarketPrice    float64
	PreviousOwners []PreviousOwner
	CreatedAt      time.Time
}

// PreviousOwner is one interval in a provenance timeline. User holds a
// username or free-text name; it is not a foreign key.
type PreviousOwner struct {
	User string
	From time.Time
	To   time.Time
}

// CollectionRepository persists collection items with their images and
// provenance in a single transaction.
type CollectionRepository interface {
	Create(ctx context.Context, item *CollectionItem) error
	GetByID(ctx context.Context, id int64) (*CollectionItem, error)
	ListByUser(ctx context.Context, userID int64) ([]CollectionItem, error)
}
