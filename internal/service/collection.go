package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/msomdec/flexbase/internal/domain"
)

// AddItemInput carries the raw form fields of a new collection item.
// The previous-owner slices are parallel: entry i of each describes one interval.
type AddItemInput struct {
	Brand         string
	BoughtOn      string
	BoughtAtPrice string
	MarketPrice   string
	PrevOwners    []string
	PrevFrom      []string
	PrevTo        []string
}

// CollectionService manages collection items and their provenance.
type CollectionService struct {
	items domain.CollectionRepository
	media *MediaService
	now   func() time.Time
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(items domain.CollectionRepository, media *MediaService) *CollectionService {
	return &CollectionService{items: items, media: media, now: time.Now}
}

// AddItem validates the input, stores the images, then persists the item.
// Stored images are removed again if the item cannot be saved.
func (s *CollectionService) AddItem(ctx context.Context, ownerID int64, in AddItemInput, uploads []domain.Upload) (*domain.CollectionItem, error) {
	item, err := s.parse(in, len(uploads))
	if err != nil {
		return nil, err
	}
	item.UserID = ownerID

	refs, err := s.media.StoreAll(ctx, domain.MediaCollections, ownerID, uploads)
	if err != nil {
		return nil, err
	}
	item.Images = refs

	if err := s.items.Create(ctx, item); err != nil {
		s.media.DeleteAll(ctx, refs)
		return nil, fmt.Errorf("create collection item: %w", err)
	}
	return item, nil
}

// ListByOwner returns the owner's items, oldest first.
func (s *CollectionService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.CollectionItem, error) {
	return s.items.ListByUser(ctx, ownerID)
}

func (s *CollectionService) GetByID(ctx context.Context, id int64) (*domain.CollectionItem, error) {
	return s.items.GetByID(ctx, id)
}

// parse applies the validation rules in order and reports the first violation.
func (s *CollectionService) parse(in AddItemInput, imageCount int) (*domain.CollectionItem, error) {
	if imageCount < 1 {
		return nil, invalid("At least one image is required.")
	}
	if imageCount > domain.MaxCollectionImages {
		return nil, invalid(fmt.Sprintf("At most %d images are allowed.", domain.MaxCollectionImages))
	}

	brand := strings.TrimSpace(in.Brand)
	if brand == "" {
		return nil, invalid("Brand is required.")
	}

	today := s.today()
	boughtOn, err := parseDate(in.BoughtOn)
	if err != nil {
		return nil, invalid("Bought on must be a valid date.")
	}
	if boughtOn.After(today) {
		return nil, invalid("Bought on cannot be in the future.")
	}

	boughtAt, ok := parsePrice(in.BoughtAtPrice)
	if !ok {
		return nil, invalid("Prices must be greater than zero.")
	}
	market, ok := parsePrice(in.MarketPrice)
	if !ok {
		return nil, invalid("Prices must be greater than zero.")
	}

	owners, err := parseOwners(in, today)
	if err != nil {
		return nil, err
	}

	return &domain.CollectionItem{
		Brand:          brand,
		BoughtOn:       boughtOn,
		BoughtAtPrice:  boughtAt,
		MarketPrice:    market,
		PreviousOwners: owners,
	}, nil
}

func parseOwners(in AddItemInput, today time.Time) ([]domain.PreviousOwner, error) {
	if len(in.PrevFrom) != len(in.PrevOwners) || len(in.PrevTo) != len(in.PrevOwners) {
		return nil, invalid("Every previous owner needs a name, a from date and a to date.")
	}

	owners := make([]domain.PreviousOwner, 0, len(in.PrevOwners))
	for i, name := range in.PrevOwners {
		name = strings.TrimSpace(name)
		from, errFrom := parseDate(in.PrevFrom[i])
		to, errTo := parseDate(in.PrevTo[i])
		if name == "" || errFrom != nil || errTo != nil {
			return nil, invalid("Every previous owner needs a name, a from date and a to date.")
		}
		if to.Before(from) {
			return nil, invalid(fmt.Sprintf("Owner %d has a to date before the from date.", i+1))
		}
		if from.After(today) || to.After(today) {
			return nil, invalid(fmt.Sprintf("Owner %d has a date in the future.", i+1))
		}
		if i > 0 && from.Before(owners[i-1].To) {
			return nil, invalid(fmt.Sprintf("Owner %d must start on or after the previous owner's end date.", i+1))
		}
		owners = append(owners, domain.PreviousOwner{User: name, From: from, To: to})
	}
	return owners, nil
}

// today is the current calendar date in the server's zone, as a UTC midnight
// comparable with parsed dates.
func (s *CollectionService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDate(v string) (time.Time, error) {
	return time.Parse(domain.DateLayout, strings.TrimSpace(v))
}

// parsePrice accepts strictly positive finite numbers.
func parsePrice(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}
