package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/flexbase/internal/domain"
	"github.com/msomdec/flexbase/internal/service"
)

// failingCollections rejects every write.
type failingCollections struct {
	domain.CollectionRepository
}

func (failingCollections) Create(context.Context, *domain.CollectionItem) error {
	return errors.New("disk full")
}

func validItem() service.AddItemInput {
	return service.AddItemInput{
		Brand:         "Nike",
		BoughtOn:      "2023-05-01",
		BoughtAtPrice: "180",
		MarketPrice:   "450.50",
		PrevOwners:    []string{"first", "second"},
		PrevFrom:      []string{"2019-01-01", "2020-06-30"},
		PrevTo:        []string{"2020-06-30", "2023-04-30"},
	}
}

func images(n int) []domain.Upload {
	ups := make([]domain.Upload, n)
	for i := range ups {
		ups[i] = domain.Upload{Filename: "shoe.png", Data: pngBytes}
	}
	return ups
}

func TestCollectionService_AddItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "collector")

	item, err := env.collections.AddItem(ctx, owner.ID, validItem(), images(2))
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.ID == 0 || len(item.Images) != 2 {
		t.Fatalf("unexpected item: %+v", item)
	}
	for _, ref := range item.Images {
		if !strings.HasPrefix(ref, "/uploads/collections/") {
			t.Fatalf("unexpected image ref %q", ref)
		}
	}

	items, err := env.collections.ListByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	got := items[0]
	if got.BoughtAtPrice != 180 || got.MarketPrice != 450.5 {
		t.Fatalf("unexpected prices: %+v", got)
	}
	if len(got.PreviousOwners) != 2 || got.PreviousOwners[1].User != "second" {
		t.Fatalf("unexpected owners: %+v", got.PreviousOwners)
	}

	byID, err := env.collections.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Brand != "Nike" {
		t.Fatalf("unexpected item by id: %+v", byID)
	}
}

func TestCollectionService_PriceBoundary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "collector")

	in := validItem()
	in.BoughtAtPrice = "0"
	if _, err := env.collections.AddItem(ctx, owner.ID, in, images(1)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("price 0: expected ErrInvalidInput, got %v", err)
	}

	in.BoughtAtPrice = "1"
	if _, err := env.collections.AddItem(ctx, owner.ID, in, images(1)); err != nil {
		t.Fatalf("price 1: %v", err)
	}
}

func TestCollectionService_Validation(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 2).Format(domain.DateLayout)

	tests := []struct {
		name    string
		mutate  func(*service.AddItemInput)
		uploads int
		wantMsg string
	}{
		{"no images", func(*service.AddItemInput) {}, 0, "At least one image"},
		{"too many images", func(*service.AddItemInput) {}, 6, "At most 5 images"},
		{"missing brand", func(in *service.AddItemInput) { in.Brand = " " }, 1, "Brand is required"},
		// Brand is reported before the price when both are wrong.
		{"brand before price", func(in *service.AddItemInput) { in.Brand = ""; in.MarketPrice = "-1" }, 1, "Brand is required"},
		{"bad bought on", func(in *service.AddItemInput) { in.BoughtOn = "05/01/2023" }, 1, "valid date"},
		{"future bought on", func(in *service.AddItemInput) { in.BoughtOn = tomorrow }, 1, "cannot be in the future"},
		{"negative market price", func(in *service.AddItemInput) { in.MarketPrice = "-3" }, 1, "greater than zero"},
		{"non numeric price", func(in *service.AddItemInput) { in.BoughtAtPrice = "lots" }, 1, "greater than zero"},
		{"infinite price", func(in *service.AddItemInput) { in.MarketPrice = "Inf" }, 1, "greater than zero"},
		{"owner without name", func(in *service.AddItemInput) { in.PrevOwners[0] = "" }, 1, "needs a name"},
		{"unequal owner arrays", func(in *service.AddItemInput) { in.PrevTo = in.PrevTo[:1] }, 1, "needs a name"},
		{"to before from", func(in *service.AddItemInput) { in.PrevTo[0] = "2018-12-31" }, 1, "to date before the from date"},
		{"future owner date", func(in *service.AddItemInput) { in.PrevTo[1] = tomorrow }, 1, "date in the future"},
		{"overlapping owners", func(in *service.AddItemInput) { in.PrevFrom[1] = "2020-01-01" }, 1, "on or after the previous owner's end date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			owner := env.register(t, "collector")

			in := validItem()
			tt.mutate(&in)

			_, err := env.collections.AddItem(context.Background(), owner.ID, in, images(tt.uploads))
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("expected %q in %q", tt.wantMsg, err.Error())
			}
			if n := env.countBlobs(t); n != 0 {
				t.Fatalf("validation failure stored %d media objects", n)
			}
		})
	}
}

func TestCollectionService_RejectsNonImageUpload(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "collector")

	ups := append(images(1), domain.Upload{Filename: "notes.txt", Data: []byte("plain text")})
	_, err := env.collections.AddItem(context.Background(), owner.ID, validItem(), ups)
	if !errors.Is(err, domain.ErrUpload) || !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid upload error, got %v", err)
	}
	if n := env.countBlobs(t); n != 0 {
		t.Fatalf("expected nothing stored, found %d objects", n)
	}
}

func TestCollectionService_FailedSaveRemovesMedia(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "collector")

	svc := service.NewCollectionService(failingCollections{}, env.media)
	_, err := svc.AddItem(context.Background(), owner.ID, validItem(), images(3))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected save failure, got %v", err)
	}
	if n := env.countBlobs(t); n != 0 {
		t.Fatalf("expected stored media to be cleaned up, found %d objects", n)
	}
}
