package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/flexbase/internal/domain"
)

// collectionRepo implements domain.CollectionRepository using SQLite.
type collectionRepo struct {
	db *sql.DB
}

func (r *collectionRepo) Create(ctx context.Context, item *domain.CollectionItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO collections (user_id, brand, bought_on, bought_at_price, market_price, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.UserID, item.Brand, item.BoughtOn.Format(domain.DateLayout),
		item.BoughtAtPrice, item.MarketPrice, now,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert collection: %w", err)
	}

	itemID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get collection id: %w", err)
	}

	for i, ref := range item.Images {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO collection_images (collection_id, sort_order, ref) VALUES (?, ?, ?)",
			itemID, i, ref,
		); err != nil {
			return fmt.Errorf("insert collection image: %w", err)
		}
	}

	for i, o := range item.PreviousOwners {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO collection_previous_owners (collection_id, sort_order, owner, from_date, to_date)
			 VALUES (?, ?, ?, ?, ?)`,
			itemID, i, o.User, o.From.Format(domain.DateLayout), o.To.Format(domain.DateLayout),
		); err != nil {
			return fmt.Errorf("insert previous owner: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	item.ID = itemID
	item.CreatedAt = now
	return nil
}

func (r *collectionRepo) GetByID(ctx context.Context, id int64) (*domain.CollectionItem, error) {
	item, err := scanCollection(r.db.QueryRowContext(ctx,
		`SELECT id, user_id, brand, bought_on, bought_at_price, market_price, created_at
		 FROM collections WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}

	if err := r.loadChildren(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *collectionRepo) ListByUser(ctx context.Context, userID int64) ([]domain.CollectionItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, brand, bought_on, bought_at_price, market_price, created_at
		 FROM collections WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	items := []domain.CollectionItem{}
	for rows.Next() {
		item, err := scanCollection(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// Release the single connection before issuing the child queries.
	rows.Close()

	for i := range items {
		if err := r.loadChildren(ctx, &items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCollection(row rowScanner) (*domain.CollectionItem, error) {
	var (
		item     domain.CollectionItem
		boughtOn string
	)
	if err := row.Scan(&item.ID, &item.UserID, &item.Brand, &boughtOn,
		&item.BoughtAtPrice, &item.MarketPrice, &item.CreatedAt); err != nil {
		return nil, err
	}

	t, err := time.Parse(domain.DateLayout, boughtOn)
	if err != nil {
		return nil, fmt.Errorf("parse bought_on %q: %w", boughtOn, err)
	}
	item.BoughtOn = t
	return &item, nil
}

func (r *collectionRepo) loadChildren(ctx context.Context, item *domain.CollectionItem) error {
	images, err := loadRefs(ctx, r.db,
		"SELECT ref FROM collection_images WHERE collection_id = ? ORDER BY sort_order", item.ID)
	if err != nil {
		return fmt.Errorf("load collection images: %w", err)
	}
	item.Images = images

	rows, err := r.db.QueryContext(ctx,
		`SELECT owner, from_date, to_date FROM collection_previous_owners
		 WHERE collection_id = ? ORDER BY sort_order`, item.ID)
	if err != nil {
		return fmt.Errorf("load previous owners: %w", err)
	}
	defer rows.Close()

	owners := []domain.PreviousOwner{}
	for rows.Next() {
		var (
			o        domain.PreviousOwner
			from, to string
		)
		if err := rows.Scan(&o.User, &from, &to); err != nil {
			return fmt.Errorf("scan previous owner: %w", err)
		}
		if o.From, err = time.Parse(domain.DateLayout, from); err != nil {
			return fmt.Errorf("parse from_date %q: %w", from, err)
		}
		if o.To, err = time.Parse(domain.DateLayout, to); err != nil {
			return fmt.Errorf("parse to_date %q: %w", to, err)
		}
		owners = append(owners, o)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	item.PreviousOwners = owners
	return nil
}

// loadRefs returns the single TEXT column of query in order.
func loadRefs(ctx context.Context, db *sql.DB, query string, id int64) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := []string{}
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
