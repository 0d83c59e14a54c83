package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	storefront "github.com/goliatone/go-storefront"
	"github.com/uptrace/bun"
)

// CartLinesRepository implements storefront.CartLines using Bun. Every
// mutation is a single conditional statement so two requests racing on the
// same (owner_id, product_id) pair serialize inside the database.
type CartLinesRepository struct {
	db *bun.DB
}

var _ storefront.CartLines = (*CartLinesRepository)(nil)

// NewCartLinesRepository creates a new repository.
func NewCartLinesRepository(db *bun.DB) *CartLinesRepository {
	return &CartLinesRepository{db: db}
}

// AddItem merges the quantity into an existing row for the pair or inserts a
// new one. The increment happens inside the upsert, never as a read followed
// by a write.
func (r *CartLinesRepository) AddItem(ctx context.Context, ownerID, productID int64, quantity int) (*storefront.CartLine, error) {
	now := time.Now()
	line := &storefront.CartLine{
		OwnerID:   ownerID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.db.NewInsert().
		Model(line).
		On("CONFLICT (owner_id, product_id) DO UPDATE").
		Set("quantity = quantity + EXCLUDED.quantity").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to add cart item")
	}

	return r.getByPair(ctx, ownerID, productID)
}

// UpdateQuantity replaces the quantity of a line matched by (id, owner_id).
// A line belonging to another owner is indistinguishable from a missing one.
func (r *CartLinesRepository) UpdateQuantity(ctx context.Context, id, ownerID int64, quantity int) (*storefront.CartLine, error) {
	if quantity < 1 {
		return nil, storefront.ErrInvalidQuantity.WithMetadata(map[string]any{
			"quantity": quantity,
		})
	}

	res, err := r.db.NewUpdate().
		Model((*storefront.CartLine)(nil)).
		Set("quantity = ?", quantity).
		Set("updated_at = ?", time.Now()).
		Where("?TableAlias.id = ? AND ?TableAlias.owner_id = ?", id, ownerID).
		Exec(ctx)
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to update cart quantity")
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to update cart quantity")
	}

	if matched == 0 {
		return nil, storefront.ErrRecordNotFound.WithMetadata(map[string]any{
			"line_id": id,
		})
	}

	return r.getByID(ctx, id, ownerID)
}

// Remove deletes a line matched by (id, owner_id).
func (r *CartLinesRepository) Remove(ctx context.Context, id, ownerID int64) error {
	res, err := r.db.NewDelete().
		Model((*storefront.CartLine)(nil)).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Exec(ctx)
	if err != nil {
		return storefront.WrapStorage(err, "failed to remove cart item")
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return storefront.WrapStorage(err, "failed to remove cart item")
	}

	if matched == 0 {
		return storefront.ErrRecordNotFound.WithMetadata(map[string]any{
			"line_id": id,
		})
	}

	return nil
}

// ListByOwner implements storefront.CartLines.
func (r *CartLinesRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*storefront.CartLine, error) {
	var records []*storefront.CartLine
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.owner_id = ?", ownerID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to list cart")
	}

	return records, nil
}

// List returns every cart line across owners.
func (r *CartLinesRepository) List(ctx context.Context) ([]*storefront.CartLine, error) {
	var records []*storefront.CartLine
	err := r.db.NewSelect().
		Model(&records).
		Order("owner_id ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to list carts")
	}

	return records, nil
}

func (r *CartLinesRepository) getByID(ctx context.Context, id, ownerID int64) (*storefront.CartLine, error) {
	record := &storefront.CartLine{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ? AND ?TableAlias.owner_id = ?", id, ownerID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storefront.ErrRecordNotFound.WithMetadata(map[string]any{
				"line_id": id,
			})
		}
		return nil, storefront.WrapStorage(err, "failed to load cart line")
	}

	return record, nil
}

func (r *CartLinesRepository) getByPair(ctx context.Context, ownerID, productID int64) (*storefront.CartLine, error) {
	record := &storefront.CartLine{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.owner_id = ? AND ?TableAlias.product_id = ?", ownerID, productID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storefront.ErrRecordNotFound.WithMetadata(map[string]any{
				"owner_id":   ownerID,
				"product_id": productID,
			})
		}
		return nil, storefront.WrapStorage(err, "failed to load cart line")
	}

	return record, nil
}
