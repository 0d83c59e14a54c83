package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	storefront "github.com/goliatone/go-storefront"
	"github.com/uptrace/bun"
)

// ProductsRepository implements storefront.Products using Bun.
type ProductsRepository struct {
	db *bun.DB
}

var _ storefront.Products = (*ProductsRepository)(nil)

// NewProductsRepository creates a new repository.
func NewProductsRepository(db *bun.DB) *ProductsRepository {
	return &ProductsRepository{db: db}
}

// Create implements storefront.Products.
func (r *ProductsRepository) Create(ctx context.Context, record *storefront.Product) (*storefront.Product, error) {
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, storefront.WrapStorage(err, "failed to create product")
	}

	return record, nil
}

// GetByID implements storefront.Products.
func (r *ProductsRepository) GetByID(ctx context.Context, id int64) (*storefront.Product, error) {
	record := &storefront.Product{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storefront.ErrRecordNotFound.WithMetadata(map[string]any{
				"product_id": id,
			})
		}
		return nil, storefront.WrapStorage(err, "failed to load product")
	}

	return record, nil
}

// List implements storefront.Products.
func (r *ProductsRepository) List(ctx context.Context) ([]*storefront.Product, error) {
	var records []*storefront.Product
	err := r.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to list products")
	}

	return records, nil
}

// Update implements storefront.Products.
func (r *ProductsRepository) Update(ctx context.Context, record *storefront.Product) (*storefront.Product, error) {
	res, err := r.db.NewUpdate().
		Model((*storefront.Product)(nil)).
		Set("name = ?", record.Name).
		Set("description = ?", record.Description).
		Set("price = ?", record.Price).
		Set("updated_at = ?", time.Now()).
		Where("?TableAlias.id = ?", record.ID).
		Exec(ctx)
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to update product")
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to update product")
	}

	if matched == 0 {
		return nil, storefront.ErrRecordNotFound.WithMetadata(map[string]any{
			"product_id": record.ID,
		})
	}

	return r.GetByID(ctx, record.ID)
}

// Delete implements storefront.Products.
func (r *ProductsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*storefront.Product)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return storefront.WrapStorage(err, "failed to delete product")
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return storefront.WrapStorage(err, "failed to delete product")
	}

	if matched == 0 {
		return storefront.ErrRecordNotFound.WithMetadata(map[string]any{
			"product_id": id,
		})
	}

	return nil
}
