package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	storefront "github.com/goliatone/go-storefront"
	"github.com/uptrace/bun"
)

// ShipmentsRepository implements storefront.Shipments using Bun.
type ShipmentsRepository struct {
	db *bun.DB
}

var _ storefront.Shipments = (*ShipmentsRepository)(nil)

// NewShipmentsRepository creates a new repository.
func NewShipmentsRepository(db *bun.DB) *ShipmentsRepository {
	return &ShipmentsRepository{db: db}
}

// Create implements storefront.Shipments.
func (r *ShipmentsRepository) Create(ctx context.Context, record *storefront.Shipment) (*storefront.Shipment, error) {
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, storefront.WrapStorage(err, "failed to create shipment")
	}

	return record, nil
}

// GetByID implements storefront.Shipments.
func (r *ShipmentsRepository) GetByID(ctx context.Context, id int64) (*storefront.Shipment, error) {
	record := &storefront.Shipment{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storefront.ErrRecordNotFound.WithMetadata(map[string]any{
				"shipment_id": id,
			})
		}
		return nil, storefront.WrapStorage(err, "failed to load shipment")
	}

	return record, nil
}

// List implements storefront.Shipments.
func (r *ShipmentsRepository) List(ctx context.Context) ([]*storefront.Shipment, error) {
	var records []*storefront.Shipment
	err := r.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to list shipments")
	}

	return records, nil
}

// Update implements storefront.Shipments.
func (r *ShipmentsRepository) Update(ctx context.Context, record *storefront.Shipment) (*storefront.Shipment, error) {
	res, err := r.db.NewUpdate().
		Model((*storefront.Shipment)(nil)).
		Set("name = ?", record.Name).
		Set("destination = ?", record.Destination).
		Set("updated_at = ?", time.Now()).
		Where("?TableAlias.id = ?", record.ID).
		Exec(ctx)
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to update shipment")
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to update shipment")
	}

	if matched == 0 {
		return nil, storefront.ErrRecordNotFound.WithMetadata(map[string]any{
			"shipment_id": record.ID,
		})
	}

	return r.GetByID(ctx, record.ID)
}

// Delete implements storefront.Shipments.
func (r *ShipmentsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*storefront.Shipment)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return storefront.WrapStorage(err, "failed to delete shipment")
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return storefront.WrapStorage(err, "failed to delete shipment")
	}

	if matched == 0 {
		return storefront.ErrRecordNotFound.WithMetadata(map[string]any{
			"shipment_id": id,
		})
	}

	return nil
}
