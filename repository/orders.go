package repository

import (
	"context"
	"database/sql"
	"errors"

	storefront "github.com/goliatone/go-storefront"
	"github.com/uptrace/bun"
)

// OrdersRepository implements storefront.Orders using Bun. The conditional
// mutations return the matched row count so the lifecycle can tell "absent"
// from "present but not mutable by this requester".
type OrdersRepository struct {
	db *bun.DB
}

var _ storefront.Orders = (*OrdersRepository)(nil)

// NewOrdersRepository creates a new repository.
func NewOrdersRepository(db *bun.DB) *OrdersRepository {
	return &OrdersRepository{db: db}
}

// Create implements storefront.Orders.
func (r *OrdersRepository) Create(ctx context.Context, record *storefront.Order) (*storefront.Order, error) {
	if record.Status == "" {
		record.Status = storefront.OrderStatusPending
	}

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, storefront.WrapStorage(err, "failed to create order")
	}

	return record, nil
}

// GetByID implements storefront.Orders.
func (r *OrdersRepository) GetByID(ctx context.Context, id int64) (*storefront.Order, error) {
	record := &storefront.Order{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storefront.ErrRecordNotFound.WithMetadata(map[string]any{
				"order_id": id,
			})
		}
		return nil, storefront.WrapStorage(err, "failed to load order")
	}

	return record, nil
}

// Exists implements storefront.Orders.
func (r *OrdersRepository) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*storefront.Order)(nil)).
		Where("?TableAlias.id = ?", id).
		Exists(ctx)
	if err != nil {
		return false, storefront.WrapStorage(err, "failed to check order")
	}

	return exists, nil
}

// List returns every order, newest created first.
func (r *OrdersRepository) List(ctx context.Context) ([]*storefront.Order, error) {
	var records []*storefront.Order
	err := r.db.NewSelect().
		Model(&records).
		Order("created_at DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to list orders")
	}

	return records, nil
}

// ListByOwner returns one owner's orders, newest created first.
func (r *OrdersRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*storefront.Order, error) {
	var records []*storefront.Order
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.owner_id = ?", ownerID).
		Order("created_at DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to list orders")
	}

	return records, nil
}

// UpdateStatus persists the status unconditionally, matching on id alone.
func (r *OrdersRepository) UpdateStatus(ctx context.Context, id int64, status storefront.OrderStatus) (int64, error) {
	res, err := r.db.NewUpdate().
		Model((*storefront.Order)(nil)).
		Set("status = ?", status).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return 0, storefront.WrapStorage(err, "failed to update order status")
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return 0, storefront.WrapStorage(err, "failed to update order status")
	}

	return matched, nil
}

// UpdateStatusOwnedPending persists the status only when the order belongs
// to the owner and is still Pending. Check and write are one statement so a
// concurrent transition cannot slip between them.
func (r *OrdersRepository) UpdateStatusOwnedPending(ctx context.Context, id, ownerID int64, status storefront.OrderStatus) (int64, error) {
	res, err := r.db.NewUpdate().
		Model((*storefront.Order)(nil)).
		Set("status = ?", status).
		Where("?TableAlias.id = ? AND ?TableAlias.owner_id = ? AND ?TableAlias.status = ?",
			id, ownerID, storefront.OrderStatusPending).
		Exec(ctx)
	if err != nil {
		return 0, storefront.WrapStorage(err, "failed to update order status")
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return 0, storefront.WrapStorage(err, "failed to update order status")
	}

	return matched, nil
}

// Delete removes an order unconditionally, matching on id alone.
func (r *OrdersRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*storefront.Order)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return 0, storefront.WrapStorage(err, "failed to delete order")
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return 0, storefront.WrapStorage(err, "failed to delete order")
	}

	return matched, nil
}

// DeleteOwnedPending removes an order only when it belongs to the owner and
// is still Pending.
func (r *OrdersRepository) DeleteOwnedPending(ctx context.Context, id, ownerID int64) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*storefront.Order)(nil)).
		Where("id = ? AND owner_id = ? AND status = ?", id, ownerID, storefront.OrderStatusPending).
		Exec(ctx)
	if err != nil {
		return 0, storefront.WrapStorage(err, "failed to delete order")
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return 0, storefront.WrapStorage(err, "failed to delete order")
	}

	return matched, nil
}

// GetStatus backs the legacy unauthenticated status-lookup adapter.
func (r *OrdersRepository) GetStatus(ctx context.Context, id int64) (storefront.OrderStatus, error) {
	var status storefront.OrderStatus
	err := r.db.NewSelect().
		Model((*storefront.Order)(nil)).
		Column("status").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storefront.ErrRecordNotFound.WithMetadata(map[string]any{
				"order_id": id,
			})
		}
		return "", storefront.WrapStorage(err, "failed to load order status")
	}

	return status, nil
}
