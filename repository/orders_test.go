package repository

import (
	"context"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	storefront "github.com/goliatone/go-storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrders_Create_DefaultsToPending(t *testing.T) {
	db, cleanup := newTestDB(t)
	defer cleanup()

	repo := NewOrdersRepository(db)
	ctx := context.Background()

	order, err := repo.Create(ctx, &storefront.Order{
		OwnerID:   1,
		Total:     19.99,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, storefront.OrderStatusPending, order.Status)
}

func TestOrders_UpdateStatusOwnedPending(t *testing.T) {
	db, cleanup := newTestDB(t)
	defer cleanup()

	repo := NewOrdersRepository(db)
	ctx := context.Background()

	order, err := repo.Create(ctx, &storefront.Order{
		OwnerID:   1,
		Total:     10,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	matched, err := repo.UpdateStatusOwnedPending(ctx, order.ID, 1, storefront.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, storefront.OrderStatusCancelled, got.Status)

	// once the order has left Pending the owner can no longer touch it
	matched, err = repo.UpdateStatusOwnedPending(ctx, order.ID, 1, storefront.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Zero(t, matched)

	got, err = repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, storefront.OrderStatusCancelled, got.Status)
}

func TestOrders_UpdateStatusOwnedPending_WrongOwner(t *testing.T) {
	db, cleanup := newTestDB(t)
	defer cleanup()

	repo := NewOrdersRepository(db)
	ctx := context.Background()

	order, err := repo.Create(ctx, &storefront.Order{
		OwnerID:   1,
		Total:     10,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	matched, err := repo.UpdateStatusOwnedPending(ctx, order.ID, 2, storefront.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Zero(t, matched)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, storefront.OrderStatusPending, got.Status)
}

func TestOrders_UpdateStatus_Unconditional(t *testing.T) {
	db, cleanup := newTestDB(t)
	defer cleanup()

	repo := NewOrdersRepository(db)
	ctx := context.Background()

	order, err := repo.Create(ctx, &storefront.Order{
		OwnerID:   1,
		Total:     10,
		Status:    storefront.OrderStatusShipped,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	matched, err := repo.UpdateStatus(ctx, order.ID, storefront.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, storefront.OrderStatusCompleted, got.Status)

	matched, err = repo.UpdateStatus(ctx, 9999, storefront.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Zero(t, matched)
}

func TestOrders_DeleteOwnedPending(t *testing.T) {
	db, cleanup := newTestDB(t)
	defer cleanup()

	repo := NewOrdersRepository(db)
	ctx := context.Background()

	order, err := repo.Create(ctx, &storefront.Order{
		OwnerID:   1,
		Total:     10,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	matched, err := repo.DeleteOwnedPending(ctx, order.ID, 2)
	require.NoError(t, err)
	assert.Zero(t, matched)

	matched, err = repo.DeleteOwnedPending(ctx, order.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	exists, err := repo.Exists(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOrders_ListOrdering(t *testing.T) {
	db, cleanup := newTestDB(t)
	defer cleanup()

	repo := NewOrdersRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	oldest, err := repo.Create(ctx, &storefront.Order{OwnerID: 1, Total: 1, CreatedAt: base})
	require.NoError(t, err)

	newest, err := repo.Create(ctx, &storefront.Order{OwnerID: 1, Total: 2, CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)

	other, err := repo.Create(ctx, &storefront.Order{OwnerID: 2, Total: 3, CreatedAt: base.Add(30 * time.Minute)})
	require.NoError(t, err)

	mine, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newest.ID, mine[0].ID)
	assert.Equal(t, oldest.ID, mine[1].ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, newest.ID, all[0].ID)
	assert.Equal(t, other.ID, all[1].ID)
	assert.Equal(t, oldest.ID, all[2].ID)
}

func TestOrders_GetStatus(t *testing.T) {
	db, cleanup := newTestDB(t)
	defer cleanup()

	repo := NewOrdersRepository(db)
	ctx := context.Background()

	order, err := repo.Create(ctx, &storefront.Order{
		OwnerID:   1,
		Total:     10,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	status, err := repo.GetStatus(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, storefront.OrderStatusPending, status)

	_, err = repo.GetStatus(ctx, 9999)
	require.Error(t, err)
	assert.True(t, goerrors.IsNotFound(err))
}
