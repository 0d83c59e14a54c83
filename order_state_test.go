package storefront_test

import (
	"context"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	storefront "github.com/goliatone/go-storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	alice = storefront.Principal{ID: 1, Email: "alice@example.com", Role: storefront.RoleUser}
	bob   = storefront.Principal{ID: 2, Email: "bob@example.com", Role: storefront.RoleUser}
	root  = storefront.Principal{ID: 9, Email: "admin@example.com", Role: storefront.RoleAdmin}
)

func TestOrderLifecycle_Create_OwnOrder(t *testing.T) {
	orders := new(MockOrders)
	sink := &recordingSink{}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	lc := storefront.NewOrderLifecycle(orders,
		storefront.WithLifecycleClock(func() time.Time { return now }),
		storefront.WithLifecycleActivitySink(sink),
	)

	orders.On("Create", mock.Anything, mock.MatchedBy(func(o *storefront.Order) bool {
		return o.OwnerID == alice.ID && o.Status == storefront.OrderStatusPending && o.CreatedAt.Equal(now)
	})).Return(&storefront.Order{ID: 10, OwnerID: alice.ID, Total: 25, Status: storefront.OrderStatusPending}, nil)

	order, err := lc.Create(context.Background(), alice, alice.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(10), order.ID)

	require.Len(t, sink.events, 1)
	assert.Equal(t, storefront.ActivityEventOrderCreated, sink.events[0].EventType)
	assert.Equal(t, int64(10), sink.events[0].OrderID)

	orders.AssertExpectations(t)
}

func TestOrderLifecycle_Create_ForAnotherOwner(t *testing.T) {
	orders := new(MockOrders)
	lc := storefront.NewOrderLifecycle(orders)

	_, err := lc.Create(context.Background(), alice, bob.ID, 25)
	require.Error(t, err)

	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	assert.Equal(t, goerrors.CategoryAuthz, rich.Category)

	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderLifecycle_Create_AdminForAnyOwner(t *testing.T) {
	orders := new(MockOrders)
	lc := storefront.NewOrderLifecycle(orders)

	orders.On("Create", mock.Anything, mock.Anything).
		Return(&storefront.Order{ID: 11, OwnerID: bob.ID, Status: storefront.OrderStatusPending}, nil)

	order, err := lc.Create(context.Background(), root, bob.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, order.OwnerID)

	orders.AssertExpectations(t)
}

func TestOrderLifecycle_Transition_OwnerPendingOrder(t *testing.T) {
	orders := new(MockOrders)
	sink := &recordingSink{}
	lc := storefront.NewOrderLifecycle(orders, storefront.WithLifecycleActivitySink(sink))

	orders.On("UpdateStatusOwnedPending", mock.Anything, int64(10), alice.ID, storefront.OrderStatusCancelled).
		Return(int64(1), nil)
	orders.On("GetByID", mock.Anything, int64(10)).
		Return(&storefront.Order{ID: 10, OwnerID: alice.ID, Status: storefront.OrderStatusCancelled}, nil)

	order, err := lc.Transition(context.Background(), alice, 10, storefront.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, storefront.OrderStatusCancelled, order.Status)

	require.Len(t, sink.events, 1)
	assert.Equal(t, storefront.ActivityEventOrderStatusChanged, sink.events[0].EventType)
	assert.Equal(t, storefront.OrderStatusCancelled, sink.events[0].ToStatus)

	orders.AssertExpectations(t)
}

func TestOrderLifecycle_Transition_OtherOwnersOrder(t *testing.T) {
	orders := new(MockOrders)
	lc := storefront.NewOrderLifecycle(orders)

	// the conditional update matches nothing, the order exists, so this is a
	// permission problem and not a missing record
	orders.On("UpdateStatusOwnedPending", mock.Anything, int64(10), bob.ID, storefront.OrderStatusCancelled).
		Return(int64(0), nil)
	orders.On("Exists", mock.Anything, int64(10)).Return(true, nil)

	_, err := lc.Transition(context.Background(), bob, 10, storefront.OrderStatusCancelled)
	require.Error(t, err)

	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	assert.Equal(t, goerrors.CategoryAuthz, rich.Category)

	orders.AssertExpectations(t)
}

func TestOrderLifecycle_Transition_SettledOrder(t *testing.T) {
	orders := new(MockOrders)
	lc := storefront.NewOrderLifecycle(orders)

	// already Cancelled: the owner's second attempt finds no Pending row
	orders.On("UpdateStatusOwnedPending", mock.Anything, int64(10), alice.ID, storefront.OrderStatusCompleted).
		Return(int64(0), nil)
	orders.On("Exists", mock.Anything, int64(10)).Return(true, nil)

	_, err := lc.Transition(context.Background(), alice, 10, storefront.OrderStatusCompleted)
	require.Error(t, err)

	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	assert.Equal(t, goerrors.CategoryAuthz, rich.Category)
}

func TestOrderLifecycle_Transition_MissingOrder(t *testing.T) {
	orders := new(MockOrders)
	lc := storefront.NewOrderLifecycle(orders)

	orders.On("UpdateStatusOwnedPending", mock.Anything, int64(99), alice.ID, storefront.OrderStatusCancelled).
		Return(int64(0), nil)
	orders.On("Exists", mock.Anything, int64(99)).Return(false, nil)

	_, err := lc.Transition(context.Background(), alice, 99, storefront.OrderStatusCancelled)
	require.Error(t, err)
	assert.True(t, goerrors.IsNotFound(err))
}

func TestOrderLifecycle_Transition_AdminUnconditional(t *testing.T) {
	orders := new(MockOrders)
	lc := storefront.NewOrderLifecycle(orders)

	// admins bypass the owner and Pending conditions entirely
	orders.On("UpdateStatus", mock.Anything, int64(10), storefront.OrderStatusShipped).
		Return(int64(1), nil)
	orders.On("GetByID", mock.Anything, int64(10)).
		Return(&storefront.Order{ID: 10, OwnerID: alice.ID, Status: storefront.OrderStatusShipped}, nil)

	order, err := lc.Transition(context.Background(), root, 10, storefront.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, storefront.OrderStatusShipped, order.Status)

	orders.AssertNotCalled(t, "UpdateStatusOwnedPending", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	orders.AssertExpectations(t)
}

func TestOrderLifecycle_Transition_EmptyTarget(t *testing.T) {
	orders := new(MockOrders)
	lc := storefront.NewOrderLifecycle(orders)

	_, err := lc.Transition(context.Background(), root, 10, "")
	require.Error(t, err)

	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	assert.Equal(t, goerrors.CategoryValidation, rich.Category)
}

func TestOrderLifecycle_Delete(t *testing.T) {
	orders := new(MockOrders)
	sink := &recordingSink{}
	lc := storefront.NewOrderLifecycle(orders, storefront.WithLifecycleActivitySink(sink))

	orders.On("DeleteOwnedPending", mock.Anything, int64(10), alice.ID).Return(int64(1), nil)

	require.NoError(t, lc.Delete(context.Background(), alice, 10))

	require.Len(t, sink.events, 1)
	assert.Equal(t, storefront.ActivityEventOrderDeleted, sink.events[0].EventType)

	orders.AssertExpectations(t)
}

func TestOrderLifecycle_Delete_AdminAnyStatus(t *testing.T) {
	orders := new(MockOrders)
	lc := storefront.NewOrderLifecycle(orders)

	orders.On("Delete", mock.Anything, int64(10)).Return(int64(1), nil)

	require.NoError(t, lc.Delete(context.Background(), root, 10))
	orders.AssertNotCalled(t, "DeleteOwnedPending", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderLifecycle_Delete_NotOwned(t *testing.T) {
	orders := new(MockOrders)
	lc := storefront.NewOrderLifecycle(orders)

	orders.On("DeleteOwnedPending", mock.Anything, int64(10), bob.ID).Return(int64(0), nil)
	orders.On("Exists", mock.Anything, int64(10)).Return(true, nil)

	err := lc.Delete(context.Background(), bob, 10)
	require.Error(t, err)

	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	assert.Equal(t, goerrors.CategoryAuthz, rich.Category)
}

func TestOrderLifecycle_List_NonAdminIgnoresFilter(t *testing.T) {
	orders := new(MockOrders)
	lc := storefront.NewOrderLifecycle(orders)

	own := []*storefront.Order{{ID: 1, OwnerID: alice.ID}}
	orders.On("ListByOwner", mock.Anything, alice.ID).Return(own, nil)

	// the filter names another owner; a non-admin still gets its own orders
	other := bob.ID
	records, err := lc.List(context.Background(), alice, &other)
	require.NoError(t, err)
	assert.Equal(t, own, records)

	orders.AssertNotCalled(t, "List", mock.Anything)
	orders.AssertExpectations(t)
}

func TestOrderLifecycle_List_Admin(t *testing.T) {
	orders := new(MockOrders)
	lc := storefront.NewOrderLifecycle(orders)

	all := []*storefront.Order{{ID: 1}, {ID: 2}}
	orders.On("List", mock.Anything).Return(all, nil)

	records, err := lc.List(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Equal(t, all, records)

	filtered := []*storefront.Order{{ID: 2, OwnerID: bob.ID}}
	orders.On("ListByOwner", mock.Anything, bob.ID).Return(filtered, nil)

	owner := bob.ID
	records, err = lc.List(context.Background(), root, &owner)
	require.NoError(t, err)
	assert.Equal(t, filtered, records)

	orders.AssertExpectations(t)
}
