package storefront_test

import (
	"context"

	storefront "github.com/goliatone/go-storefront"
	"github.com/stretchr/testify/mock"
)

// MockOrders implements storefront.Orders
type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) Create(ctx context.Context, record *storefront.Order) (*storefront.Order, error) {
	args := m.Called(ctx, record)
	order, _ := args.Get(0).(*storefront.Order)
	return order, args.Error(1)
}

func (m *MockOrders) GetByID(ctx context.Context, id int64) (*storefront.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*storefront.Order)
	return order, args.Error(1)
}

func (m *MockOrders) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrders) List(ctx context.Context) ([]*storefront.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*storefront.Order)
	return orders, args.Error(1)
}

func (m *MockOrders) ListByOwner(ctx context.Context, ownerID int64) ([]*storefront.Order, error) {
	args := m.Called(ctx, ownerID)
	orders, _ := args.Get(0).([]*storefront.Order)
	return orders, args.Error(1)
}

func (m *MockOrders) UpdateStatus(ctx context.Context, id int64, status storefront.OrderStatus) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrders) UpdateStatusOwnedPending(ctx context.Context, id, ownerID int64, status storefront.OrderStatus) (int64, error) {
	args := m.Called(ctx, id, ownerID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrders) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrders) DeleteOwnedPending(ctx context.Context, id, ownerID int64) (int64, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrders) GetStatus(ctx context.Context, id int64) (storefront.OrderStatus, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(storefront.OrderStatus), args.Error(1)
}

// MockUserStore implements storefront.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*storefront.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*storefront.User)
	return user, args.Error(1)
}

// mockIdentity implements storefront.Identity
type mockIdentity struct {
	id    int64
	name  string
	email string
	role  storefront.UserRole
}

func (m mockIdentity) ID() int64                 { return m.id }
func (m mockIdentity) Username() string          { return m.name }
func (m mockIdentity) Email() string             { return m.email }
func (m mockIdentity) Role() storefront.UserRole { return m.role }

// recordingSink captures activity events for assertions
type recordingSink struct {
	events []storefront.ActivityEvent
}

func (s *recordingSink) Record(_ context.Context, event storefront.ActivityEvent) error {
	s.events = append(s.events, event)
	return nil
}
