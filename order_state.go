package storefront

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// OrderStatus is the lifecycle state of an order. Pending is the sole
// initial state; every other status is reached only by explicit transition.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusCancelled OrderStatus = "Cancelled"
	OrderStatusCompleted OrderStatus = "Completed"
)

// IsPending reports whether the order is still owner-mutable.
func (s OrderStatus) IsPending() bool {
	return s == OrderStatusPending
}

// LifecycleOption customizes a single lifecycle action.
type LifecycleOption func(*lifecycleOptions)

// WithLifecycleReason sets the human-readable reason recorded with the action.
func WithLifecycleReason(reason string) LifecycleOption {
	return func(opts *lifecycleOptions) {
		opts.metadata.Reason = reason
	}
}

// WithLifecycleMetadata merges metadata into the recorded activity event.
func WithLifecycleMetadata(metadata map[string]any) LifecycleOption {
	return func(opts *lifecycleOptions) {
		if len(metadata) == 0 {
			return
		}
		if opts.metadata.Metadata == nil {
			opts.metadata.Metadata = make(map[string]any, len(metadata))
		}
		for k, v := range metadata {
			opts.metadata.Metadata[k] = v
		}
	}
}

// LifecycleMetadata captures extra context for a lifecycle action.
type LifecycleMetadata struct {
	Reason   string
	Metadata map[string]any
}

// OrderLifecycle gates every order mutation behind the requester's role and
// the order's current state. It never validates the target status value
// itself; permission, not the transition graph, is what is constrained.
type OrderLifecycle interface {
	Create(ctx context.Context, requester Principal, ownerID int64, total float64, opts ...LifecycleOption) (*Order, error)
	Transition(ctx context.Context, requester Principal, orderID int64, target OrderStatus, opts ...LifecycleOption) (*Order, error)
	Delete(ctx context.Context, requester Principal, orderID int64, opts ...LifecycleOption) error
	List(ctx context.Context, requester Principal, filterOwner *int64) ([]*Order, error)
}

// OrderLifecycleOption customizes lifecycle construction.
type OrderLifecycleOption func(*orderLifecycle)

// WithLifecycleClock injects a custom clock (useful for tests).
func WithLifecycleClock(clock func() time.Time) OrderLifecycleOption {
	return func(lc *orderLifecycle) {
		if clock != nil {
			lc.now = clock
		}
	}
}

// WithLifecycleActivitySink sets the ActivitySink used to publish order events.
func WithLifecycleActivitySink(sink ActivitySink) OrderLifecycleOption {
	return func(lc *orderLifecycle) {
		lc.activitySink = normalizeActivitySink(sink)
	}
}

// WithLifecycleLogger overrides the logger used for sink failures.
func WithLifecycleLogger(logger Logger) OrderLifecycleOption {
	return func(lc *orderLifecycle) {
		if logger != nil {
			lc.logger = logger
		}
	}
}

// NewOrderLifecycle returns the default implementation backed by the provided
// repository.
func NewOrderLifecycle(orders Orders, opts ...OrderLifecycleOption) OrderLifecycle {
	lc := &orderLifecycle{
		orders:       orders,
		now:          time.Now,
		activitySink: noopActivitySink{},
		logger:       defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(lc)
		}
	}

	return lc
}

type orderLifecycle struct {
	orders       Orders
	now          func() time.Time
	activitySink ActivitySink
	logger       Logger
}

type lifecycleOptions struct {
	metadata LifecycleMetadata
}

// Create inserts a new Pending order. A non-admin requester may only create
// orders for itself; an admin may create for any owner.
func (lc *orderLifecycle) Create(ctx context.Context, requester Principal, ownerID int64, total float64, opts ...LifecycleOption) (*Order, error) {
	if !requester.IsAdmin() && ownerID != requester.ID {
		return nil, ErrForbidden.WithMetadata(map[string]any{
			"requester_id": requester.ID,
			"owner_id":     ownerID,
		})
	}

	options := buildLifecycleOptions(opts...)

	order, err := lc.orders.Create(ctx, &Order{
		OwnerID:   ownerID,
		Total:     total,
		Status:    OrderStatusPending,
		CreatedAt: lc.now(),
	})
	if err != nil {
		return nil, err
	}

	lc.recordActivity(ctx, ActivityEvent{
		EventType: ActivityEventOrderCreated,
		Actor:     actorFromPrincipal(requester),
		UserID:    ownerID,
		OrderID:   order.ID,
		ToStatus:  OrderStatusPending,
		Metadata:  options.activityMetadata(),
	})

	return order, nil
}

// Transition persists the target status. An admin may move any order to any
// status unconditionally. A non-admin may only move an order it owns while
// the order is still Pending; the check and the write are a single
// conditional statement so concurrent transitions cannot interleave.
func (lc *orderLifecycle) Transition(ctx context.Context, requester Principal, orderID int64, target OrderStatus, opts ...LifecycleOption) (*Order, error) {
	if target == "" {
		return nil, errors.New("target status must not be empty", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}

	options := buildLifecycleOptions(opts...)

	var matched int64
	var err error

	if requester.IsAdmin() {
		matched, err = lc.orders.UpdateStatus(ctx, orderID, target)
	} else {
		matched, err = lc.orders.UpdateStatusOwnedPending(ctx, orderID, requester.ID, target)
	}
	if err != nil {
		return nil, err
	}

	if matched == 0 {
		return nil, lc.classifyMiss(ctx, requester, orderID)
	}

	order, err := lc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lc.recordActivity(ctx, ActivityEvent{
		EventType: ActivityEventOrderStatusChanged,
		Actor:     actorFromPrincipal(requester),
		UserID:    order.OwnerID,
		OrderID:   order.ID,
		ToStatus:  target,
		Metadata:  options.activityMetadata(),
	})

	return order, nil
}

// Delete removes an order under the same authorization rule as Transition.
func (lc *orderLifecycle) Delete(ctx context.Context, requester Principal, orderID int64, opts ...LifecycleOption) error {
	options := buildLifecycleOptions(opts...)

	var matched int64
	var err error

	if requester.IsAdmin() {
		matched, err = lc.orders.Delete(ctx, orderID)
	} else {
		matched, err = lc.orders.DeleteOwnedPending(ctx, orderID, requester.ID)
	}
	if err != nil {
		return err
	}

	if matched == 0 {
		return lc.classifyMiss(ctx, requester, orderID)
	}

	lc.recordActivity(ctx, ActivityEvent{
		EventType: ActivityEventOrderDeleted,
		Actor:     actorFromPrincipal(requester),
		OrderID:   orderID,
		Metadata:  options.activityMetadata(),
	})

	return nil
}

// List returns orders newest-created-first. An admin sees all orders, or one
// owner's when a filter is supplied; a non-admin always sees only its own
// orders no matter what filter it sends.
func (lc *orderLifecycle) List(ctx context.Context, requester Principal, filterOwner *int64) ([]*Order, error) {
	if !requester.IsAdmin() {
		return lc.orders.ListByOwner(ctx, requester.ID)
	}

	if filterOwner != nil {
		return lc.orders.ListByOwner(ctx, *filterOwner)
	}

	return lc.orders.List(ctx)
}

// classifyMiss resolves a zero-row conditional mutation into NotFound when
// the order does not exist and Forbidden when it exists but the requester may
// not touch it (wrong owner, or no longer Pending).
func (lc *orderLifecycle) classifyMiss(ctx context.Context, requester Principal, orderID int64) error {
	exists, err := lc.orders.Exists(ctx, orderID)
	if err != nil {
		return err
	}

	if !exists {
		return ErrRecordNotFound.WithMetadata(map[string]any{
			"order_id": orderID,
		})
	}

	return ErrForbidden.WithMetadata(map[string]any{
		"order_id":     orderID,
		"requester_id": requester.ID,
	})
}

func buildLifecycleOptions(opts ...LifecycleOption) *lifecycleOptions {
	options := &lifecycleOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}
	return options
}

func (o *lifecycleOptions) activityMetadata() map[string]any {
	if o.metadata.Reason == "" && len(o.metadata.Metadata) == 0 {
		return nil
	}

	result := map[string]any{}
	if o.metadata.Reason != "" {
		result["reason"] = o.metadata.Reason
	}
	for k, v := range o.metadata.Metadata {
		result[k] = v
	}
	return result
}

func (lc *orderLifecycle) recordActivity(ctx context.Context, event ActivityEvent) {
	if event.Actor == (ActorRef{}) {
		event.Actor = ActorRef{Type: "system"}
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = lc.now()
	}

	sink := normalizeActivitySink(lc.activitySink)
	if err := sink.Record(ctx, event); err != nil {
		lc.logger.Warn("order lifecycle activity sink error: %v", err)
	}
}

func actorFromPrincipal(p Principal) ActorRef {
	actorType := "user"
	if p.IsAdmin() {
		actorType = "admin"
	}
	return ActorRef{ID: p.ID, Type: actorType}
}
