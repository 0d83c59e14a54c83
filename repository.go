package storefront

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// Users manages account records.
type Users interface {
	Create(ctx context.Context, record *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Patch(ctx context.Context, id int64, patch UserPatch) (*User, error)
	Delete(ctx context.Context, id int64) error
}

// Products manages catalog entries.
type Products interface {
	Create(ctx context.Context, record *Product) (*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, record *Product) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

// CartLines manages per-owner cart rows. Every mutation runs as a single
// conditional statement against storage so concurrent requests for the same
// (owner_id, product_id) pair cannot lose updates.
type CartLines interface {
	// AddItem merges the quantity into an existing row for the pair or
	// inserts a new one. The quantity is taken as given on this path.
	AddItem(ctx context.Context, ownerID, productID int64, quantity int) (*CartLine, error)
	// UpdateQuantity requires quantity >= 1 and matches on (id, owner_id);
	// a row belonging to another owner is indistinguishable from a missing one.
	UpdateQuantity(ctx context.Context, id, ownerID int64, quantity int) (*CartLine, error)
	Remove(ctx context.Context, id, ownerID int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*CartLine, error)
	List(ctx context.Context) ([]*CartLine, error)
}

// Orders manages order records. The authorization rules live in
// OrderLifecycle; this layer only exposes the conditional statements the
// lifecycle needs. Mutations report how many rows matched.
type Orders interface {
	Create(ctx context.Context, record *Order) (*Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]*Order, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Order, error)
	UpdateStatus(ctx context.Context, id int64, status OrderStatus) (int64, error)
	UpdateStatusOwnedPending(ctx context.Context, id, ownerID int64, status OrderStatus) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	DeleteOwnedPending(ctx context.Context, id, ownerID int64) (int64, error)
	// GetStatus backs the legacy unauthenticated status-lookup adapter.
	GetStatus(ctx context.Context, id int64) (OrderStatus, error)
}

// Shipments manages shipping records.
type Shipments interface {
	Create(ctx context.Context, record *Shipment) (*Shipment, error)
	GetByID(ctx context.Context, id int64) (*Shipment, error)
	List(ctx context.Context) ([]*Shipment, error)
	Update(ctx context.Context, record *Shipment) (*Shipment, error)
	Delete(ctx context.Context, id int64) error
}

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Users() Users
	Products() Products
	CartLines() CartLines
	Orders() Orders
	Shipments() Shipments
}
