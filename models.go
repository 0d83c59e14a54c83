package storefront

import (
	"time"

	"github.com/uptrace/bun"
)

// UserRole is the global role carried by every principal.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is an account record. The password hash never leaves the service.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Name         string    `bun:"name,notnull" json:"name"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	Phone        string    `bun:"phone" json:"phone,omitempty"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	Role         UserRole  `bun:"role,notnull,default:'user'" json:"role"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// EnsureRole backfills the default role for records created before the
// column default existed.
func (u *User) EnsureRole() {
	if u.Role == "" {
		u.Role = RoleUser
	}
}

// UserPatch is an explicit partial update: only non-nil fields are applied,
// each validated before any mutation happens.
type UserPatch struct {
	Name     *string   `json:"name,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
	Role     *UserRole `json:"role,omitempty"`
	Password *string   `json:"password,omitempty"`
}

// IsZero reports whether the patch carries no fields at all.
func (p UserPatch) IsZero() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Role == nil && p.Password == nil
}

// Product is a catalog entry.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:prd"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description" json:"description"`
	Price       float64   `bun:"price,notnull" json:"price"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// CartLine is one product entry in an owner's cart. Rows are unique per
// (owner_id, product_id); repeat adds merge into the existing row.
type CartLine struct {
	bun.BaseModel `bun:"table:cart_lines,alias:crt"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	OwnerID   int64     `bun:"owner_id,notnull" json:"owner_id"`
	ProductID int64     `bun:"product_id,notnull" json:"product_id"`
	Quantity  int       `bun:"quantity,notnull" json:"quantity"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Order is created Pending and mutated only through the OrderLifecycle.
// OwnerID is immutable after creation.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:ord"`

	ID        int64       `bun:"id,pk,autoincrement" json:"id"`
	OwnerID   int64       `bun:"owner_id,notnull" json:"owner_id"`
	Total     float64     `bun:"total,notnull" json:"total"`
	Status    OrderStatus `bun:"status,notnull,default:'Pending'" json:"status"`
	CreatedAt time.Time   `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Shipment is a shipping record.
type Shipment struct {
	bun.BaseModel `bun:"table:shipments,alias:shp"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Destination string    `bun:"destination,notnull" json:"destination"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}
