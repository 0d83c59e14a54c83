package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	storefront "github.com/goliatone/go-storefront"
	"github.com/uptrace/bun"
)

type mngr struct {
	db        *bun.DB
	users     storefront.Users
	products  storefront.Products
	cartLines storefront.CartLines
	orders    storefront.Orders
	shipments storefront.Shipments
}

// NewRepositoryManager wires every repository over one shared bun handle.
// The handle is process-scoped: opened at startup, closed at shutdown, and
// injected here rather than referenced as an ambient global.
func NewRepositoryManager(db *bun.DB) storefront.RepositoryManager {
	return &mngr{
		db:        db,
		users:     NewUsersRepository(db),
		products:  NewProductsRepository(db),
		cartLines: NewCartLinesRepository(db),
		orders:    NewOrdersRepository(db),
		shipments: NewShipmentsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.products == nil {
		return errors.New("repository products should be initialized")
	}

	if m.cartLines == nil {
		return errors.New("repository cartLines should be initialized")
	}

	if m.orders == nil {
		return errors.New("repository orders should be initialized")
	}

	if m.shipments == nil {
		return errors.New("repository shipments should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() storefront.Users {
	return m.users
}

func (m mngr) Products() storefront.Products {
	return m.products
}

func (m mngr) CartLines() storefront.CartLines {
	return m.cartLines
}

func (m mngr) Orders() storefront.Orders {
	return m.orders
}

func (m mngr) Shipments() storefront.Shipments {
	return m.shipments
}
