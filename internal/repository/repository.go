package repository

import (
	"context"

	"freshmart/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue and inventory
// data access. The inventory side doubles as the ledger the checkout
// flow decrements under optimistic concurrency control.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetInTx retrieves a product inside the given transaction, seeing its
	// uncommitted writes. Returns nil when absent.
	GetInTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Product, error)

	// DecrementStock atomically moves quantity units from stock to sales,
	// but only if the row's stock still equals expectedStock. Returns true
	// when the row was updated, false when a concurrent writer got there
	// first. Never drives stock negative.
	DecrementStock(ctx context.Context, tx pgx.Tx, id int64, expectedStock, quantity int) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order header within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderLines inserts the order's lines within the provided
	// transaction. Header and lines share the transaction boundary: either
	// all rows persist or none do.
	CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error

	// GetByID retrieves an order by its ID along with its lines. Returns
	// nil when absent.
	GetByID(ctx context.Context, id string) (*model.Order, []model.OrderLine, error)

	// ListByUser retrieves all orders placed by a user, newest first.
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)

	// MarkPaid transitions an order from pending_payment to paid and
	// records the gateway trade number. Returns false when the order was
	// not in pending_payment (the transition happens at most once).
	MarkPaid(ctx context.Context, id, tradeNo string) (bool, error)

	// UpdateStatus performs a guarded status transition. Returns false when
	// the order was not in the expected `from` status.
	UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (bool, error)

	// SetLineComment stores a post-delivery comment on one order line.
	SetLineComment(ctx context.Context, orderID string, productID int64, comment string) error
}

// AddressRepository defines the interface for shipping-address lookups.
type AddressRepository interface {
	// GetByID retrieves an address only if it belongs to the given user.
	// Returns nil when absent or owned by someone else.
	GetByID(ctx context.Context, id, userID int64) (*model.Address, error)
}
