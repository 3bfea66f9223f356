package service

import (
	"context"

	"freshmart/internal/model"

	"github.com/shopspring/decimal"
)

// CheckoutLine is the view model for one product position while building
// an order: the product as read from the catalogue plus the desired
// quantity and derived line total. It exists so checkout never mutates
// the persisted product entity to carry per-request numbers.
type CheckoutLine struct {
	Product   model.Product   `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CheckoutPreview is the order-placement summary shown before commit.
type CheckoutPreview struct {
	Lines        []CheckoutLine  `json:"lines"`
	TotalCount   int             `json:"totalCount"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	ShippingFee  decimal.Decimal `json:"shippingFee"`
	TotalPayable decimal.Decimal `json:"totalPayable"`
}

// CartView is a user's cart joined with product details.
type CartView struct {
	Items      []CheckoutLine  `json:"items"`
	TotalCount int             `json:"totalCount"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// OrderDetail is an order header together with its lines.
type OrderDetail struct {
	Order model.Order       `json:"order"`
	Lines []model.OrderLine `json:"lines"`
}

// ProductService defines operations for catalogue reads.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)
}

// CartService defines operations on a user's shopping cart.
type CartService interface {
	// Add increments a product's cart quantity and returns the new total.
	Add(ctx context.Context, userID, productID int64, delta int) (int, error)

	// Update overwrites a product's cart quantity.
	Update(ctx context.Context, userID, productID int64, quantity int) error

	// Remove deletes a product from the cart.
	Remove(ctx context.Context, userID, productID int64) error

	// List returns the cart joined with product details.
	List(ctx context.Context, userID int64) (*CartView, error)

	// Count returns the number of distinct products in the cart.
	Count(ctx context.Context, userID int64) (int, error)
}

// CheckoutService converts a cart into a durable order.
type CheckoutService interface {
	// Place builds the pre-commit order summary for the chosen products.
	// Read-only: neither cart nor inventory change.
	Place(ctx context.Context, userID int64, productIDs []int64) (*CheckoutPreview, error)

	// Commit atomically creates the order and decrements inventory for
	// the chosen products, then removes them from the cart. On any error
	// the cart and inventory are left exactly as they were.
	Commit(ctx context.Context, userID, addressID int64, payMethod model.PayMethod, productIDs []int64) (*model.Order, error)
}

// OrderService defines read and post-commit operations on orders.
type OrderService interface {
	// GetByID retrieves one of the user's orders with its lines.
	GetByID(ctx context.Context, userID int64, orderID string) (*OrderDetail, error)

	// ListByUser retrieves the user's orders, newest first.
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)

	// Review stores per-line comments on a delivered order and moves it
	// to the reviewed state.
	Review(ctx context.Context, userID int64, orderID string, comments map[int64]string) error
}

// PaymentService drives the external payment gateway for an order.
type PaymentService interface {
	// Initiate registers the order with the gateway and returns the URL
	// to redirect the customer to.
	Initiate(ctx context.Context, userID int64, orderID string) (string, error)

	// Confirm polls the gateway for the trade result and, on confirmed
	// payment, transitions the order to paid exactly once. Returns the
	// order's status after the check.
	Confirm(ctx context.Context, userID int64, orderID string) (model.OrderStatus, error)
}
