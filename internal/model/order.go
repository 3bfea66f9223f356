package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayMethod is the payment method chosen at checkout.
type PayMethod string

const (
	PayMethodCOD     PayMethod = "cod"     // cash on delivery
	PayMethodBank    PayMethod = "bank"    // bank transfer
	PayMethodGateway PayMethod = "gateway" // external payment gateway
)

// Valid reports whether the pay method is one of the accepted values.
func (m PayMethod) Valid() bool {
	switch m {
	case PayMethodCOD, PayMethodBank, PayMethodGateway:
		return true
	}
	return false
}

// OrderStatus tracks an order through its lifecycle.
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusReviewed       OrderStatus = "reviewed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// statusTransitions lists the allowed forward transitions. Cancellation is
// only possible while the order is still awaiting payment.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingPayment: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:           {OrderStatusShipped},
	OrderStatusShipped:        {OrderStatusDelivered},
	OrderStatusDelivered:      {OrderStatusReviewed},
}

// CanTransition reports whether moving from s to next is a legal step in
// the order state machine.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s OrderStatus) Terminal() bool {
	return len(statusTransitions[s]) == 0
}

// Order is the header of a committed purchase.
type Order struct {
	ID          string          `json:"id" db:"id"`
	UserID      int64           `json:"userId" db:"user_id"`
	AddressID   int64           `json:"addressId" db:"address_id"`
	PayMethod   PayMethod       `json:"payMethod" db:"pay_method"`
	Status      OrderStatus     `json:"status" db:"status"`
	TotalCount  int             `json:"totalCount" db:"total_count"`
	TotalPrice  decimal.Decimal `json:"totalPrice" db:"total_price"`
	ShippingFee decimal.Decimal `json:"shippingFee" db:"shipping_fee"`
	TradeNo     *string         `json:"tradeNo,omitempty" db:"trade_no"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// TotalPayable is the amount charged to the customer: goods plus shipping.
func (o *Order) TotalPayable() decimal.Decimal {
	return o.TotalPrice.Add(o.ShippingFee)
}

// OrderLine is one product position within an order. Quantity and unit
// price are snapshots taken at commit time and never change afterwards.
type OrderLine struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	OrderID   string          `json:"-" db:"order_id"`
	ProductID int64           `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Comment   *string         `json:"comment,omitempty" db:"comment"`
}

// LineTotal returns quantity × unit price for the line.
func (l *OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NewOrderID builds the externally visible order identifier:
// a 14-digit second-resolution timestamp followed by the user id. The
// format is load-bearing: it doubles as the out_trade_no sent to the
// payment gateway. Two commits by the same user within the same second
// collide; the primary key on orders rejects the second one.
func NewOrderID(userID int64, at time.Time) string {
	return at.Format("20060102150405") + strconv.FormatInt(userID, 10)
}

// Totals recomputes aggregate count and price from a set of lines. Used to
// derive the header totals at commit time rather than trusting client input.
func Totals(lines []OrderLine) (count int, price decimal.Decimal) {
	for i := range lines {
		count += lines[i].Quantity
		price = price.Add(lines[i].LineTotal())
	}
	return count, price
}
