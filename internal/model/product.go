package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a stock-keeping unit in the catalogue.
type Product struct {
	ID        int64           `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Stock     int             `json:"stock" db:"stock"`
	Sales     int             `json:"sales" db:"sales"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}
