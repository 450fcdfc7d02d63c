package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo. El stock no vive aquí: se deriva del ledger.
type Product struct {
	ID        string
	SKU       string
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
