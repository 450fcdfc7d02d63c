package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// Campos de orden soportados para movimientos.
const (
	MovementSortDate     = "date"
	MovementSortQuantity = "quantity"
	MovementSortType     = "type"
)

// MovementFilter filtros del ledger; los campos vacíos no filtran.
type MovementFilter struct {
	ProductID string
	Type      string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// StockMovementRepository ledger append-only de movimientos (sin Update ni Delete).
type StockMovementRepository interface {
	Append(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct devuelve todos los movimientos del producto en orden de inserción.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
	List(ctx context.Context, filter MovementFilter, sort Sort, limit, offset int) ([]*entity.StockMovement, int, error)
}
