package entity

import "time"

// Tipos de movimiento del ledger de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// StockMovement movimiento del ledger. Solo se crea; nunca se modifica ni se elimina.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // IN, OUT
	Quantity  int    // siempre positivo; el signo lo da Type
	Date      time.Time
	Note      string
	UserID    string
	Reference string // ID de la factura cuando la salida proviene de una finalización
	CreatedAt time.Time
}
