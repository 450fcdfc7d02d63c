package dto

import "time"

// MovementRequest body para POST /api/inventory/entries y /api/inventory/exits.
// date es opcional (RFC3339); vacío = ahora.
type MovementRequest struct {
	ProductID string     `json:"product_id" validate:"required"`
	Quantity  int        `json:"quantity" validate:"gt=0"`
	Date      *time.Time `json:"date,omitempty"`
	Note      string     `json:"note,omitempty" validate:"max=500"`
	UserID    string     `json:"user_id,omitempty"`
	Reference string     `json:"reference,omitempty"`
}

// MovementQuery filtros del ledger (?date_from&date_to&type).
type MovementQuery struct {
	DateFrom string `query:"date_from"`
	DateTo   string `query:"date_to"`
	Type     string `query:"type" validate:"omitempty,oneof=IN OUT"`
}

// MovementResponse movimiento del ledger en respuestas.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StockResponse stock actual derivado del ledger.
type StockResponse struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}
