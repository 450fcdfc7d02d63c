package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceLineRequest servicio prestado (actividad del catálogo + empleado).
type ServiceLineRequest struct {
	ActivityID string          `json:"activity_id" validate:"required"`
	Name       string          `json:"name" validate:"max=200"`
	Price      decimal.Decimal `json:"price"`
	EmployeeID string          `json:"employee_id"`
}

// ProductLineRequest producto vendido.
type ProductLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Name      string          `json:"name" validate:"max=200"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// PaymentRequest forma de pago. amount_received solo aplica a CASH.
type PaymentRequest struct {
	Method         string           `json:"method" validate:"required,oneof=CASH TRANSFER"`
	AmountReceived *decimal.Decimal `json:"amount_received,omitempty"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	ClientID          string               `json:"client_id" validate:"required"`
	Services          []ServiceLineRequest `json:"services" validate:"dive"`
	Products          []ProductLineRequest `json:"products" validate:"dive"`
	CourtesyProductID string               `json:"courtesy_product_id,omitempty"`
	Comment           string               `json:"comment,omitempty" validate:"max=1000"`
	Payment           PaymentRequest       `json:"payment"`
}

// UpdateInvoiceRequest body para PATCH /api/invoices/:id. Los campos ausentes no cambian.
// Las listas presentes reemplazan las actuales; courtesy_product_id "" quita la cortesía.
// status FINALIZED|CANCELED aplica la transición tras los cambios de campos.
type UpdateInvoiceRequest struct {
	ClientID          *string               `json:"client_id,omitempty" validate:"omitempty,min=1"`
	Services          *[]ServiceLineRequest `json:"services,omitempty" validate:"omitempty,dive"`
	Products          *[]ProductLineRequest `json:"products,omitempty" validate:"omitempty,dive"`
	CourtesyProductID *string               `json:"courtesy_product_id,omitempty"`
	Comment           *string               `json:"comment,omitempty" validate:"omitempty,max=1000"`
	Payment           *PaymentRequest       `json:"payment,omitempty"`
	Status            *string               `json:"status,omitempty" validate:"omitempty,oneof=PENDING FINALIZED CANCELED"`
}

// InvoiceQuery filtros de rango para consultas por cliente o empleado (?date_from&date_to).
// Fechas en formato YYYY-MM-DD o RFC3339; ambas obligatorias.
type InvoiceQuery struct {
	DateFrom   string `query:"date_from"`
	DateTo     string `query:"date_to"`
	Status     string `query:"status"`
	ActivityID string `query:"activity_id"`
}

// ServiceLineResponse línea de servicio en respuestas.
type ServiceLineResponse struct {
	ActivityID string          `json:"activity_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	EmployeeID string          `json:"employee_id"`
}

// ProductLineResponse línea de producto en respuestas.
type ProductLineResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PaymentResponse pago con el cambio calculado.
type PaymentResponse struct {
	Method         string           `json:"method"`
	AmountReceived *decimal.Decimal `json:"amount_received,omitempty"`
	Change         decimal.Decimal  `json:"change"`
}

// TotalsResponse totales derivados de las líneas.
type TotalsResponse struct {
	ServicesTotal decimal.Decimal `json:"services_total"`
	ProductsTotal decimal.Decimal `json:"products_total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// InvoiceResponse factura completa para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID                string                `json:"id"`
	Status            string                `json:"status"`
	ClientID          string                `json:"client_id"`
	Services          []ServiceLineResponse `json:"services"`
	Products          []ProductLineResponse `json:"products"`
	CourtesyProductID string                `json:"courtesy_product_id,omitempty"`
	Comment           string                `json:"comment,omitempty"`
	Payment           PaymentResponse       `json:"payment"`
	Totals            TotalsResponse        `json:"totals"`
	CreatedAt         time.Time             `json:"created_at"`
	CreatedBy         string                `json:"created_by,omitempty"`
	UpdatedAt         time.Time             `json:"updated_at"`
	UpdatedBy         string                `json:"updated_by,omitempty"`
	FinalizedAt       *time.Time            `json:"finalized_at,omitempty"`
	FinalizedBy       string                `json:"finalized_by,omitempty"`
	CanceledAt        *time.Time            `json:"canceled_at,omitempty"`
	CanceledBy        string                `json:"canceled_by,omitempty"`
}

// EmployeeServiceResponse servicio prestado por un empleado (historial).
type EmployeeServiceResponse struct {
	InvoiceID  string          `json:"invoice_id"`
	ClientID   string          `json:"client_id"`
	ActivityID string          `json:"activity_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Date       time.Time       `json:"date"`
}
