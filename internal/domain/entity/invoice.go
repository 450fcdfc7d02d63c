package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura. PENDING es el inicial; FINALIZED y CANCELED son terminales.
const (
	InvoiceStatusPending   = "PENDING"
	InvoiceStatusFinalized = "FINALIZED"
	InvoiceStatusCanceled  = "CANCELED"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodTransfer = "TRANSFER"
)

// ServiceLine servicio (actividad del catálogo) prestado por un empleado.
type ServiceLine struct {
	ActivityID string
	Name       string
	Price      decimal.Decimal
	EmployeeID string
}

// ProductLine producto vendido; consume inventario al finalizar la factura.
type ProductLine struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Subtotal precio unitario por cantidad.
func (l ProductLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Payment forma de pago. AmountReceived solo aplica a CASH; Change siempre es derivado.
type Payment struct {
	Method         string
	AmountReceived *decimal.Decimal
	Change         decimal.Decimal
}

// Totals es función pura de las líneas; nunca se asigna desde fuera del dominio.
type Totals struct {
	ServicesTotal decimal.Decimal
	ProductsTotal decimal.Decimal
	GrandTotal    decimal.Decimal
}

// Invoice representa una venta (servicios + productos) y su ciclo de vida.
type Invoice struct {
	ID                string
	Status            string
	ClientID          string
	Services          []ServiceLine
	Products          []ProductLine
	CourtesyProductID string // vacío = sin producto de cortesía
	Comment           string
	Payment           Payment
	Totals            Totals
	CreatedAt         time.Time
	CreatedBy         string
	UpdatedAt         time.Time
	UpdatedBy         string
	FinalizedAt       *time.Time
	FinalizedBy       string
	CanceledAt        *time.Time
	CanceledBy        string
}

// IsPending indica si la factura aún admite cambios.
func (inv *Invoice) IsPending() bool {
	return inv.Status == InvoiceStatusPending
}

// Clone devuelve una copia profunda; los stores nunca comparten slices con el caller.
func (inv *Invoice) Clone() *Invoice {
	if inv == nil {
		return nil
	}
	out := *inv
	out.Services = append([]ServiceLine(nil), inv.Services...)
	out.Products = append([]ProductLine(nil), inv.Products...)
	if inv.Payment.AmountReceived != nil {
		v := *inv.Payment.AmountReceived
		out.Payment.AmountReceived = &v
	}
	if inv.FinalizedAt != nil {
		t := *inv.FinalizedAt
		out.FinalizedAt = &t
	}
	if inv.CanceledAt != nil {
		t := *inv.CanceledAt
		out.CanceledAt = &t
	}
	return &out
}
