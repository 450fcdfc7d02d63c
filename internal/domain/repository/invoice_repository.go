package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// Campos de orden soportados para facturas.
const (
	InvoiceSortCreatedAt  = "createdAt"
	InvoiceSortUpdatedAt  = "updatedAt"
	InvoiceSortGrandTotal = "grandTotal"
	InvoiceSortStatus     = "status"
	InvoiceSortClientID   = "clientId"
)

// Sort criterio de orden. Field vacío = orden por defecto del repositorio.
type Sort struct {
	Field string
	Desc  bool
}

// InvoiceFilter criterios de búsqueda; los campos vacíos no filtran.
// DateFrom/DateTo comparan contra CreatedAt (rango cerrado).
type InvoiceFilter struct {
	ClientID   string
	EmployeeID string // facturas con al menos un servicio de este empleado
	ActivityID string // facturas con al menos un servicio de esta actividad
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string // término libre: id, cliente, comentario, nombres de línea
}

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// Update reemplaza el registro completo (last-writer-wins); el caller serializa por ID.
	Update(ctx context.Context, invoice *entity.Invoice) error
	// List devuelve la página pedida y el total de coincidencias. limit <= 0 = sin límite.
	List(ctx context.Context, filter InvoiceFilter, sort Sort, limit, offset int) ([]*entity.Invoice, int, error)
}
