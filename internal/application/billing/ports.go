package billing

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// InventoryPort integra facturación con el ledger de inventario.
// RegisterExits es todo o nada: si retorna error (ej: ErrInsufficientStock) no se agregó ningún movimiento.
type InventoryPort interface {
	RegisterExits(ctx context.Context, userID string, items []dto.MovementRequest) ([]dto.MovementResponse, error)
}

// ProductLookup lectura del catálogo para enriquecer documentos (nombre del producto de cortesía).
type ProductLookup interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}

// ReceiptData datos adicionales que el generador de PDF no puede obtener de la factura.
type ReceiptData struct {
	BusinessName string
	CourtesyName string
}

// InvoicePDFGenerator genera el comprobante en PDF de una factura finalizada.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, data ReceiptData) ([]byte, error)
}
