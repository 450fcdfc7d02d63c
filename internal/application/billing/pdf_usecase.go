package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// PDFUseCase genera el comprobante (PDF) de una factura.
// Solo se permite para facturas FINALIZED: un borrador puede cambiar y una cancelada no es un cobro.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	products     ProductLookup
	generator    InvoicePDFGenerator
	businessName string
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias. products puede ser nil.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	products ProductLookup,
	generator InvoicePDFGenerator,
	businessName string,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		products:     products,
		generator:    generator,
		businessName: businessName,
	}
}

// DownloadInvoicePDF genera el comprobante.
//
// Retorna:
//   - (pdfBytes, filename, nil)     si todo sale bien.
//   - domain.ErrNotFound            si la factura no existe.
//   - domain.ErrInvalidTransition   si la factura no está FINALIZED.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", fmt.Errorf("%w: factura %s", domain.ErrNotFound, invoiceID)
	}
	if inv.Status != entity.InvoiceStatusFinalized {
		return nil, "", fmt.Errorf("%w: la factura está %s, solo se emite comprobante de facturas finalizadas",
			domain.ErrInvalidTransition, inv.Status)
	}

	data := ReceiptData{BusinessName: uc.businessName}
	if inv.CourtesyProductID != "" {
		data.CourtesyName = inv.CourtesyProductID // fallback
		if uc.products != nil {
			if p, pErr := uc.products.GetByID(ctx, inv.CourtesyProductID); pErr == nil && p != nil {
				data.CourtesyName = p.Name
			}
		}
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, data)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", inv.ID), nil
}
