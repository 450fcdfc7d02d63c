package billing

import (
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

func toServiceLines(in []dto.ServiceLineRequest) []entity.ServiceLine {
	out := make([]entity.ServiceLine, 0, len(in))
	for _, s := range in {
		out = append(out, entity.ServiceLine{
			ActivityID: s.ActivityID,
			Name:       s.Name,
			Price:      s.Price,
			EmployeeID: s.EmployeeID,
		})
	}
	return out
}

func toProductLines(in []dto.ProductLineRequest) []entity.ProductLine {
	out := make([]entity.ProductLine, 0, len(in))
	for _, p := range in {
		out = append(out, entity.ProductLine{
			ProductID: p.ProductID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Quantity:  p.Quantity,
		})
	}
	return out
}

func toPayment(in dto.PaymentRequest) entity.Payment {
	p := entity.Payment{Method: in.Method}
	// El monto recibido solo aplica a efectivo.
	if in.Method == entity.PaymentMethodCash && in.AmountReceived != nil {
		v := *in.AmountReceived
		p.AmountReceived = &v
	}
	return p
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	services := make([]dto.ServiceLineResponse, 0, len(inv.Services))
	for _, s := range inv.Services {
		services = append(services, dto.ServiceLineResponse{
			ActivityID: s.ActivityID,
			Name:       s.Name,
			Price:      s.Price,
			EmployeeID: s.EmployeeID,
		})
	}
	products := make([]dto.ProductLineResponse, 0, len(inv.Products))
	for _, p := range inv.Products {
		products = append(products, dto.ProductLineResponse{
			ProductID: p.ProductID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Quantity:  p.Quantity,
			Subtotal:  p.Subtotal(),
		})
	}
	return &dto.InvoiceResponse{
		ID:                inv.ID,
		Status:            inv.Status,
		ClientID:          inv.ClientID,
		Services:          services,
		Products:          products,
		CourtesyProductID: inv.CourtesyProductID,
		Comment:           inv.Comment,
		Payment: dto.PaymentResponse{
			Method:         inv.Payment.Method,
			AmountReceived: inv.Payment.AmountReceived,
			Change:         inv.Payment.Change,
		},
		Totals: dto.TotalsResponse{
			ServicesTotal: inv.Totals.ServicesTotal,
			ProductsTotal: inv.Totals.ProductsTotal,
			GrandTotal:    inv.Totals.GrandTotal,
		},
		CreatedAt:   inv.CreatedAt,
		CreatedBy:   inv.CreatedBy,
		UpdatedAt:   inv.UpdatedAt,
		UpdatedBy:   inv.UpdatedBy,
		FinalizedAt: inv.FinalizedAt,
		FinalizedBy: inv.FinalizedBy,
		CanceledAt:  inv.CanceledAt,
		CanceledBy:  inv.CanceledBy,
	}
}
