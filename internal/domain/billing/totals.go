package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// CalculateTotals calcula los totales a partir de las líneas actuales.
// Se invoca tras cada cambio de líneas; el resultado reemplaza al anterior (nunca se mezcla).
func CalculateTotals(services []entity.ServiceLine, products []entity.ProductLine) entity.Totals {
	servicesTotal := decimal.Zero
	for _, s := range services {
		servicesTotal = servicesTotal.Add(s.Price)
	}
	productsTotal := decimal.Zero
	for _, p := range products {
		productsTotal = productsTotal.Add(p.Subtotal())
	}
	return entity.Totals{
		ServicesTotal: servicesTotal,
		ProductsTotal: productsTotal,
		GrandTotal:    servicesTotal.Add(productsTotal),
	}
}

// CalculateChange devuelve max(0, recibido - total). Sin monto recibido el cambio es cero.
func CalculateChange(amountReceived *decimal.Decimal, grandTotal decimal.Decimal) decimal.Decimal {
	if amountReceived == nil {
		return decimal.Zero
	}
	change := amountReceived.Sub(grandTotal)
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}

// Recalculate recalcula totales y cambio de la factura en sitio.
func Recalculate(inv *entity.Invoice) {
	inv.Totals = CalculateTotals(inv.Services, inv.Products)
	inv.Payment.Change = CalculateChange(inv.Payment.AmountReceived, inv.Totals.GrandTotal)
}
