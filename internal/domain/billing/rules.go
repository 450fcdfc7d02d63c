package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// ValidatePayment verifica método y monto recibido.
// No exige que el efectivo cubra el total; eso lo decide ValidateCashCoverage.
func ValidatePayment(p entity.Payment) error {
	switch p.Method {
	case "":
		return fmt.Errorf("%w: método de pago requerido", domain.ErrValidation)
	case entity.PaymentMethodCash:
		if p.AmountReceived == nil {
			return fmt.Errorf("%w: monto recibido requerido para pago en efectivo", domain.ErrValidation)
		}
		if p.AmountReceived.IsNegative() {
			return fmt.Errorf("%w: monto recibido no puede ser negativo", domain.ErrValidation)
		}
	case entity.PaymentMethodTransfer:
	default:
		return fmt.Errorf("%w: método de pago %q no soportado", domain.ErrValidation, p.Method)
	}
	return nil
}

// ValidateLines aplica las reglas de negocio sobre líneas y cortesía.
func ValidateLines(services []entity.ServiceLine, products []entity.ProductLine, courtesyProductID string) error {
	for i, s := range services {
		if s.EmployeeID == "" {
			return fmt.Errorf("%w: el servicio %d no tiene empleado asignado", domain.ErrValidation, i+1)
		}
		if s.Price.IsNegative() {
			return fmt.Errorf("%w: el servicio %d tiene precio negativo", domain.ErrValidation, i+1)
		}
	}
	for i, p := range products {
		if p.Quantity <= 0 {
			return fmt.Errorf("%w: el producto %d debe tener cantidad mayor a cero", domain.ErrValidation, i+1)
		}
		if p.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: el producto %d tiene precio negativo", domain.ErrValidation, i+1)
		}
	}
	if courtesyProductID != "" && len(services) == 0 {
		return fmt.Errorf("%w: el producto de cortesía requiere al menos un servicio", domain.ErrValidation)
	}
	return nil
}

// ValidateInvoice reglas completas de una factura PENDING.
func ValidateInvoice(inv *entity.Invoice) error {
	if inv.ClientID == "" {
		return fmt.Errorf("%w: cliente requerido", domain.ErrValidation)
	}
	if err := ValidatePayment(inv.Payment); err != nil {
		return err
	}
	return ValidateLines(inv.Services, inv.Products, inv.CourtesyProductID)
}

// ValidateCashCoverage exige que el efectivo recibido cubra el total.
func ValidateCashCoverage(p entity.Payment, grandTotal decimal.Decimal) error {
	if p.Method != entity.PaymentMethodCash || p.AmountReceived == nil {
		return nil
	}
	if p.AmountReceived.LessThan(grandTotal) {
		return fmt.Errorf("%w: el efectivo recibido (%s) no cubre el total (%s)",
			domain.ErrValidation, p.AmountReceived.String(), grandTotal.String())
	}
	return nil
}

// DiscountItem línea que consume inventario al finalizar.
type DiscountItem struct {
	ProductID string
	Name      string
	Quantity  int
	Courtesy  bool
}

// DiscountItems arma el conjunto a descontar en orden fijo: productos en orden de línea,
// cortesía al final con cantidad 1.
func DiscountItems(inv *entity.Invoice) []DiscountItem {
	items := make([]DiscountItem, 0, len(inv.Products)+1)
	for _, p := range inv.Products {
		if p.Quantity <= 0 {
			continue
		}
		items = append(items, DiscountItem{ProductID: p.ProductID, Name: p.Name, Quantity: p.Quantity})
	}
	if inv.CourtesyProductID != "" {
		items = append(items, DiscountItem{ProductID: inv.CourtesyProductID, Quantity: 1, Courtesy: true})
	}
	return items
}
