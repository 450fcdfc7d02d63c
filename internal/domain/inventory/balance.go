package inventory

import "github.com/jhoicas/Gestion-api/internal/domain/entity"

// Balance deriva el stock desde el ledger: Σ IN - Σ OUT (servicio de dominio).
// Nunca se guarda como contador; siempre se recalcula a partir de los movimientos.
func Balance(movements []*entity.StockMovement) int {
	total := 0
	for _, m := range movements {
		switch m.Type {
		case entity.MovementTypeIN:
			total += m.Quantity
		case entity.MovementTypeOUT:
			total -= m.Quantity
		}
	}
	return total
}

// CanWithdraw indica si una salida de qty deja el balance en cero o más.
func CanWithdraw(balance, qty int) bool {
	return qty > 0 && qty <= balance
}
