package billing

import (
	"fmt"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// CanTransition define el grafo de estados: PENDING -> FINALIZED | CANCELED.
// FINALIZED y CANCELED son terminales.
func CanTransition(from, to string) bool {
	if from != entity.InvoiceStatusPending {
		return false
	}
	return to == entity.InvoiceStatusFinalized || to == entity.InvoiceStatusCanceled
}

// IsValidStatus indica si s es uno de los estados conocidos.
func IsValidStatus(s string) bool {
	switch s {
	case entity.InvoiceStatusPending, entity.InvoiceStatusFinalized, entity.InvoiceStatusCanceled:
		return true
	}
	return false
}

// EnsureTransition retorna ErrInvalidTransition si el cambio no está en el grafo.
func EnsureTransition(from, to string) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	return nil
}
