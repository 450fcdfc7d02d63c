package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/textnorm"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación en memoria del puerto InvoiceRepository.
type InvoiceRepo struct {
	mu       sync.RWMutex
	invoices map[string]*entity.Invoice
}

// NewInvoiceRepository construye el store de facturas vacío.
func NewInvoiceRepository() *InvoiceRepo {
	return &InvoiceRepo{invoices: make(map[string]*entity.Invoice)}
}

// Create persiste una nueva factura. ID repetido = ErrDuplicate.
func (r *InvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	if invoice == nil || invoice.ID == "" {
		return fmt.Errorf("%w: factura sin ID", domain.ErrValidation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[invoice.ID]; ok {
		return fmt.Errorf("%w: factura %s", domain.ErrDuplicate, invoice.ID)
	}
	r.invoices[invoice.ID] = invoice.Clone()
	return nil
}

// GetByID obtiene una factura por ID. (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	return inv.Clone(), nil
}

// Update reemplaza la factura almacenada.
func (r *InvoiceRepo) Update(_ context.Context, invoice *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[invoice.ID]; !ok {
		return fmt.Errorf("%w: factura %s", domain.ErrNotFound, invoice.ID)
	}
	r.invoices[invoice.ID] = invoice.Clone()
	return nil
}

// List filtra, ordena y pagina. Devuelve el total antes de paginar.
func (r *InvoiceRepo) List(_ context.Context, filter repository.InvoiceFilter, s repository.Sort, limit, offset int) ([]*entity.Invoice, int, error) {
	term := textnorm.Fold(filter.Search)

	r.mu.RLock()
	matched := make([]*entity.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		if matchInvoice(inv, filter, term) {
			matched = append(matched, inv.Clone())
		}
	}
	r.mu.RUnlock()

	sortInvoices(matched, s)
	total := len(matched)
	return paginate(matched, limit, offset), total, nil
}

func matchInvoice(inv *entity.Invoice, f repository.InvoiceFilter, term string) bool {
	if f.ClientID != "" && inv.ClientID != f.ClientID {
		return false
	}
	if f.Status != "" && inv.Status != f.Status {
		return false
	}
	if f.DateFrom != nil && inv.CreatedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && inv.CreatedAt.After(*f.DateTo) {
		return false
	}
	if f.EmployeeID != "" || f.ActivityID != "" {
		found := false
		for _, s := range inv.Services {
			if (f.EmployeeID == "" || s.EmployeeID == f.EmployeeID) &&
				(f.ActivityID == "" || s.ActivityID == f.ActivityID) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if term != "" && !searchable(inv, term) {
		return false
	}
	return true
}

func searchable(inv *entity.Invoice, term string) bool {
	fields := []string{inv.ID, inv.ClientID, inv.Comment}
	for _, s := range inv.Services {
		fields = append(fields, s.Name)
	}
	for _, p := range inv.Products {
		fields = append(fields, p.Name)
	}
	for _, f := range fields {
		if textnorm.Contains(f, term) {
			return true
		}
	}
	return false
}

// sortInvoices orden estable; empate por ID para que la paginación sea determinista.
func sortInvoices(items []*entity.Invoice, s repository.Sort) {
	field := s.Field
	desc := s.Desc
	if field == "" {
		field = repository.InvoiceSortCreatedAt
		desc = true
	}
	less := func(a, b *entity.Invoice) int {
		switch field {
		case repository.InvoiceSortUpdatedAt:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		case repository.InvoiceSortGrandTotal:
			return a.Totals.GrandTotal.Cmp(b.Totals.GrandTotal)
		case repository.InvoiceSortStatus:
			return strings.Compare(a.Status, b.Status)
		case repository.InvoiceSortClientID:
			return strings.Compare(a.ClientID, b.ClientID)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		c := less(items[i], items[j])
		if c == 0 {
			c = strings.Compare(items[i].ID, items[j].ID)
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}
