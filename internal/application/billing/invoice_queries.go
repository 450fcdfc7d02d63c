package billing

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	domainbilling "github.com/jhoicas/Gestion-api/internal/domain/billing"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// Campos de orden del historial de servicios.
const (
	serviceSortDate  = "date"
	serviceSortPrice = "price"
)

// ListInvoices lista todas las facturas (por defecto createdAt desc).
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, page dto.PageRequest) (dto.Paginated[dto.InvoiceResponse], error) {
	return uc.list(ctx, repository.InvoiceFilter{}, page)
}

// GetInvoice obtiene una factura por ID.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// SearchInvoices busca por ID, cliente, comentario o nombre de línea, sin distinguir mayúsculas ni tildes.
// Un término vacío equivale a ListInvoices.
func (uc *InvoiceUseCase) SearchInvoices(ctx context.Context, term string, page dto.PageRequest) (dto.Paginated[dto.InvoiceResponse], error) {
	return uc.list(ctx, repository.InvoiceFilter{Search: strings.TrimSpace(term)}, page)
}

// ListInvoicesByClient facturas del cliente en el rango (obligatorio), opcionalmente por estado.
func (uc *InvoiceUseCase) ListInvoicesByClient(ctx context.Context, clientID string, q dto.InvoiceQuery, page dto.PageRequest) (dto.Paginated[dto.InvoiceResponse], error) {
	if strings.TrimSpace(clientID) == "" {
		return dto.Paginated[dto.InvoiceResponse]{}, fmt.Errorf("%w: cliente requerido", domain.ErrValidation)
	}
	from, to, err := dto.ParseDateRange(q.DateFrom, q.DateTo, true)
	if err != nil {
		return dto.Paginated[dto.InvoiceResponse]{}, err
	}
	status := strings.ToUpper(strings.TrimSpace(q.Status))
	if status != "" && !domainbilling.IsValidStatus(status) {
		return dto.Paginated[dto.InvoiceResponse]{}, fmt.Errorf("%w: estado %q desconocido", domain.ErrValidation, q.Status)
	}
	return uc.list(ctx, repository.InvoiceFilter{ClientID: clientID, Status: status, DateFrom: from, DateTo: to}, page)
}

// ListEmployeeServiceHistory servicios prestados por el empleado en facturas FINALIZED
// dentro del rango (obligatorio), opcionalmente por actividad. Una fila por línea de servicio.
func (uc *InvoiceUseCase) ListEmployeeServiceHistory(ctx context.Context, employeeID string, q dto.InvoiceQuery, page dto.PageRequest) (dto.Paginated[dto.EmployeeServiceResponse], error) {
	if strings.TrimSpace(employeeID) == "" {
		return dto.Paginated[dto.EmployeeServiceResponse]{}, fmt.Errorf("%w: empleado requerido", domain.ErrValidation)
	}
	from, to, err := dto.ParseDateRange(q.DateFrom, q.DateTo, true)
	if err != nil {
		return dto.Paginated[dto.EmployeeServiceResponse]{}, err
	}
	page.Normalize(uc.limits)

	filter := repository.InvoiceFilter{
		EmployeeID: employeeID,
		ActivityID: q.ActivityID,
		Status:     entity.InvoiceStatusFinalized,
		DateFrom:   from,
		DateTo:     to,
	}
	invoices, _, err := uc.invoiceRepo.List(ctx, filter, repository.Sort{}, 0, 0)
	if err != nil {
		return dto.Paginated[dto.EmployeeServiceResponse]{}, fmt.Errorf("listar facturas: %w", err)
	}

	rows := make([]dto.EmployeeServiceResponse, 0)
	for _, inv := range invoices {
		for _, s := range inv.Services {
			if s.EmployeeID != employeeID || (q.ActivityID != "" && s.ActivityID != q.ActivityID) {
				continue
			}
			rows = append(rows, dto.EmployeeServiceResponse{
				InvoiceID:  inv.ID,
				ClientID:   inv.ClientID,
				ActivityID: s.ActivityID,
				Name:       s.Name,
				Price:      s.Price,
				Date:       inv.CreatedAt,
			})
		}
	}
	sortServiceRows(rows, page)

	total := len(rows)
	start := page.Offset()
	if start < 0 || start > total {
		start = total
	}
	end := total
	if page.Limit > 0 && page.Limit < total-start {
		end = start + page.Limit
	}
	return dto.NewPaginated(rows[start:end], page, total), nil
}

func (uc *InvoiceUseCase) list(ctx context.Context, filter repository.InvoiceFilter, page dto.PageRequest) (dto.Paginated[dto.InvoiceResponse], error) {
	page.Normalize(uc.limits)
	invoices, total, err := uc.invoiceRepo.List(ctx, filter, invoiceSort(page), page.Limit, page.Offset())
	if err != nil {
		return dto.Paginated[dto.InvoiceResponse]{}, fmt.Errorf("listar facturas: %w", err)
	}
	data := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		data = append(data, *toInvoiceResponse(inv))
	}
	return dto.NewPaginated(data, page, total), nil
}

// invoiceSort traduce sort_by; un campo desconocido vuelve al orden por defecto (createdAt desc).
func invoiceSort(page dto.PageRequest) repository.Sort {
	switch page.SortBy {
	case repository.InvoiceSortCreatedAt, repository.InvoiceSortUpdatedAt, repository.InvoiceSortGrandTotal,
		repository.InvoiceSortStatus, repository.InvoiceSortClientID:
		return repository.Sort{Field: page.SortBy, Desc: page.SortOrder == dto.SortDesc}
	}
	return repository.Sort{}
}

func sortServiceRows(rows []dto.EmployeeServiceResponse, page dto.PageRequest) {
	field := page.SortBy
	desc := page.SortOrder == dto.SortDesc
	if field != serviceSortPrice {
		field = serviceSortDate
		if page.SortBy != serviceSortDate {
			desc = true
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		var c int
		if field == serviceSortPrice {
			c = rows[i].Price.Cmp(rows[j].Price)
		} else {
			c = rows[i].Date.Compare(rows[j].Date)
		}
		if c == 0 {
			c = strings.Compare(rows[i].InvoiceID, rows[j].InvoiceID)
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}
