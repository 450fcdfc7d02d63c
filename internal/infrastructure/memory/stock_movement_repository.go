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
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

type movementRecord struct {
	seq int
	m   entity.StockMovement
}

// StockMovementRepo ledger append-only en memoria con índice por producto.
type StockMovementRepo struct {
	mu        sync.RWMutex
	log       []*movementRecord
	byProduct map[string][]*movementRecord
}

// NewStockMovementRepository construye el ledger vacío.
func NewStockMovementRepository() *StockMovementRepo {
	return &StockMovementRepo{byProduct: make(map[string][]*movementRecord)}
}

// Append agrega un movimiento al final del ledger.
func (r *StockMovementRepo) Append(_ context.Context, movement *entity.StockMovement) error {
	if movement == nil || movement.ID == "" || movement.ProductID == "" {
		return fmt.Errorf("%w: movimiento incompleto", domain.ErrValidation)
	}
	if movement.Quantity <= 0 {
		return fmt.Errorf("%w: cantidad debe ser mayor a cero", domain.ErrValidation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := &movementRecord{seq: len(r.log), m: *movement}
	r.log = append(r.log, rec)
	r.byProduct[movement.ProductID] = append(r.byProduct[movement.ProductID], rec)
	return nil
}

// ListByProduct devuelve los movimientos del producto en orden de inserción.
func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := r.byProduct[productID]
	out := make([]*entity.StockMovement, 0, len(recs))
	for _, rec := range recs {
		m := rec.m
		out = append(out, &m)
	}
	return out, nil
}

// List filtra, ordena y pagina el ledger.
func (r *StockMovementRepo) List(_ context.Context, f repository.MovementFilter, s repository.Sort, limit, offset int) ([]*entity.StockMovement, int, error) {
	r.mu.RLock()
	source := r.log
	if f.ProductID != "" {
		source = r.byProduct[f.ProductID]
	}
	matched := make([]*movementRecord, 0, len(source))
	for _, rec := range source {
		if f.Type != "" && rec.m.Type != f.Type {
			continue
		}
		if f.DateFrom != nil && rec.m.Date.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && rec.m.Date.After(*f.DateTo) {
			continue
		}
		matched = append(matched, rec)
	}
	r.mu.RUnlock()

	sortMovements(matched, s)
	total := len(matched)
	page := paginate(matched, limit, offset)
	out := make([]*entity.StockMovement, 0, len(page))
	for _, rec := range page {
		m := rec.m
		out = append(out, &m)
	}
	return out, total, nil
}

func sortMovements(items []*movementRecord, s repository.Sort) {
	field := s.Field
	desc := s.Desc
	if field == "" {
		field = repository.MovementSortDate
		desc = true
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		var c int
		switch field {
		case repository.MovementSortQuantity:
			c = a.m.Quantity - b.m.Quantity
		case repository.MovementSortType:
			c = strings.Compare(a.m.Type, b.m.Type)
		default:
			c = a.m.Date.Compare(b.m.Date)
		}
		if c == 0 {
			c = a.seq - b.seq
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}
