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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo de productos en memoria.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
	bySKU    map[string]string
}

// NewProductRepository construye el catálogo vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{
		products: make(map[string]*entity.Product),
		bySKU:    make(map[string]string),
	}
}

// Create persiste un producto. ID o SKU repetido = ErrDuplicate.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; ok {
		return fmt.Errorf("%w: producto %s", domain.ErrDuplicate, product.ID)
	}
	sku := strings.ToUpper(product.SKU)
	if sku != "" {
		if _, ok := r.bySKU[sku]; ok {
			return fmt.Errorf("%w: SKU %s", domain.ErrDuplicate, product.SKU)
		}
		r.bySKU[sku] = product.ID
	}
	p := *product
	r.products[p.ID] = &p
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

// GetBySKU obtiene un producto por SKU (sin distinguir mayúsculas). (nil, nil) si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	r.mu.RLock()
	id, ok := r.bySKU[strings.ToUpper(sku)]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// List devuelve los productos ordenados por nombre.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, int, error) {
	r.mu.RLock()
	items := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		items = append(items, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if items[i].Name == items[j].Name {
			return items[i].ID < items[j].ID
		}
		return items[i].Name < items[j].Name
	})
	return paginate(items, limit, offset), len(items), nil
}
