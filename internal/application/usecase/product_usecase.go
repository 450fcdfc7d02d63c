package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// StockReader lectura del stock derivado del ledger.
type StockReader interface {
	GetCurrentStock(ctx context.Context, productID string) (*dto.StockResponse, error)
}

// ProductUseCase catálogo de productos. El stock no se edita aquí: se deriva del ledger.
type ProductUseCase struct {
	repo     repository.ProductRepository
	stock    StockReader
	validate *dto.Validator
	limits   dto.PageLimits
}

// NewProductUseCase construye el caso de uso. stock puede ser nil (respuestas con stock 0).
func NewProductUseCase(repo repository.ProductRepository, stock StockReader, limits dto.PageLimits) *ProductUseCase {
	return &ProductUseCase{repo: repo, stock: stock, validate: dto.NewValidator(), limits: limits}
}

// Create registra un producto. SKU repetido = ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrValidation)
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: SKU %s", domain.ErrDuplicate, in.SKU)
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       strings.TrimSpace(in.SKU),
		Name:      strings.TrimSpace(in.Name),
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return uc.toResponse(ctx, product), nil
}

// List lista el catálogo ordenado por nombre.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (dto.Paginated[dto.ProductResponse], error) {
	page.Normalize(uc.limits)
	products, total, err := uc.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return dto.Paginated[dto.ProductResponse]{}, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		data = append(data, *uc.toResponse(ctx, p))
	}
	return dto.NewPaginated(data, page, total), nil
}

// SeedItem producto de demostración con stock inicial.
type SeedItem struct {
	ID           string
	SKU          string
	Name         string
	Price        int64
	InitialStock int
}

// DemoCatalog catálogo de demostración para development.
func DemoCatalog() []SeedItem {
	return []SeedItem{
		{ID: "prod-crema", SKU: "CRE-01", Name: "Crema hidratante", Price: 5000, InitialStock: 20},
		{ID: "prod-esmalte", SKU: "ESM-01", Name: "Esmalte semipermanente", Price: 8000, InitialStock: 15},
		{ID: "prod-aceite", SKU: "ACE-01", Name: "Aceite de cutícula", Price: 6500, InitialStock: 10},
		{ID: "prod-muestra", SKU: "MUE-01", Name: "Muestra de perfume", Price: 0, InitialStock: 30},
	}
}

// Seed registra los productos que aún no existen y devuelve los creados.
func (uc *ProductUseCase) Seed(ctx context.Context, items []SeedItem) ([]SeedItem, error) {
	created := make([]SeedItem, 0, len(items))
	for _, it := range items {
		existing, err := uc.repo.GetByID(ctx, it.ID)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		now := time.Now()
		if err := uc.repo.Create(ctx, &entity.Product{
			ID:        it.ID,
			SKU:       it.SKU,
			Name:      it.Name,
			Price:     decimal.NewFromInt(it.Price),
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return created, err
		}
		created = append(created, it)
	}
	return created, nil
}

func (uc *ProductUseCase) toResponse(ctx context.Context, p *entity.Product) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if uc.stock != nil {
		if s, err := uc.stock.GetCurrentStock(ctx, p.ID); err == nil {
			out.Stock = s.Stock
		}
	}
	return out
}
