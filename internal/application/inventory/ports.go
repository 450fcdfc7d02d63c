package inventory

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// ProductCatalog puerto de lectura del catálogo de productos (colaborador externo).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductCatalog interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
