package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
)

const seedUserID = "seed"

// seedDemoCatalog registra el catálogo de demostración y su stock inicial como entradas del ledger.
// Los productos ya existentes no reciben una segunda entrada.
func seedDemoCatalog(ctx context.Context, products *usecase.ProductUseCase, ledger *inventory.LedgerUseCase) error {
	created, err := products.Seed(ctx, usecase.DemoCatalog())
	if err != nil {
		return fmt.Errorf("catálogo: %w", err)
	}
	for _, it := range created {
		if it.InitialStock <= 0 {
			continue
		}
		if _, err := ledger.RegisterEntry(ctx, seedUserID, dto.MovementRequest{
			ProductID: it.ID,
			Quantity:  it.InitialStock,
			Note:      "Stock inicial",
			Reference: "seed",
		}); err != nil {
			return fmt.Errorf("stock inicial %s: %w", it.ID, err)
		}
	}
	return nil
}
