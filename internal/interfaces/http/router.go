package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/billing"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
)

// Roles con permiso para alimentar el inventario y el catálogo (solo con JWT).
var stockManagerRoles = []string{"admin", "bodeguero"}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InvoiceUC  *billing.InvoiceUseCase
	InvoicePDF *billing.PDFUseCase
	LedgerUC   *inventory.LedgerUseCase
	ProductUC  *usecase.ProductUseCase
	JWTSecret  string
	JWTIssuer  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Sin JWT no hay roles: la cabecera X-User-ID basta.
	stockManager := func(c *fiber.Ctx) error { return c.Next() }
	if deps.JWTSecret != "" {
		stockManager = RequireRole(stockManagerRoles...)
	}

	// Invoices
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices := api.Group("/invoices")
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/search", invoiceHandler.Search)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id", invoiceHandler.Update)
	invoices.Post("/:id/finalize", invoiceHandler.Finalize)
	invoices.Post("/:id/cancel", invoiceHandler.Cancel)
	if deps.InvoicePDF != nil {
		invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	}
	api.Get("/clients/:clientId/invoices", invoiceHandler.ListByClient)
	api.Get("/employees/:employeeId/services", invoiceHandler.ListEmployeeServices)

	// Inventory ledger
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	inv := api.Group("/inventory")
	inv.Post("/entries", stockManager, inventoryHandler.RegisterEntry)
	inv.Post("/exits", stockManager, inventoryHandler.RegisterExit)
	inv.Get("/stock/:productId", inventoryHandler.GetStock)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/products/:productId/movements", inventoryHandler.ListProductMovements)

	// Products
	if deps.ProductUC != nil {
		productHandler := NewProductHandler(deps.ProductUC)
		products := api.Group("/products")
		products.Post("/", stockManager, productHandler.Create)
		products.Get("/", productHandler.List)
		products.Get("/:id", productHandler.GetByID)
	}
}
