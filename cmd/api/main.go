package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Gestion-api/docs"
	"github.com/jhoicas/Gestion-api/internal/application/billing"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Gestion-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/Gestion-api/internal/interfaces/http"
	"github.com/jhoicas/Gestion-api/pkg/config"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("jwt", cfg.JWT.Secret != "").
		Msg("iniciando aplicación")

	limits := dto.PageLimits{
		Default: cfg.Pagination.DefaultLimit,
		Min:     cfg.Pagination.MinLimit,
		Max:     cfg.Pagination.MaxLimit,
	}

	productRepo := memory.NewProductRepository()
	movementRepo := memory.NewStockMovementRepository()
	invoiceRepo := memory.NewInvoiceRepository()

	ledgerUC := inventory.NewLedgerUseCase(movementRepo, productRepo, limits, log)
	productUC := usecase.NewProductUseCase(productRepo, ledgerUC, limits)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, ledgerUC, billing.Config{
		RequireCashCoverage: cfg.Billing.RequireCashCoverage,
	}, limits, log)

	// PDF: comprobante de la factura finalizada
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, productRepo, pdfGenerator, cfg.Billing.BusinessName)

	if cfg.Seed.DemoCatalog {
		if err := seedDemoCatalog(context.Background(), productUC, ledgerUC); err != nil {
			log.Fatal().Err(err).Msg("sembrar catálogo de demostración")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Title = cfg.App.Name
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.Swagger.FilePath,
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InvoiceUC:  invoiceUC,
		InvoicePDF: invoicePDFUC,
		LedgerUC:   ledgerUC,
		ProductUC:  productUC,
		JWTSecret:  cfg.JWT.Secret,
		JWTIssuer:  cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
