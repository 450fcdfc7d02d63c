package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	domainbilling "github.com/jhoicas/Gestion-api/internal/domain/billing"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/keylock"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

// Config reglas configurables de facturación.
type Config struct {
	// RequireCashCoverage exige al finalizar que el efectivo recibido cubra el total.
	RequireCashCoverage bool
}

// InvoiceUseCase ciclo de vida de la factura: borrador PENDING editable hasta su
// finalización (consume inventario) o cancelación. Toda lectura-modificación-escritura
// sobre una factura se serializa por ID.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	inventory   InventoryPort
	locks       *keylock.KeyLock
	validate    *dto.Validator
	limits      dto.PageLimits
	cfg         Config
	log         *logger.Logger
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	inventory InventoryPort,
	cfg Config,
	limits dto.PageLimits,
	log *logger.Logger,
) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{
		invoiceRepo: invoiceRepo,
		inventory:   inventory,
		locks:       keylock.New(),
		validate:    dto.NewValidator(),
		limits:      limits,
		cfg:         cfg,
		log:         log.Named("billing"),
		now:         time.Now,
	}
}

// CreateInvoice valida el borrador, calcula totales y cambio y lo guarda como PENDING.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	inv := &entity.Invoice{
		ID:                uuid.New().String(),
		Status:            entity.InvoiceStatusPending,
		ClientID:          strings.TrimSpace(in.ClientID),
		Services:          toServiceLines(in.Services),
		Products:          toProductLines(in.Products),
		CourtesyProductID: strings.TrimSpace(in.CourtesyProductID),
		Comment:           in.Comment,
		Payment:           toPayment(in.Payment),
		CreatedAt:         now,
		CreatedBy:         userID,
		UpdatedAt:         now,
		UpdatedBy:         userID,
	}
	if err := domainbilling.ValidateInvoice(inv); err != nil {
		return nil, err
	}
	domainbilling.Recalculate(inv)

	if err := uc.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("crear factura: %w", err)
	}
	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("client_id", inv.ClientID).
		Str("grand_total", inv.Totals.GrandTotal.String()).
		Msg("factura creada")
	return toInvoiceResponse(inv), nil
}

// UpdateInvoice aplica cambios parciales a una factura PENDING. Las listas presentes
// reemplazan las actuales y los totales se recalculan. Si trae status, la transición
// se aplica después de los cambios y todo se guarda junto o nada.
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, id, userID string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(id)
	defer unlock()

	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inv.IsPending() {
		return nil, fmt.Errorf("%w: la factura %s está %s y no admite cambios", domain.ErrInvalidTransition, id, inv.Status)
	}

	applyUpdate(inv, in)
	if err := domainbilling.ValidateInvoice(inv); err != nil {
		return nil, err
	}
	domainbilling.Recalculate(inv)
	inv.UpdatedAt = uc.now()
	inv.UpdatedBy = userID

	if in.Status != nil {
		switch *in.Status {
		case entity.InvoiceStatusFinalized:
			return uc.finalizeLocked(ctx, inv, userID)
		case entity.InvoiceStatusCanceled:
			return uc.cancelLocked(ctx, inv, userID)
		}
	}

	if err := uc.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("actualizar factura: %w", err)
	}
	uc.log.Debug().Str("invoice_id", inv.ID).Msg("factura actualizada")
	return toInvoiceResponse(inv), nil
}

// FinalizeInvoice descuenta el inventario de la factura y la marca FINALIZED.
// Si alguna salida falla la factura queda PENDING y el ledger intacto.
func (uc *InvoiceUseCase) FinalizeInvoice(ctx context.Context, id, userID string) (*dto.InvoiceResponse, error) {
	unlock := uc.locks.Lock(id)
	defer unlock()

	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.finalizeLocked(ctx, inv, userID)
}

// CancelInvoice marca la factura CANCELED. No toca el inventario.
func (uc *InvoiceUseCase) CancelInvoice(ctx context.Context, id, userID string) (*dto.InvoiceResponse, error) {
	unlock := uc.locks.Lock(id)
	defer unlock()

	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.cancelLocked(ctx, inv, userID)
}

// finalizeLocked requiere el candado de la factura.
func (uc *InvoiceUseCase) finalizeLocked(ctx context.Context, inv *entity.Invoice, userID string) (*dto.InvoiceResponse, error) {
	if err := domainbilling.EnsureTransition(inv.Status, entity.InvoiceStatusFinalized); err != nil {
		return nil, err
	}
	if err := domainbilling.ValidateInvoice(inv); err != nil {
		return nil, err
	}
	if uc.cfg.RequireCashCoverage {
		if err := domainbilling.ValidateCashCoverage(inv.Payment, inv.Totals.GrandTotal); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	exits := discountRequests(inv, userID, now)
	if len(exits) > 0 {
		if _, err := uc.inventory.RegisterExits(ctx, userID, exits); err != nil {
			uc.log.Warn().
				Err(err).
				Str("invoice_id", inv.ID).
				Msg("finalización rechazada")
			return nil, fmt.Errorf("finalizar factura %s: %w", inv.ID, err)
		}
	}

	inv.Status = entity.InvoiceStatusFinalized
	inv.FinalizedAt = &now
	inv.FinalizedBy = userID
	inv.UpdatedAt = now
	inv.UpdatedBy = userID
	if err := uc.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("guardar factura finalizada: %w", err)
	}
	uc.log.Info().
		Str("invoice_id", inv.ID).
		Int("stock_exits", len(exits)).
		Str("grand_total", inv.Totals.GrandTotal.String()).
		Msg("factura finalizada")
	return toInvoiceResponse(inv), nil
}

// cancelLocked requiere el candado de la factura.
func (uc *InvoiceUseCase) cancelLocked(ctx context.Context, inv *entity.Invoice, userID string) (*dto.InvoiceResponse, error) {
	if err := domainbilling.EnsureTransition(inv.Status, entity.InvoiceStatusCanceled); err != nil {
		return nil, err
	}
	now := uc.now()
	inv.Status = entity.InvoiceStatusCanceled
	inv.CanceledAt = &now
	inv.CanceledBy = userID
	inv.UpdatedAt = now
	inv.UpdatedBy = userID
	if err := uc.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("guardar factura cancelada: %w", err)
	}
	uc.log.Info().Str("invoice_id", inv.ID).Msg("factura cancelada")
	return toInvoiceResponse(inv), nil
}

func (uc *InvoiceUseCase) load(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
	}
	return inv, nil
}

func applyUpdate(inv *entity.Invoice, in dto.UpdateInvoiceRequest) {
	if in.ClientID != nil {
		inv.ClientID = strings.TrimSpace(*in.ClientID)
	}
	if in.Services != nil {
		inv.Services = toServiceLines(*in.Services)
	}
	if in.Products != nil {
		inv.Products = toProductLines(*in.Products)
	}
	if in.CourtesyProductID != nil {
		inv.CourtesyProductID = strings.TrimSpace(*in.CourtesyProductID)
	}
	if in.Comment != nil {
		inv.Comment = *in.Comment
	}
	if in.Payment != nil {
		inv.Payment = toPayment(*in.Payment)
	}
}

// discountRequests una salida por ítem: productos en orden de línea, cortesía al final.
func discountRequests(inv *entity.Invoice, userID string, at time.Time) []dto.MovementRequest {
	items := domainbilling.DiscountItems(inv)
	out := make([]dto.MovementRequest, 0, len(items))
	for _, it := range items {
		label := it.Name
		if it.Courtesy {
			label = "cortesía"
		} else if label == "" {
			label = it.ProductID
		}
		date := at
		out = append(out, dto.MovementRequest{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Date:      &date,
			Note:      fmt.Sprintf("Factura %s: %s", inv.ID, label),
			UserID:    userID,
			Reference: inv.ID,
		})
	}
	return out
}
