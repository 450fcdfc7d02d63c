package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/inventory"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/keylock"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

// LedgerUseCase registra entradas y salidas en el ledger y deriva el stock.
// Las salidas se serializan por producto: derivar balance + agregar OUT ocurre bajo el mismo candado.
type LedgerUseCase struct {
	movements repository.StockMovementRepository
	catalog   ProductCatalog
	locks     *keylock.KeyLock
	validate  *dto.Validator
	limits    dto.PageLimits
	log       *logger.Logger
	now       func() time.Time
}

// NewLedgerUseCase construye el caso de uso. catalog nil = se acepta cualquier producto.
func NewLedgerUseCase(
	movements repository.StockMovementRepository,
	catalog ProductCatalog,
	limits dto.PageLimits,
	log *logger.Logger,
) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		movements: movements,
		catalog:   catalog,
		locks:     keylock.New(),
		validate:  dto.NewValidator(),
		limits:    limits,
		log:       log.Named("inventory"),
		now:       time.Now,
	}
}

// RegisterEntry agrega un movimiento IN.
func (uc *LedgerUseCase) RegisterEntry(ctx context.Context, userID string, in dto.MovementRequest) (*dto.MovementResponse, error) {
	if err := uc.check(ctx, in); err != nil {
		return nil, err
	}
	mov := uc.newMovement(userID, entity.MovementTypeIN, in)
	if err := uc.movements.Append(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar entrada: %w", err)
	}
	uc.log.Info().
		Str("product_id", mov.ProductID).
		Int("quantity", mov.Quantity).
		Msg("entrada de inventario registrada")
	out := toMovementResponse(mov)
	return &out, nil
}

// RegisterExit agrega un movimiento OUT si el stock derivado alcanza; si no, ErrInsufficientStock sin tocar el ledger.
func (uc *LedgerUseCase) RegisterExit(ctx context.Context, userID string, in dto.MovementRequest) (*dto.MovementResponse, error) {
	out, err := uc.RegisterExits(ctx, userID, []dto.MovementRequest{in})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// RegisterExits registra varias salidas como una unidad: bloquea los productos en orden,
// verifica la demanda agregada contra el stock derivado y solo entonces agrega un OUT por ítem,
// en el orden recibido. Si algún producto no alcanza, no se agrega ningún movimiento.
func (uc *LedgerUseCase) RegisterExits(ctx context.Context, userID string, items []dto.MovementRequest) ([]dto.MovementResponse, error) {
	if len(items) == 0 {
		return []dto.MovementResponse{}, nil
	}
	ids := make([]string, 0, len(items))
	demand := make(map[string]int, len(items))
	for _, in := range items {
		if err := uc.check(ctx, in); err != nil {
			return nil, err
		}
		if _, ok := demand[in.ProductID]; !ok {
			ids = append(ids, in.ProductID)
		}
		demand[in.ProductID] += in.Quantity
	}

	unlock := uc.locks.LockAll(ids)
	defer unlock()

	for _, id := range ids {
		balance, err := uc.balance(ctx, id)
		if err != nil {
			return nil, err
		}
		if !inventory.CanWithdraw(balance, demand[id]) {
			uc.log.Warn().
				Str("product_id", id).
				Int("available", balance).
				Int("requested", demand[id]).
				Msg("salida rechazada por stock insuficiente")
			return nil, fmt.Errorf("%w: producto %s disponible %d, solicitado %d",
				domain.ErrInsufficientStock, id, balance, demand[id])
		}
	}

	out := make([]dto.MovementResponse, 0, len(items))
	for _, in := range items {
		mov := uc.newMovement(userID, entity.MovementTypeOUT, in)
		if err := uc.movements.Append(ctx, mov); err != nil {
			return nil, fmt.Errorf("registrar salida: %w", err)
		}
		out = append(out, toMovementResponse(mov))
	}
	uc.log.Info().
		Int("items", len(items)).
		Strs("product_ids", ids).
		Msg("salidas de inventario registradas")
	return out, nil
}

// GetCurrentStock deriva el stock del producto desde el ledger (nunca negativo).
func (uc *LedgerUseCase) GetCurrentStock(ctx context.Context, productID string) (*dto.StockResponse, error) {
	if err := uc.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	balance, err := uc.balance(ctx, productID)
	if err != nil {
		return nil, err
	}
	if balance < 0 {
		balance = 0
	}
	return &dto.StockResponse{ProductID: productID, Stock: balance}, nil
}

// ListMovements lista el ledger completo filtrado por rango de fechas y tipo.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, q dto.MovementQuery, page dto.PageRequest) (dto.Paginated[dto.MovementResponse], error) {
	return uc.list(ctx, "", q, page)
}

// ListMovementsByProduct lista los movimientos de un producto.
func (uc *LedgerUseCase) ListMovementsByProduct(ctx context.Context, productID string, q dto.MovementQuery, page dto.PageRequest) (dto.Paginated[dto.MovementResponse], error) {
	if err := uc.ensureProduct(ctx, productID); err != nil {
		return dto.Paginated[dto.MovementResponse]{}, err
	}
	return uc.list(ctx, productID, q, page)
}

func (uc *LedgerUseCase) list(ctx context.Context, productID string, q dto.MovementQuery, page dto.PageRequest) (dto.Paginated[dto.MovementResponse], error) {
	if err := uc.validate.Struct(q); err != nil {
		return dto.Paginated[dto.MovementResponse]{}, err
	}
	from, to, err := dto.ParseDateRange(q.DateFrom, q.DateTo, false)
	if err != nil {
		return dto.Paginated[dto.MovementResponse]{}, err
	}
	page.Normalize(uc.limits)

	filter := repository.MovementFilter{ProductID: productID, Type: q.Type, DateFrom: from, DateTo: to}
	movs, total, err := uc.movements.List(ctx, filter, movementSort(page), page.Limit, page.Offset())
	if err != nil {
		return dto.Paginated[dto.MovementResponse]{}, fmt.Errorf("listar movimientos: %w", err)
	}
	data := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		data = append(data, toMovementResponse(m))
	}
	return dto.NewPaginated(data, page, total), nil
}

func (uc *LedgerUseCase) check(ctx context.Context, in dto.MovementRequest) error {
	if err := uc.validate.Struct(in); err != nil {
		return err
	}
	return uc.ensureProduct(ctx, in.ProductID)
}

func (uc *LedgerUseCase) ensureProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return fmt.Errorf("%w: product_id requerido", domain.ErrValidation)
	}
	if uc.catalog == nil {
		return nil
	}
	p, err := uc.catalog.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("consultar producto: %w", err)
	}
	if p == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return nil
}

func (uc *LedgerUseCase) balance(ctx context.Context, productID string) (int, error) {
	movs, err := uc.movements.ListByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("consultar ledger: %w", err)
	}
	return inventory.Balance(movs), nil
}

func (uc *LedgerUseCase) newMovement(userID, typ string, in dto.MovementRequest) *entity.StockMovement {
	now := uc.now()
	date := now
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}
	actor := in.UserID
	if actor == "" {
		actor = userID
	}
	return &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      typ,
		Quantity:  in.Quantity,
		Date:      date,
		Note:      in.Note,
		UserID:    actor,
		Reference: in.Reference,
		CreatedAt: now,
	}
}

func movementSort(page dto.PageRequest) repository.Sort {
	s := repository.Sort{Desc: page.SortOrder == dto.SortDesc}
	switch page.SortBy {
	case repository.MovementSortDate, repository.MovementSortQuantity, repository.MovementSortType:
		s.Field = page.SortBy
	default:
		// orden por defecto: fecha descendente
		s.Desc = true
	}
	return s
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Date:      m.Date,
		Note:      m.Note,
		UserID:    m.UserID,
		Reference: m.Reference,
		CreatedAt: m.CreatedAt,
	}
}
