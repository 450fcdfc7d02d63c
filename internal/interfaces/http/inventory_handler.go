package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
)

// InventoryHandler maneja el ledger de inventario (protegido).
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterEntry registra una entrada (IN).
// @Summary      Registrar entrada de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.MovementRequest  true  "Entrada"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterEntry(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterExit registra una salida (OUT) si hay stock.
// @Summary      Registrar salida de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.MovementRequest  true  "Salida"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/exits [post]
func (h *InventoryHandler) RegisterExit(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterExit(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetStock devuelve el stock actual derivado del ledger.
// @Summary      Stock actual
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path      string  true  "ID del producto"
// @Success      200        {object}  dto.StockResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{productId} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	out, err := h.uc.GetCurrentStock(c.Context(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements lista el ledger.
// @Summary      Listar movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        date_from   query     string  false  "YYYY-MM-DD"
// @Param        date_to     query     string  false  "YYYY-MM-DD"
// @Param        type        query     string  false  "IN|OUT"
// @Param        page        query     int     false  "Página"
// @Param        limit       query     int     false  "Límite"
// @Param        sort_by     query     string  false  "date|quantity|type"
// @Param        sort_order  query     string  false  "asc|desc"
// @Success      200         {object}  dto.Paginated[dto.MovementResponse]
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	var q dto.MovementQuery
	if err := c.QueryParser(&page); err != nil {
		return badQuery(c)
	}
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.ListMovements(c.Context(), q, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListProductMovements lista los movimientos de un producto.
// @Summary      Movimientos por producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path      string  true   "ID del producto"
// @Param        date_from  query     string  false  "YYYY-MM-DD"
// @Param        date_to    query     string  false  "YYYY-MM-DD"
// @Param        type       query     string  false  "IN|OUT"
// @Success      200        {object}  dto.Paginated[dto.MovementResponse]
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{productId}/movements [get]
func (h *InventoryHandler) ListProductMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	var q dto.MovementQuery
	if err := c.QueryParser(&page); err != nil {
		return badQuery(c)
	}
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.ListMovementsByProduct(c.Context(), c.Params("productId"), q, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
