package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/billing"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler. pdf puede ser nil (ruta deshabilitada).
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// Create crea una factura en estado PENDING.
// @Summary      Crear factura
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateInvoiceRequest  true  "Borrador de factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	invoice, err := h.uc.CreateInvoice(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// Update modifica una factura PENDING; status aplica la transición.
// @Summary      Actualizar factura
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID de la factura"
// @Param        body  body      dto.UpdateInvoiceRequest  true  "Cambios parciales"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [patch]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	invoice, err := h.uc.UpdateInvoice(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// Finalize descuenta el inventario y marca la factura FINALIZED.
// @Summary      Finalizar factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/finalize [post]
func (h *InvoiceHandler) Finalize(c *fiber.Ctx) error {
	invoice, err := h.uc.FinalizeInvoice(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// Cancel marca la factura CANCELED.
// @Summary      Cancelar factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	invoice, err := h.uc.CancelInvoice(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// List lista las facturas paginadas.
// @Summary      Listar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        page        query     int     false  "Página"  default(1)
// @Param        limit       query     int     false  "Límite"  default(10)
// @Param        sort_by     query     string  false  "createdAt|updatedAt|grandTotal|status|clientId"
// @Param        sort_order  query     string  false  "asc|desc"
// @Success      200         {object}  dto.Paginated[dto.InvoiceResponse]
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.ListInvoices(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search busca facturas por término libre.
// @Summary      Buscar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        q      query     string  false  "Término"
// @Param        page   query     int     false  "Página"
// @Param        limit  query     int     false  "Límite"
// @Success      200    {object}  dto.Paginated[dto.InvoiceResponse]
// @Router       /api/invoices/search [get]
func (h *InvoiceHandler) Search(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.SearchInvoices(c.Context(), c.Query("q"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene el detalle completo de una factura.
// @Summary      Obtener factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.uc.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// DownloadPDF descarga el comprobante de una factura FINALIZED.
// @Summary      Comprobante PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path      string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// ListByClient facturas del cliente en un rango de fechas obligatorio.
// @Summary      Facturas por cliente
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        clientId   path      string  true   "ID del cliente"
// @Param        date_from  query     string  true   "YYYY-MM-DD"
// @Param        date_to    query     string  true   "YYYY-MM-DD"
// @Param        status     query     string  false  "PENDING|FINALIZED|CANCELED"
// @Success      200        {object}  dto.Paginated[dto.InvoiceResponse]
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/clients/{clientId}/invoices [get]
func (h *InvoiceHandler) ListByClient(c *fiber.Ctx) error {
	var page dto.PageRequest
	var q dto.InvoiceQuery
	if err := c.QueryParser(&page); err != nil {
		return badQuery(c)
	}
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.ListInvoicesByClient(c.Context(), c.Params("clientId"), q, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListEmployeeServices historial de servicios del empleado en un rango de fechas obligatorio.
// @Summary      Historial de servicios del empleado
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        employeeId   path      string  true   "ID del empleado"
// @Param        date_from    query     string  true   "YYYY-MM-DD"
// @Param        date_to      query     string  true   "YYYY-MM-DD"
// @Param        activity_id  query     string  false  "ID de la actividad"
// @Success      200          {object}  dto.Paginated[dto.EmployeeServiceResponse]
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/employees/{employeeId}/services [get]
func (h *InvoiceHandler) ListEmployeeServices(c *fiber.Ctx) error {
	var page dto.PageRequest
	var q dto.InvoiceQuery
	if err := c.QueryParser(&page); err != nil {
		return badQuery(c)
	}
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.ListEmployeeServiceHistory(c.Context(), c.Params("employeeId"), q, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
