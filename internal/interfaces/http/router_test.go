package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/application/billing"
	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Gestion-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Gestion-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testAPI struct {
	app    *fiber.App
	ledger *inventory.LedgerUseCase
}

// newTestAPI arma la API completa sobre repositorios en memoria.
// Catálogo: prod-crema con 5 unidades.
func newTestAPI(t *testing.T, jwtSecret string) *testAPI {
	t.Helper()
	ctx := context.Background()
	limits := dto.PageLimits{Default: 10, Min: 1, Max: 100}

	products := memory.NewProductRepository()
	invoices := memory.NewInvoiceRepository()
	ledger := inventory.NewLedgerUseCase(memory.NewStockMovementRepository(), products, limits, nil)
	catalog := usecase.NewProductUseCase(products, ledger, limits)

	_, err := catalog.Seed(ctx, []usecase.SeedItem{{ID: "prod-crema", SKU: "CRE-01", Name: "Crema hidratante", Price: 5000}})
	require.NoError(t, err)
	_, err = ledger.RegisterEntry(ctx, "seed", dto.MovementRequest{ProductID: "prod-crema", Quantity: 5})
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		InvoiceUC:  billing.NewInvoiceUseCase(invoices, ledger, billing.Config{RequireCashCoverage: true}, limits, nil),
		InvoicePDF: billing.NewPDFUseCase(invoices, products, infrapdf.NewMarotoPDFGenerator(), "Gestión"),
		LedgerUC:   ledger,
		ProductUC:  catalog,
		JWTSecret:  jwtSecret,
		JWTIssuer:  testIssuer,
	})
	return &testAPI{app: app, ledger: ledger}
}

// call lanza la petición con X-User-ID y devuelve status y cuerpo.
func (a *testAPI) call(t *testing.T, method, target string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(apphttp.HeaderUserID, "caja-1")
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (a *testAPI) createInvoice(t *testing.T, qty int) dto.InvoiceResponse {
	t.Helper()
	status, body := a.call(t, http.MethodPost, "/api/invoices", fiber.Map{
		"client_id": "cli-1",
		"services":  []fiber.Map{{"activity_id": "act-1", "name": "Manicure", "price": "20000", "employee_id": "emp-1"}},
		"products":  []fiber.Map{{"product_id": "prod-crema", "name": "Crema hidratante", "unit_price": "5000", "quantity": qty}},
		"payment":   fiber.Map{"method": "CASH", "amount_received": "100000"},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var inv dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(body, &inv))
	return inv
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturación
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CrearYFinalizarFactura_DescuentaStock(t *testing.T) {
	api := newTestAPI(t, "")
	inv := api.createInvoice(t, 2)
	assert.Equal(t, "PENDING", inv.Status)
	assert.Equal(t, "30000", inv.Totals.GrandTotal.String())
	assert.Equal(t, "70000", inv.Payment.Change.String())
	assert.Equal(t, "caja-1", inv.CreatedBy)

	status, body := api.call(t, http.MethodPost, "/api/invoices/"+inv.ID+"/finalize", nil)
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = api.call(t, http.MethodGet, "/api/inventory/stock/prod-crema", nil)
	require.Equal(t, http.StatusOK, status)
	var stock dto.StockResponse
	require.NoError(t, json.Unmarshal(body, &stock))
	assert.Equal(t, 3, stock.Stock)

	// una factura finalizada no vuelve a cambiar
	status, body = api.call(t, http.MethodPost, "/api/invoices/"+inv.ID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, body))
}

func TestRouter_FinalizarSinStock_Retorna409YQuedaPendiente(t *testing.T) {
	api := newTestAPI(t, "")
	inv := api.createInvoice(t, 9)

	status, body := api.call(t, http.MethodPost, "/api/invoices/"+inv.ID+"/finalize", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, body))

	status, body = api.call(t, http.MethodGet, "/api/invoices/"+inv.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var got dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "PENDING", got.Status)
}

func TestRouter_ActualizarConStatusCancelado(t *testing.T) {
	api := newTestAPI(t, "")
	inv := api.createInvoice(t, 1)

	status, body := api.call(t, http.MethodPatch, "/api/invoices/"+inv.ID, fiber.Map{
		"comment": "cliente no regresó",
		"status":  "CANCELED",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	var got dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "CANCELED", got.Status)
	assert.Equal(t, "cliente no regresó", got.Comment)
}

func TestRouter_FacturaInexistente_Retorna404(t *testing.T) {
	api := newTestAPI(t, "")
	status, body := api.call(t, http.MethodGet, "/api/invoices/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

func TestRouter_CuerpoInvalido_Retorna400(t *testing.T) {
	api := newTestAPI(t, "")
	req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewBufferString("{"))
	req.Header.Set(apphttp.HeaderUserID, "caja-1")
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_BuscarNoCoincideConID(t *testing.T) {
	api := newTestAPI(t, "")
	inv := api.createInvoice(t, 1)

	status, body := api.call(t, http.MethodGet, "/api/invoices/search?q=manicure", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var page dto.Paginated[dto.InvoiceResponse]
	require.NoError(t, json.Unmarshal(body, &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, inv.ID, page.Data[0].ID)
	assert.Equal(t, 1, page.Meta.Total)
}

func TestRouter_FacturasPorCliente_RequiereRango(t *testing.T) {
	api := newTestAPI(t, "")
	api.createInvoice(t, 1)

	status, body := api.call(t, http.MethodGet, "/api/clients/cli-1/invoices", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	day := time.Now().UTC().Format("2006-01-02")
	status, body = api.call(t, http.MethodGet, "/api/clients/cli-1/invoices?date_from="+day+"&date_to="+day, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var page dto.Paginated[dto.InvoiceResponse]
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Len(t, page.Data, 1)
}

func TestRouter_PDF(t *testing.T) {
	api := newTestAPI(t, "")
	inv := api.createInvoice(t, 1)

	status, body := api.call(t, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil)
	assert.Equal(t, http.StatusConflict, status, "un borrador no tiene comprobante")
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, body))

	status, _ = api.call(t, http.MethodPost, "/api/invoices/"+inv.ID+"/finalize", nil)
	require.Equal(t, http.StatusOK, status)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil)
	req.Header.Set(apphttp.HeaderUserID, "caja-1")
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "factura_"+inv.ID+".pdf")
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_SalidaSinStock_Retorna409(t *testing.T) {
	api := newTestAPI(t, "")

	status, body := api.call(t, http.MethodPost, "/api/inventory/exits", fiber.Map{"product_id": "prod-crema", "quantity": 6})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, body))

	status, body = api.call(t, http.MethodPost, "/api/inventory/exits", fiber.Map{"product_id": "prod-crema", "quantity": 5})
	require.Equal(t, http.StatusCreated, status, string(body))
	var mov dto.MovementResponse
	require.NoError(t, json.Unmarshal(body, &mov))
	assert.Equal(t, "OUT", mov.Type)
	assert.Equal(t, "caja-1", mov.UserID)
}

func TestRouter_EntradaCantidadInvalida_Retorna400(t *testing.T) {
	api := newTestAPI(t, "")
	status, body := api.call(t, http.MethodPost, "/api/inventory/entries", fiber.Map{"product_id": "prod-crema", "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}

func TestRouter_MovimientosPorProducto(t *testing.T) {
	api := newTestAPI(t, "")
	status, _ := api.call(t, http.MethodPost, "/api/inventory/entries", fiber.Map{"product_id": "prod-crema", "quantity": 2})
	require.Equal(t, http.StatusCreated, status)

	status, body := api.call(t, http.MethodGet, "/api/inventory/products/prod-crema/movements?type=IN&sort_by=quantity&sort_order=asc", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var page dto.Paginated[dto.MovementResponse]
	require.NoError(t, json.Unmarshal(body, &page))
	require.Len(t, page.Data, 2)
	assert.Equal(t, 2, page.Data[0].Quantity)
	assert.Equal(t, 5, page.Data[1].Quantity)

	status, body = api.call(t, http.MethodGet, "/api/inventory/products/no-existe/movements", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo y roles
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ProductoConStockDerivado(t *testing.T) {
	api := newTestAPI(t, "")
	status, body := api.call(t, http.MethodGet, "/api/products/prod-crema", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, 5, p.Stock)

	status, body = api.call(t, http.MethodPost, "/api/products", fiber.Map{"sku": "cre-01", "name": "Otra crema"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", errorCode(t, body))
}

func TestRouter_ConJWT_EntradasSoloParaBodega(t *testing.T) {
	api := newTestAPI(t, testJWTSecret)
	payload := []byte(`{"product_id":"prod-crema","quantity":1}`)

	post := func(role string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/inventory/entries", bytes.NewReader(payload))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set("Authorization", tokenForRole(t, role))
		resp, err := api.app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusForbidden, post("vendedor"))
	assert.Equal(t, http.StatusCreated, post("bodeguero"))

	stock, err := api.ledger.GetCurrentStock(context.Background(), "prod-crema")
	require.NoError(t, err)
	assert.Equal(t, 6, stock.Stock)
}
