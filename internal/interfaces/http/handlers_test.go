package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/accupos-api/internal/application/analytics"
	"github.com/jhoicas/accupos-api/internal/application/checkout"
	"github.com/jhoicas/accupos-api/internal/application/dto"
	"github.com/jhoicas/accupos-api/internal/application/invoice"
	"github.com/jhoicas/accupos-api/internal/application/usecase"
	"github.com/jhoicas/accupos-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/accupos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/accupos-api/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/accupos-api/internal/interfaces/http"
	"github.com/jhoicas/accupos-api/pkg/logger"
)

// buildTestApp arma la API completa sobre el store en memoria con el catálogo demo.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	store.Load(seed.Products(), seed.Customers())

	products := store.Products()
	txRepo := store.Transactions()

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.NewNop()))
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:  usecase.NewProductUseCase(products),
		CustomerUC: usecase.NewCustomerUseCase(store.Customers()),
		Checkout:   checkout.NewUseCase(memory.NewTxRunner(store), txRepo, logger.NewNop()),
		DashboardUC: appanalytics.NewDashboardUseCase(products, txRepo, appanalytics.Config{
			LowStockThreshold: 20,
			RecentLimit:       5,
		}),
		InvoicePDF:     invoice.NewPDFUseCase(txRepo, infrapdf.NewMarotoPDFGenerator(), invoice.StoreInfo{Name: "AccuPOS Demo"}),
		RequestTimeout: 5 * time.Second,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeError(t *testing.T, raw []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e))
	return e
}

func TestProducts_ListYFiltros(t *testing.T) {
	app := buildTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/products", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var all []dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &all))
	assert.Len(t, all, 8)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/products?search=elc&category=Electronics", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var filtered []dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &filtered))
	assert.Len(t, filtered, 3)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/products?search=zzz", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestProducts_CRUD(t *testing.T) {
	app := buildTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Stapler", "sku": "OFF-010", "price": 9.99, "cost": 4, "stock": 12, "tax": 15,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var created dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, int64(9), created.ID)
	assert.Equal(t, "General", created.Category)

	// SKU repetido (sin distinguir mayúsculas)
	resp, raw = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Otro", "sku": "off-010", "price": 1, "cost": 1, "stock": 1, "tax": 0,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, dto.CodeDuplicate, decodeError(t, raw).Code)

	resp, raw = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"sku": "X-1"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, dto.CodeValidation, decodeError(t, raw).Code)

	resp, raw = doJSON(t, app, http.MethodPut, "/api/products/9", map[string]any{"stock": 30})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var updated dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, 30, updated.Stock)
	assert.Equal(t, "Stapler", updated.Name)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/products/999", map[string]any{"stock": 1})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, dto.CodeNotFound, decodeError(t, raw).Code)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCategories_IncluyeAll(t *testing.T) {
	app := buildTestApp(t)
	resp, raw := doJSON(t, app, http.MethodGet, "/api/categories", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["All","Electronics","Office Supplies"]`, string(raw))
}

func TestCustomers(t *testing.T) {
	app := buildTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "Nuevo Cliente", "phone": "555"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, app, http.MethodPost, "/api/customers", map[string]any{"phone": "555"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, dto.CodeValidation, decodeError(t, raw).Code)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/customers", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []dto.CustomerResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 5)
	assert.Equal(t, "Walk-in Customer", list[0].Name)
}

func TestTransactions_CheckoutEnEfectivo(t *testing.T) {
	app := buildTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/transactions", map[string]any{
		"items":         []map[string]any{{"productId": 1, "qty": 2}},
		"customerId":    2,
		"paymentMethod": "cash",
		"amountPaid":    50,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	var tx dto.TransactionResponse
	require.NoError(t, json.Unmarshal(raw, &tx))
	assert.Equal(t, "INV-01001", tx.InvoiceNumber)
	assert.Equal(t, "Ahmed Al-Rashid", tx.Customer.Name)
	assert.True(t, decimal.RequireFromString("25.98").Equal(tx.Subtotal))
	assert.True(t, decimal.RequireFromString("3.90").Equal(tx.TaxTotal))
	assert.True(t, decimal.RequireFromString("29.88").Equal(tx.GrandTotal))
	assert.True(t, decimal.RequireFromString("20.12").Equal(tx.Change))
	assert.Equal(t, "completed", tx.Status)

	// Los montos viajan como números JSON.
	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.IsType(t, float64(0), generic["grandTotal"])

	resp, raw = doJSON(t, app, http.MethodGet, "/api/products/1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, 148, p.Stock)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/transactions/1001", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"invoiceNo":"INV-01001"`)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/transactions", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []dto.TransactionResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list, 1)
}

func TestTransactions_Rechazos(t *testing.T) {
	app := buildTestApp(t)

	cases := []struct {
		name string
		body map[string]any
		code string
	}{
		{
			name: "carrito vacío",
			body: map[string]any{"items": []any{}, "paymentMethod": "card"},
			code: dto.CodeValidation,
		},
		{
			name: "producto inexistente",
			body: map[string]any{"items": []map[string]any{{"productId": 999, "qty": 1}}, "paymentMethod": "card"},
			code: dto.CodeProductNotFound,
		},
		{
			name: "stock insuficiente",
			body: map[string]any{"items": []map[string]any{{"productId": 3, "qty": 36}}, "paymentMethod": "card"},
			code: dto.CodeInsufficientStock,
		},
		{
			name: "efectivo insuficiente",
			body: map[string]any{"items": []map[string]any{{"productId": 1, "qty": 2}}, "paymentMethod": "cash", "amountPaid": 29.87},
			code: dto.CodeInsufficientPayment,
		},
		{
			name: "medio de pago desconocido",
			body: map[string]any{"items": []map[string]any{{"productId": 1, "qty": 1}}, "paymentMethod": "crypto"},
			code: dto.CodeValidation,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := doJSON(t, app, http.MethodPost, "/api/transactions", tc.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			e := decodeError(t, raw)
			assert.Equal(t, tc.code, e.Code)
			assert.NotEmpty(t, e.Error)
		})
	}

	// Ningún rechazo deja rastro en el ledger.
	resp, raw := doJSON(t, app, http.MethodGet, "/api/transactions", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))

	resp, _ = doJSON(t, app, http.MethodGet, "/api/transactions/1001", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTransactions_InvoicePDF(t *testing.T) {
	app := buildTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/transactions", map[string]any{
		"items":         []map[string]any{{"productId": 4, "qty": 1}},
		"paymentMethod": "card",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, app, http.MethodGet, "/api/transactions/1001/invoice.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "INV-01001.pdf")
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, _ = doJSON(t, app, http.MethodGet, "/api/transactions/42/invoice.pdf", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDashboard(t *testing.T) {
	app := buildTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/transactions", map[string]any{
		"items":         []map[string]any{{"productId": 3, "qty": 20}},
		"paymentMethod": "card",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, app, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var d dto.DashboardDTO
	require.NoError(t, json.Unmarshal(raw, &d))
	assert.Equal(t, 1, d.Today.Transactions)
	assert.True(t, decimal.RequireFromString("1035").Equal(d.Today.Revenue))
	assert.Equal(t, 1, d.AllTime.Transactions)
	require.Len(t, d.TopSelling, 1)
	assert.Equal(t, "Desk Calculator", d.TopSelling[0].Name)
	require.Len(t, d.LowStock, 1)
	assert.Equal(t, "ELC-001", d.LowStock[0].SKU)
	assert.Len(t, d.RecentTransactions, 1)
	assert.Len(t, d.SalesByDay, 1)
}
