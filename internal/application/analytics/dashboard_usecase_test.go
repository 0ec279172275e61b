package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/accupos-api/internal/application/analytics"
	"github.com/jhoicas/accupos-api/internal/domain/entity"
	"github.com/jhoicas/accupos-api/internal/infrastructure/memory"
	"github.com/jhoicas/accupos-api/internal/infrastructure/seed"
)

var bogota = time.FixedZone("COT", -5*3600)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// sale arma una venta mínima; el dashboard solo mira fecha, totales, medio de pago y líneas.
func sale(id int64, at time.Time, method string, grand, tax string, items ...entity.TransactionItem) *entity.Transaction {
	return &entity.Transaction{
		ID:            id,
		InvoiceNumber: entity.InvoiceNumber(id),
		Date:          at.UTC(),
		CustomerID:    entity.WalkInCustomerID,
		CustomerName:  entity.WalkInCustomerName,
		Items:         items,
		GrandTotal:    d(grand),
		TaxTotal:      d(tax),
		PaymentMethod: method,
		Status:        entity.TransactionStatusCompleted,
	}
}

func item(productID int64, name, price string, qty int) entity.TransactionItem {
	return entity.TransactionItem{ProductID: productID, Name: name, UnitPrice: d(price), Quantity: qty}
}

func newDashboard(t *testing.T, now time.Time, sales ...*entity.Transaction) *analytics.DashboardUseCase {
	t.Helper()
	store := memory.NewStore()
	store.Load(seed.Products(), seed.Customers())
	ledger := store.Transactions()
	for _, s := range sales {
		require.NoError(t, ledger.Create(context.Background(), s))
	}
	uc := analytics.NewDashboardUseCase(store.Products(), ledger, analytics.Config{
		Location:          bogota,
		LowStockThreshold: 40,
		RecentLimit:       5,
	})
	return uc.WithClock(func() time.Time { return now })
}

func TestGetDashboard_VentanaDeHoyEnZonaDeReferencia(t *testing.T) {
	// 02:00 UTC del 10/03 = 21:00 del 09/03 en Bogotá.
	now := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)

	uc := newDashboard(t, now,
		// 08/03 23:00 local → ayer
		sale(1001, time.Date(2026, 3, 9, 4, 0, 0, 0, time.UTC), "cash", "10.00", "1.00", item(1, "Ballpoint Pen (Box)", "12.99", 1)),
		// 09/03 00:30 local → hoy
		sale(1002, time.Date(2026, 3, 9, 5, 30, 0, 0, time.UTC), "card", "29.88", "3.90", item(1, "Ballpoint Pen (Box)", "12.99", 2)),
		// 09/03 20:00 local → hoy (ya es 10/03 en UTC)
		sale(1003, time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC), "cash", "63.25", "8.25", item(7, "Wireless Mouse", "55.00", 1)),
	)

	out, err := uc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, out.Today.Transactions)
	assert.True(t, out.Today.Revenue.Equal(d("93.13")), "revenue %s", out.Today.Revenue)
	assert.True(t, out.Today.Tax.Equal(d("12.15")), "tax %s", out.Today.Tax)
	// (12.99-7.50)*2 + (55-28)*1 = 10.98 + 27 = 37.98
	assert.True(t, out.Today.Profit.Equal(d("37.98")), "profit %s", out.Today.Profit)

	assert.Equal(t, 3, out.AllTime.Transactions)
	assert.True(t, out.AllTime.Revenue.Equal(d("103.13")))

	require.Len(t, out.SalesByDay, 2)
	assert.Equal(t, "2026-03-09", out.SalesByDay[0].Day)
	assert.Equal(t, 2, out.SalesByDay[0].Transactions)
	assert.Equal(t, "2026-03-08", out.SalesByDay[1].Day)
	assert.True(t, out.SalesByDay[1].Revenue.Equal(d("10")))

	require.Len(t, out.RecentTransactions, 3)
	assert.Equal(t, "INV-01003", out.RecentTransactions[0].InvoiceNumber)
}

func TestGetDashboard_TopSellingYMediosDePago(t *testing.T) {
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, bogota)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, bogota)

	uc := newDashboard(t, now,
		sale(1001, at, "card", "20.00", "0", item(1, "A", "1", 3), item(2, "B", "1", 3)),
		sale(1002, at, "cash", "50.00", "0", item(3, "C", "1", 5), item(4, "D", "1", 1)),
		sale(1003, at, "bank_transfer", "50.00", "0", item(5, "E", "1", 2), item(6, "F", "1", 2)),
		sale(1004, at, "card", "5.00", "0", item(7, "G", "1", 4)),
	)

	out, err := uc.GetDashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, out.TopSelling, 5)
	names := make([]string, 0, 5)
	for _, ts := range out.TopSelling {
		names = append(names, ts.Name)
	}
	// C(5), G(4), A(3) y B(3) en orden de aparición, E(2) antes que F(2).
	assert.Equal(t, []string{"C", "G", "A", "B", "E"}, names)

	require.Len(t, out.PaymentBreakdown, 3)
	// cash 50 y bank_transfer 50 empatan: se conserva el orden de aparición.
	assert.Equal(t, "cash", out.PaymentBreakdown[0].Method)
	assert.Equal(t, "bank_transfer", out.PaymentBreakdown[1].Method)
	assert.Equal(t, "card", out.PaymentBreakdown[2].Method)
	assert.Equal(t, 2, out.PaymentBreakdown[2].Count)
	assert.True(t, out.PaymentBreakdown[2].Total.Equal(d("25")))
}

func TestGetDashboard_SinVentasYStockBajo(t *testing.T) {
	uc := newDashboard(t, time.Now())

	out, err := uc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, out.Today.Transactions)
	assert.True(t, out.Today.Revenue.IsZero())
	assert.NotNil(t, out.TopSelling)
	assert.NotNil(t, out.SalesByDay)
	assert.Empty(t, out.RecentTransactions)

	// Umbral 40: Desk Calculator (35) queda por debajo; Wireless Mouse (40) no.
	require.Len(t, out.LowStock, 1)
	assert.Equal(t, "ELC-001", out.LowStock[0].SKU)
}

func TestGetDashboard_ProductoEliminadoCuentaCostoCero(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, bogota)
	uc := newDashboard(t, now,
		sale(1001, now.Add(-time.Hour), "card", "11.50", "1.50", item(999, "Descontinuado", "10.00", 1)),
	)
	out, err := uc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Today.Profit.Equal(d("10")))
}

func TestGetDashboard_VentanaDeSieteDias(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, bogota)
	uc := newDashboard(t, now,
		sale(1001, time.Date(2026, 3, 3, 23, 0, 0, 0, bogota), "cash", "1", "0"), // fuera
		sale(1002, time.Date(2026, 3, 4, 0, 0, 0, 0, bogota), "cash", "2", "0"),  // dentro
	)
	out, err := uc.GetDashboard(context.Background())
	require.NoError(t, err)
	require.Len(t, out.SalesByDay, 1)
	assert.Equal(t, "2026-03-04", out.SalesByDay[0].Day)
}
