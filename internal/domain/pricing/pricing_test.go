package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/accupos-api/internal/domain/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Vector de referencia: bolígrafos 12.99 × 2 con IVA 15%.
//
//	LineTotal = 25.98
//	TaxAmount = round2(25.98 × 0.15) = round2(3.897) = 3.90
//	LineGrand = 29.88
// ──────────────────────────────────────────────────────────────────────────────
func TestLine_VectorReferencia(t *testing.T) {
	l := pricing.Line(d("12.99"), d("15"), 2)

	assert.True(t, l.LineTotal.Equal(d("25.98")), "lineTotal: %s", l.LineTotal)
	assert.True(t, l.TaxAmount.Equal(d("3.90")), "taxAmount: %s", l.TaxAmount)
	assert.True(t, l.LineGrand.Equal(d("29.88")), "lineGrand: %s", l.LineGrand)

	totals := pricing.Totals([]pricing.LineAmounts{l})
	assert.True(t, totals.Subtotal.Equal(d("25.98")))
	assert.True(t, totals.TaxTotal.Equal(d("3.90")))
	assert.True(t, totals.GrandTotal.Equal(d("29.88")))
}

func TestRound2_MitadHaciaArriba(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"2.675", "2.68"},
		{"0.125", "0.13"},
		{"10", "10"},
	}
	for _, tc := range cases {
		got := pricing.Round2(d(tc.in))
		assert.True(t, got.Equal(d(tc.want)), "round2(%s) = %s, esperado %s", tc.in, got, tc.want)
	}
}

// TestTotals_ImpuestoRedondeadoPorLinea verifica que el impuesto se redondea por
// línea antes de sumar. Con tres líneas de 0.10 al 15% cada impuesto exacto es 0.015:
//   - redondeando por línea: 0.02 × 3 = 0.06
//   - redondeando al final:  round2(0.045) = 0.05
func TestTotals_ImpuestoRedondeadoPorLinea(t *testing.T) {
	lines := []pricing.LineAmounts{
		pricing.Line(d("0.10"), d("15"), 1),
		pricing.Line(d("0.10"), d("15"), 1),
		pricing.Line(d("0.10"), d("15"), 1),
	}
	totals := pricing.Totals(lines)

	assert.True(t, totals.Subtotal.Equal(d("0.30")))
	assert.True(t, totals.TaxTotal.Equal(d("0.06")), "taxTotal: %s", totals.TaxTotal)
	assert.True(t, totals.GrandTotal.Equal(d("0.36")), "grandTotal: %s", totals.GrandTotal)
}

// TestTotals_SubtotalSinRedondeoPorLinea: el subtotal se suma con precisión completa.
// 0.333 × 1 tres veces = 0.999 → 1.00; redondeando por línea serían 0.99.
func TestTotals_SubtotalSinRedondeoPorLinea(t *testing.T) {
	lines := []pricing.LineAmounts{
		pricing.Line(d("0.333"), decimal.Zero, 1),
		pricing.Line(d("0.333"), decimal.Zero, 1),
		pricing.Line(d("0.333"), decimal.Zero, 1),
	}
	totals := pricing.Totals(lines)
	assert.True(t, totals.Subtotal.Equal(d("1.00")), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.TaxTotal.IsZero())
}

// TestTotals_TasasMixtas reconcilia grandTotal con la fórmula
// round2(Σ lineTotal + Σ round2(lineTotal × tasa / 100)).
func TestTotals_TasasMixtas(t *testing.T) {
	lines := []pricing.LineAmounts{
		pricing.Line(d("24.99"), d("15"), 3), // 74.97 → iva 11.2455 → 11.25
		pricing.Line(d("8.50"), d("5"), 1),   // 8.50 → iva 0.425 → 0.43
		pricing.Line(d("45.00"), d("0"), 2),  // 90.00 → iva 0
	}
	totals := pricing.Totals(lines)

	assert.True(t, totals.Subtotal.Equal(d("173.47")), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.TaxTotal.Equal(d("11.68")), "taxTotal: %s", totals.TaxTotal)
	assert.True(t, totals.GrandTotal.Equal(d("185.15")), "grandTotal: %s", totals.GrandTotal)
}

func TestTotals_CarritoVacio(t *testing.T) {
	totals := pricing.Totals(nil)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxTotal.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestChange(t *testing.T) {
	assert.True(t, pricing.Change(d("50"), d("29.88")).Equal(d("20.12")))
	assert.True(t, pricing.Change(d("29.88"), d("29.88")).IsZero())
}
