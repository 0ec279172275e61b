// Package pricing implementa el motor de precios del punto de venta (servicio de dominio puro).
//
//	LineTotal  = Precio × Cantidad                       (sin redondear)
//	TaxAmount  = Round2(LineTotal × Tasa / 100)          (redondeado por línea)
//	LineGrand  = Round2(LineTotal + TaxAmount)
//	Subtotal   = Round2(Σ LineTotal)                     (suma exacta, un solo redondeo)
//	TaxTotal   = Round2(Σ TaxAmount)
//	GrandTotal = Round2(Subtotal + TaxTotal)
//
// La asimetría entre Subtotal y TaxTotal es intencional: cambia totales al centavo.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 redondea a 2 decimales, mitad hacia arriba.
// decimal.Round redondea la mitad alejándose de cero; para montos >= 0 es lo mismo.
func Round2(x decimal.Decimal) decimal.Decimal {
	return x.Round(2)
}

// LineAmounts montos calculados para una línea.
type LineAmounts struct {
	LineTotal decimal.Decimal
	TaxAmount decimal.Decimal
	LineGrand decimal.Decimal
}

// Line calcula los montos de una línea a partir de precio unitario, tasa (%) y cantidad.
func Line(unitPrice, taxRatePercent decimal.Decimal, quantity int) LineAmounts {
	lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	tax := Round2(lineTotal.Mul(taxRatePercent).Div(hundred))
	return LineAmounts{
		LineTotal: lineTotal,
		TaxAmount: tax,
		LineGrand: Round2(lineTotal.Add(tax)),
	}
}

// CartTotals totales de un carrito.
type CartTotals struct {
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
}

// Totals agrega las líneas ya calculadas con Line.
func Totals(lines []LineAmounts) CartTotals {
	subtotal, taxTotal := decimal.Zero, decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal)
		taxTotal = taxTotal.Add(l.TaxAmount)
	}
	subtotal = Round2(subtotal)
	taxTotal = Round2(taxTotal)
	return CartTotals{
		Subtotal:   subtotal,
		TaxTotal:   taxTotal,
		GrandTotal: Round2(subtotal.Add(taxTotal)),
	}
}

// Change calcula el vuelto de un pago en efectivo.
func Change(amountPaid, grandTotal decimal.Decimal) decimal.Decimal {
	return Round2(amountPaid.Sub(grandTotal))
}
