package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago aceptados.
const (
	PaymentCash         = "cash"
	PaymentCard         = "card"
	PaymentBankTransfer = "bank_transfer"
)

// TransactionStatusCompleted es el único estado con el que se registra una venta.
const TransactionStatusCompleted = "completed"

// InvoiceSequenceStart primer consecutivo emitido (INV-01001).
const InvoiceSequenceStart int64 = 1001

// Transaction es el registro inmutable de una venta (ledger append-only).
// ID coincide con el consecutivo del que se deriva InvoiceNumber.
type Transaction struct {
	ID            int64
	InvoiceNumber string
	Date          time.Time
	CustomerID    int64
	CustomerName  string // copia del nombre al momento de la venta
	Items         []TransactionItem
	Subtotal      decimal.Decimal
	TaxTotal      decimal.Decimal
	GrandTotal    decimal.Decimal
	PaymentMethod string
	AmountPaid    decimal.Decimal
	Change        decimal.Decimal
	Status        string
}

// TransactionItem es la foto de un producto al momento de la venta;
// ediciones posteriores del catálogo no la afectan.
type TransactionItem struct {
	ProductID int64
	Name      string
	SKU       string
	UnitPrice decimal.Decimal
	Quantity  int
	TaxRate   decimal.Decimal
	TaxAmount decimal.Decimal
	LineTotal decimal.Decimal // precio × cantidad, antes de impuesto
	Total     decimal.Decimal // LineTotal + TaxAmount, redondeado
}

// InvoiceNumber formatea el consecutivo como "INV-NNNNN".
func InvoiceNumber(seq int64) string {
	return fmt.Sprintf("INV-%05d", seq)
}

// IsValidPaymentMethod indica si method es uno de los medios de pago aceptados.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCash, PaymentCard, PaymentBankTransfer:
		return true
	}
	return false
}
