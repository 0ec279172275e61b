package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest body para POST /api/transactions.
// AmountPaid solo es obligatorio para pagos en efectivo.
type CheckoutRequest struct {
	Items         []CheckoutItemRequest `json:"items"`
	CustomerID    *int64                `json:"customerId,omitempty"`
	PaymentMethod string                `json:"paymentMethod"`
	AmountPaid    *decimal.Decimal      `json:"amountPaid,omitempty"`
}

// CheckoutItemRequest línea del carrito.
type CheckoutItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"qty"`
}

// TransactionResponse venta registrada (inmutable).
type TransactionResponse struct {
	ID            int64                     `json:"id"`
	InvoiceNumber string                    `json:"invoiceNo"`
	Date          time.Time                 `json:"date"`
	Customer      CustomerRef               `json:"customer"`
	Items         []TransactionItemResponse `json:"items"`
	Subtotal      decimal.Decimal           `json:"subtotal"`
	TaxTotal      decimal.Decimal           `json:"tax"`
	GrandTotal    decimal.Decimal           `json:"grandTotal"`
	PaymentMethod string                    `json:"paymentMethod"`
	AmountPaid    decimal.Decimal           `json:"amountPaid"`
	Change        decimal.Decimal           `json:"change"`
	Status        string                    `json:"status"`
}

// TransactionItemResponse snapshot de la línea al momento de la venta.
type TransactionItemResponse struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"qty"`
	TaxRate   decimal.Decimal `json:"taxRate"`
	TaxAmount decimal.Decimal `json:"taxAmount"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Total     decimal.Decimal `json:"total"`
}
