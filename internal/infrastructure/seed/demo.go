// Package seed contiene el catálogo y los clientes de demostración.
// Lo usan el store en memoria al arrancar y el comando `posctl seed` contra PostgreSQL.
package seed

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/accupos-api/internal/domain/entity"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Products devuelve una copia nueva del catálogo demo (IDs 1..8).
func Products() []*entity.Product {
	vat := decimal.NewFromInt(15)
	return []*entity.Product{
		{ID: 1, Name: "Ballpoint Pen (Box)", SKU: "OFF-001", Price: money("12.99"), Cost: money("7.50"), Stock: 150, Category: "Office Supplies", TaxRate: vat},
		{ID: 2, Name: "A4 Paper Ream", SKU: "OFF-002", Price: money("24.99"), Cost: money("14.00"), Stock: 80, Category: "Office Supplies", TaxRate: vat},
		{ID: 3, Name: "Desk Calculator", SKU: "ELC-001", Price: money("45.00"), Cost: money("22.00"), Stock: 35, Category: "Electronics", TaxRate: vat},
		{ID: 4, Name: "USB Flash Drive 64GB", SKU: "ELC-002", Price: money("29.99"), Cost: money("12.00"), Stock: 60, Category: "Electronics", TaxRate: vat},
		{ID: 5, Name: "Receipt Printer Roll", SKU: "OFF-003", Price: money("8.50"), Cost: money("3.50"), Stock: 200, Category: "Office Supplies", TaxRate: vat},
		{ID: 6, Name: "Accounting Ledger Book", SKU: "OFF-004", Price: money("35.00"), Cost: money("18.00"), Stock: 45, Category: "Office Supplies", TaxRate: vat},
		{ID: 7, Name: "Wireless Mouse", SKU: "ELC-003", Price: money("55.00"), Cost: money("28.00"), Stock: 40, Category: "Electronics", TaxRate: vat},
		{ID: 8, Name: "Folder Organizer Set", SKU: "OFF-005", Price: money("18.75"), Cost: money("9.00"), Stock: 90, Category: "Office Supplies", TaxRate: vat},
	}
}

// Customers devuelve los clientes demo. El ID 1 es siempre el cliente de mostrador.
func Customers() []*entity.Customer {
	return []*entity.Customer{
		{ID: entity.WalkInCustomerID, Name: entity.WalkInCustomerName},
		{ID: 2, Name: "Ahmed Al-Rashid", Phone: "+966-50-1234567", Email: "ahmed@company.sa"},
		{ID: 3, Name: "Fatima Holdings LLC", Phone: "+966-55-9876543", Email: "accounts@fatima.sa"},
		{ID: 4, Name: "Gulf Trading Co.", Phone: "+966-54-1112233", Email: "procurement@gulftrade.sa"},
	}
}
