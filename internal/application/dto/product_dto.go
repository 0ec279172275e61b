package dto

import (
	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Stock    int             `json:"stock"`
	Category string          `json:"category"`
	TaxRate  decimal.Decimal `json:"tax"`
}

// UpdateProductRequest entrada para actualizar un producto (merge parcial: solo los campos presentes).
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	SKU      *string          `json:"sku"`
	Price    *decimal.Decimal `json:"price"`
	Cost     *decimal.Decimal `json:"cost"`
	Stock    *int             `json:"stock"`
	Category *string          `json:"category"`
	TaxRate  *decimal.Decimal `json:"tax"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Stock    int             `json:"stock"`
	Category string          `json:"category"`
	TaxRate  decimal.Decimal `json:"tax"`
}

// ProductQuery filtros de GET /api/products.
type ProductQuery struct {
	Search   string `query:"search"`
	Category string `query:"category"`
}
