package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo del punto de venta.
// Stock nunca es negativo; SKU es único en todo el catálogo.
type Product struct {
	ID        int64
	Name      string
	SKU       string
	Price     decimal.Decimal // precio de venta (sin impuesto)
	Cost      decimal.Decimal // costo actual; el dashboard lo usa para la utilidad
	Stock     int
	Category  string
	TaxRate   decimal.Decimal // porcentaje, ej: 15 para 15%
	CreatedAt time.Time
	UpdatedAt time.Time
}
