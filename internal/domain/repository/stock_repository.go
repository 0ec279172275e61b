package repository

import (
	"context"

	"github.com/jhoicas/accupos-api/internal/domain/entity"
)

// StockRepository define el puerto para bloquear y descontar stock.
// Solo tiene sentido dentro de una transacción (ver checkout.TxRunner).
type StockRepository interface {
	// GetForUpdate bloquea las filas indicadas en orden ascendente de ID hasta el
	// commit o rollback, y devuelve los productos encontrados (los IDs inexistentes se omiten).
	GetForUpdate(ctx context.Context, ids []int64) ([]*entity.Product, error)
	// DecrementStock descuenta qty; devuelve domain.ErrInsufficientStock si el stock quedaría negativo.
	DecrementStock(ctx context.Context, productID int64, qty int) error
}
