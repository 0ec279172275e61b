package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/accupos-api/internal/domain/entity"
)

// LedgerTotals acumulados históricos del ledger.
type LedgerTotals struct {
	Count   int
	Revenue decimal.Decimal
}

// TransactionRepository define el puerto del ledger de ventas.
// Las ventas son inmutables: no hay Update ni Delete.
type TransactionRepository interface {
	// NextSequence reserva el siguiente consecutivo. Debe invocarse dentro de la misma
	// transacción que Create: un rollback libera el número sin dejar huecos.
	NextSequence(ctx context.Context) (int64, error)
	Create(ctx context.Context, tx *entity.Transaction) error

	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Transaction, error)
	// List devuelve todas las ventas, la más reciente primero.
	List(ctx context.Context) ([]*entity.Transaction, error)
	// ListRecent devuelve las últimas limit ventas, la más reciente primero.
	ListRecent(ctx context.Context, limit int) ([]*entity.Transaction, error)
	// ListBetween devuelve las ventas con from <= fecha < to en orden de emisión (ID ascendente).
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error)
	Totals(ctx context.Context) (LedgerTotals, error)
}
