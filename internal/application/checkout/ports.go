package checkout

import (
	"context"
	"time"

	"github.com/jhoicas/accupos-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una única transacción de almacenamiento.
// Si fn devuelve error (o el contexto se cancela) se hace rollback de todo:
// stock, consecutivo y ledger.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		customerRepo repository.CustomerRepository,
		txRepo repository.TransactionRepository,
	) error) error
}

// Metrics registra el resultado de cada checkout. Puede ser nil.
type Metrics interface {
	ObserveCheckout(paymentMethod, outcome string, elapsed time.Duration)
}

// Resultados reportados a Metrics.
const (
	OutcomeCompleted           = "completed"
	OutcomeInvalid             = "invalid"
	OutcomeProductNotFound     = "product_not_found"
	OutcomeInsufficientStock   = "insufficient_stock"
	OutcomeInsufficientPayment = "insufficient_payment"
	OutcomeError               = "error"
)
