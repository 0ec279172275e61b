// Package checkout implementa el registro atómico de ventas del punto de venta:
// validación del carrito, bloqueo y descuento de stock, cálculo de totales,
// consecutivo de factura y escritura en el ledger, todo en una sola transacción.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/accupos-api/internal/application/dto"
	"github.com/jhoicas/accupos-api/internal/domain"
	"github.com/jhoicas/accupos-api/internal/domain/entity"
	"github.com/jhoicas/accupos-api/internal/domain/pricing"
	"github.com/jhoicas/accupos-api/internal/domain/repository"
	"github.com/jhoicas/accupos-api/pkg/logger"
)

// UseCase registra ventas y expone la lectura del ledger.
type UseCase struct {
	txRunner TxRunner
	txRepo   repository.TransactionRepository // solo lectura, fuera de la tx
	metrics  Metrics
	log      *logger.Logger
	now      func() time.Time
}

// Option configura el caso de uso.
type Option func(*UseCase)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// WithMetrics registra cada checkout en m.
func WithMetrics(m Metrics) Option {
	return func(uc *UseCase) { uc.metrics = m }
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, txRepo repository.TransactionRepository, log *logger.Logger, opts ...Option) *UseCase {
	uc := &UseCase{
		txRunner: txRunner,
		txRepo:   txRepo,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// line es una línea del carrito ya consolidada (un producto por línea).
type line struct {
	productID int64
	quantity  int
}

// Checkout registra la venta. Orden dentro de la transacción:
//  1. Bloquear los productos (ID ascendente).
//  2. Verificar stock de cada línea.
//  3. Calcular líneas y totales con el motor de precios.
//  4. Validar el pago.
//  5. Descontar stock.
//  6. Resolver el cliente (inexistente → mostrador).
//  7. Reservar el consecutivo y escribir la venta.
//
// Cualquier error deshace todos los pasos anteriores.
func (uc *UseCase) Checkout(ctx context.Context, in dto.CheckoutRequest) (*dto.TransactionResponse, error) {
	start := time.Now()
	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		method = entity.PaymentCash
	}

	tx, err := uc.checkout(ctx, method, in)
	uc.observe(method, err, time.Since(start))
	if err != nil {
		uc.log.Warn().Err(err).Str("payment_method", method).Int("items", len(in.Items)).Msg("checkout rechazado")
		return nil, err
	}

	uc.log.Info().
		Str("invoice_no", tx.InvoiceNumber).
		Str("grand_total", tx.GrandTotal.StringFixed(2)).
		Str("payment_method", tx.PaymentMethod).
		Int64("customer_id", tx.CustomerID).
		Msg("venta registrada")

	out := dto.NewTransactionResponse(tx)
	return &out, nil
}

func (uc *UseCase) checkout(ctx context.Context, method string, in dto.CheckoutRequest) (*entity.Transaction, error) {
	// ── Validación previa (no toca el almacenamiento) ─────────────────────────
	if !entity.IsValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: medio de pago %q no soportado", domain.ErrInvalidInput, method)
	}
	lines, err := consolidate(in.Items)
	if err != nil {
		return nil, err
	}

	var saved *entity.Transaction
	err = uc.txRunner.RunCheckout(ctx, func(
		stockRepo repository.StockRepository,
		customerRepo repository.CustomerRepository,
		txRepo repository.TransactionRepository,
	) error {
		ids := make([]int64, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.productID)
		}

		// 1. Bloqueo de filas
		locked, err := stockRepo.GetForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[int64]*entity.Product, len(locked))
		for _, p := range locked {
			byID[p.ID] = p
		}

		// 2. Existencia y stock, en el orden del carrito
		for _, l := range lines {
			p, ok := byID[l.productID]
			if !ok {
				return fmt.Errorf("%w: producto %d", domain.ErrProductNotFound, l.productID)
			}
			if p.Stock < l.quantity {
				return fmt.Errorf("%w para %s: disponible %d, solicitado %d",
					domain.ErrInsufficientStock, p.Name, p.Stock, l.quantity)
			}
		}

		// 3. Totales
		items := make([]entity.TransactionItem, 0, len(lines))
		amounts := make([]pricing.LineAmounts, 0, len(lines))
		for _, l := range lines {
			p := byID[l.productID]
			a := pricing.Line(p.Price, p.TaxRate, l.quantity)
			amounts = append(amounts, a)
			items = append(items, entity.TransactionItem{
				ProductID: p.ID,
				Name:      p.Name,
				SKU:       p.SKU,
				UnitPrice: p.Price,
				Quantity:  l.quantity,
				TaxRate:   p.TaxRate,
				TaxAmount: a.TaxAmount,
				LineTotal: pricing.Round2(a.LineTotal),
				Total:     a.LineGrand,
			})
		}
		totals := pricing.Totals(amounts)

		// 4. Pago
		amountPaid, change, err := settle(method, in.AmountPaid, totals.GrandTotal)
		if err != nil {
			return err
		}

		// 5. Descuento de stock
		for _, l := range lines {
			if err := stockRepo.DecrementStock(ctx, l.productID, l.quantity); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return fmt.Errorf("%w para %s", domain.ErrInsufficientStock, byID[l.productID].Name)
				}
				return err
			}
		}

		// 6. Cliente
		customer, err := resolveCustomer(ctx, customerRepo, in.CustomerID)
		if err != nil {
			return err
		}

		// 7. Consecutivo y ledger
		seq, err := txRepo.NextSequence(ctx)
		if err != nil {
			return err
		}
		t := &entity.Transaction{
			ID:            seq,
			InvoiceNumber: entity.InvoiceNumber(seq),
			Date:          uc.now().UTC(),
			CustomerID:    customer.ID,
			CustomerName:  customer.Name,
			Items:         items,
			Subtotal:      totals.Subtotal,
			TaxTotal:      totals.TaxTotal,
			GrandTotal:    totals.GrandTotal,
			PaymentMethod: method,
			AmountPaid:    amountPaid,
			Change:        change,
			Status:        entity.TransactionStatusCompleted,
		}
		if err := txRepo.Create(ctx, t); err != nil {
			return err
		}
		saved = t
		return nil
	})
	if err != nil {
		if domain.IsCheckoutRejection(err) || errors.Is(err, domain.ErrPersistence) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return saved, nil
}

// consolidate valida las líneas y une los productos repetidos conservando
// el orden de primera aparición, para que la verificación de stock vea la cantidad total.
func consolidate(items []dto.CheckoutItemRequest) ([]line, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: el carrito está vacío", domain.ErrInvalidInput)
	}
	lines := make([]line, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, it := range items {
		if it.ProductID <= 0 {
			return nil, fmt.Errorf("%w: productId inválido (%d)", domain.ErrInvalidInput, it.ProductID)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad inválida para el producto %d", domain.ErrInvalidInput, it.ProductID)
		}
		if i, ok := index[it.ProductID]; ok {
			lines[i].quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(lines)
		lines = append(lines, line{productID: it.ProductID, quantity: it.Quantity})
	}
	return lines, nil
}

// settle calcula monto pagado y vuelto. En efectivo exige amountPaid >= grandTotal;
// en los demás medios el pago es exacto y el amountPaid recibido se ignora.
func settle(method string, amountPaid *decimal.Decimal, grandTotal decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if method != entity.PaymentCash {
		return grandTotal, decimal.Zero, nil
	}
	if amountPaid == nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: el pago en efectivo requiere amountPaid (total %s)",
			domain.ErrInsufficientPayment, grandTotal.StringFixed(2))
	}
	// Se compara y se da cambio sobre el monto tal como queda registrado.
	paid := pricing.Round2(*amountPaid)
	if paid.LessThan(grandTotal) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: recibido %s, total %s",
			domain.ErrInsufficientPayment, paid.StringFixed(2), grandTotal.StringFixed(2))
	}
	return paid, pricing.Change(paid, grandTotal), nil
}

func resolveCustomer(ctx context.Context, repo repository.CustomerRepository, id *int64) (*entity.Customer, error) {
	if id != nil && *id > 0 && *id != entity.WalkInCustomerID {
		c, err := repo.GetByID(ctx, *id)
		if err != nil {
			return nil, err
		}
		if c != nil {
			return c, nil
		}
	}
	c, err := repo.GetByID(ctx, entity.WalkInCustomerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &entity.Customer{ID: entity.WalkInCustomerID, Name: entity.WalkInCustomerName}, nil
	}
	return c, nil
}

func (uc *UseCase) observe(method string, err error, elapsed time.Duration) {
	if uc.metrics == nil {
		return
	}
	if !entity.IsValidPaymentMethod(method) {
		method = "unknown" // acota la cardinalidad de la etiqueta
	}
	uc.metrics.ObserveCheckout(method, outcomeOf(err), elapsed)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeCompleted
	case errors.Is(err, domain.ErrInvalidInput):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrProductNotFound):
		return OutcomeProductNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		return OutcomeInsufficientStock
	case errors.Is(err, domain.ErrInsufficientPayment):
		return OutcomeInsufficientPayment
	default:
		return OutcomeError
	}
}

// ── Lectura del ledger ───────────────────────────────────────────────────────

// List devuelve todas las ventas, la más reciente primero.
func (uc *UseCase) List(ctx context.Context) ([]dto.TransactionResponse, error) {
	list, err := uc.txRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewTransactionList(list), nil
}

// GetByID devuelve la venta o domain.ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.TransactionResponse, error) {
	tx, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewTransactionResponse(tx)
	return &out, nil
}

// Get devuelve la entidad (la usa el generador de PDF).
func (uc *UseCase) Get(ctx context.Context, id int64) (*entity.Transaction, error) {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: venta %d", domain.ErrNotFound, id)
	}
	return tx, nil
}
