package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/accupos-api/internal/application/checkout"
	"github.com/jhoicas/accupos-api/internal/domain"
	"github.com/jhoicas/accupos-api/internal/domain/entity"
	"github.com/jhoicas/accupos-api/internal/domain/repository"
)

var _ checkout.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el checkout sobre el Store con semántica de transacción.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunCheckout ejecuta fn con repos atados a una transacción en memoria y confirma
// solo si fn no devuelve error y el contexto sigue vigente.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	customerRepo repository.CustomerRepository,
	txRepo repository.TransactionRepository,
) error) error {
	tx := &txScope{
		s:          r.s,
		held:       make(map[int64]chan struct{}),
		stockDelta: make(map[int64]int),
	}
	defer tx.releaseAll()

	if err := fn(&txStockRepo{tx: tx}, r.s.Customers(), &txLedgerRepo{tx: tx, TransactionRepository: r.s.Transactions()}); err != nil {
		return err
	}
	return tx.commit(ctx)
}

// txScope acumula bloqueos y escrituras pendientes de una transacción.
type txScope struct {
	s          *Store
	held       map[int64]chan struct{}
	ledger     bool
	stockDelta map[int64]int
	sequence   int64
	pending    []*entity.Transaction
}

func (tx *txScope) commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()
	for id, qty := range tx.stockDelta {
		p, ok := tx.s.products[id]
		if !ok {
			return fmt.Errorf("%w: producto %d", domain.ErrProductNotFound, id)
		}
		p.Stock -= qty
	}
	if tx.sequence > 0 {
		tx.s.sequence = tx.sequence
	}
	tx.s.transactions = append(tx.s.transactions, tx.pending...)
	return nil
}

func (tx *txScope) releaseAll() {
	for _, ch := range tx.held {
		release(ch)
	}
	tx.held = nil
	if tx.ledger {
		release(tx.s.ledgerLock)
		tx.ledger = false
	}
}

// ── StockRepository atado a la transacción ───────────────────────────────────

type txStockRepo struct {
	tx *txScope
}

func (r *txStockRepo) GetForUpdate(ctx context.Context, ids []int64) ([]*entity.Product, error) {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for i, id := range sorted {
		if i > 0 && sorted[i-1] == id {
			continue
		}
		if _, ok := r.tx.held[id]; ok {
			continue
		}
		ch := r.tx.s.rowLock(id)
		if err := acquire(ctx, ch); err != nil {
			return nil, fmt.Errorf("lock product %d: %w", id, err)
		}
		r.tx.held[id] = ch
	}

	r.tx.s.mu.RLock()
	defer r.tx.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(sorted))
	for i, id := range sorted {
		if i > 0 && sorted[i-1] == id {
			continue
		}
		p, ok := r.tx.s.products[id]
		if !ok {
			continue
		}
		cp := *p
		cp.Stock -= r.tx.stockDelta[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *txStockRepo) DecrementStock(_ context.Context, productID int64, qty int) error {
	if _, ok := r.tx.held[productID]; !ok {
		return fmt.Errorf("decrement stock: producto %d sin bloqueo", productID)
	}
	r.tx.s.mu.RLock()
	p, ok := r.tx.s.products[productID]
	var available int
	if ok {
		available = p.Stock - r.tx.stockDelta[productID]
	}
	r.tx.s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: producto %d", domain.ErrProductNotFound, productID)
	}
	if available < qty {
		return domain.ErrInsufficientStock
	}
	r.tx.stockDelta[productID] += qty
	return nil
}

// ── Ledger atado a la transacción ────────────────────────────────────────────

// txLedgerRepo difiere consecutivo y escritura hasta el commit; las lecturas
// ven solo lo confirmado.
type txLedgerRepo struct {
	*TransactionRepository
	tx *txScope
}

// NextSequence toma el bloqueo del ledger hasta el fin de la transacción,
// así dos ventas concurrentes nunca leen el mismo consecutivo.
func (r *txLedgerRepo) NextSequence(ctx context.Context) (int64, error) {
	if !r.tx.ledger {
		if err := acquire(ctx, r.tx.s.ledgerLock); err != nil {
			return 0, fmt.Errorf("lock invoice counter: %w", err)
		}
		r.tx.ledger = true
	}
	if r.tx.sequence == 0 {
		r.tx.s.mu.RLock()
		r.tx.sequence = r.tx.s.sequence
		r.tx.s.mu.RUnlock()
	}
	r.tx.sequence++
	return r.tx.sequence, nil
}

func (r *txLedgerRepo) Create(_ context.Context, t *entity.Transaction) error {
	if !r.tx.ledger {
		return fmt.Errorf("insert transaction: consecutivo no reservado")
	}
	r.tx.pending = append(r.tx.pending, copyTransaction(t))
	return nil
}
