package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/accupos-api/internal/domain/entity"
	"github.com/jhoicas/accupos-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository ledger en memoria fuera de transacción.
// Las escrituras se aplican de inmediato; el checkout usa la variante de txScope.
type TransactionRepository struct {
	s *Store
}

func (r *TransactionRepository) NextSequence(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sequence++
	return r.s.sequence, nil
}

func (r *TransactionRepository) Create(_ context.Context, t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions = append(r.s.transactions, copyTransaction(t))
	return nil
}

func (r *TransactionRepository) GetByID(_ context.Context, id int64) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.transactions {
		if t.ID == id {
			return copyTransaction(t), nil
		}
	}
	return nil, nil
}

func (r *TransactionRepository) List(ctx context.Context) ([]*entity.Transaction, error) {
	return r.ListRecent(ctx, 0)
}

// ListRecent con limit <= 0 devuelve todas.
func (r *TransactionRepository) ListRecent(_ context.Context, limit int) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := len(r.s.transactions)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]*entity.Transaction, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, copyTransaction(r.s.transactions[i]))
	}
	return out, nil
}

func (r *TransactionRepository) ListBetween(_ context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Transaction, 0)
	for _, t := range r.s.transactions {
		if !t.Date.Before(from) && t.Date.Before(to) {
			out = append(out, copyTransaction(t))
		}
	}
	return out, nil
}

func (r *TransactionRepository) Totals(_ context.Context) (repository.LedgerTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	totals := repository.LedgerTotals{Revenue: decimal.Zero}
	for _, t := range r.s.transactions {
		totals.Count++
		totals.Revenue = totals.Revenue.Add(t.GrandTotal)
	}
	return totals, nil
}
