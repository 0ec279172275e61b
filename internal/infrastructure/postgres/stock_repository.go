package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/accupos-api/internal/domain"
	"github.com/jhoicas/accupos-api/internal/domain/entity"
	"github.com/jhoicas/accupos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL. Solo tiene sentido con una tx.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar la tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetForUpdate bloquea las filas (SELECT FOR UPDATE) en orden ascendente de ID,
// así dos checkouts con los mismos productos nunca se bloquean en ciclo.
func (r *StockRepo) GetForUpdate(ctx context.Context, ids []int64) ([]*entity.Product, error) {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, sorted)
	if err != nil {
		return nil, fmt.Errorf("get products for update: %w", err)
	}
	return collectProducts(rows)
}

// DecrementStock descuenta qty solo si alcanza; el CHECK (stock >= 0) es la segunda barrera.
func (r *StockRepo) DecrementStock(ctx context.Context, productID int64, qty int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`,
		productID, qty,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("decrement stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}
