package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/accupos-api/internal/domain/entity"
)

// SeedResult filas insertadas por Seed (las existentes se conservan).
type SeedResult struct {
	Products  int
	Customers int
}

// Seed inserta productos y clientes con IDs explícitos sin pisar datos existentes,
// y avanza las secuencias para que los próximos IDs no choquen.
func Seed(ctx context.Context, pool *pgxpool.Pool, products []*entity.Product, customers []*entity.Customer) (SeedResult, error) {
	var res SeedResult
	tx, err := pool.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, p := range products {
		cmd, err := tx.Exec(ctx, `
			INSERT INTO products (id, name, sku, price, cost, stock, category, tax_rate)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT DO NOTHING`,
			p.ID, p.Name, p.SKU, p.Price, p.Cost, p.Stock, p.Category, p.TaxRate,
		)
		if err != nil {
			return res, fmt.Errorf("seed product %s: %w", p.SKU, err)
		}
		res.Products += int(cmd.RowsAffected())
	}
	for _, c := range customers {
		cmd, err := tx.Exec(ctx, `
			INSERT INTO customers (id, name, phone, email)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Name, c.Phone, c.Email,
		)
		if err != nil {
			return res, fmt.Errorf("seed customer %d: %w", c.ID, err)
		}
		res.Customers += int(cmd.RowsAffected())
	}

	for _, table := range []string{"products", "customers"} {
		q := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), GREATEST((SELECT MAX(id) FROM %[1]s), 1))`, table)
		if _, err := tx.Exec(ctx, q); err != nil {
			return res, fmt.Errorf("advance %s sequence: %w", table, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return res, fmt.Errorf("commit seed: %w", err)
	}
	return res, nil
}
