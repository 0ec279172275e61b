package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/accupos-api/internal/domain"
	"github.com/jhoicas/accupos-api/internal/domain/entity"
	"github.com/jhoicas/accupos-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// invoiceCounterName fila de invoice_counters que numera las ventas.
const invoiceCounterName = "transactions"

const transactionColumns = `id, invoice_no, date, customer_id, customer_name, subtotal, tax_total, grand_total,
		payment_method, amount_paid, change_due, status`

// TransactionRepo ledger de ventas sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// NextSequence incrementa el contador dentro de la tx actual. La fila queda bloqueada
// hasta el commit: las ventas concurrentes esperan y un rollback devuelve el número.
func (r *TransactionRepo) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	err := r.q.QueryRow(ctx,
		`UPDATE invoice_counters SET value = value + 1 WHERE name = $1 RETURNING value`,
		invoiceCounterName,
	).Scan(&seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("next sequence: contador %q no inicializado", invoiceCounterName)
		}
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// Create inserta cabecera y líneas. Las líneas van en un batch sobre la misma conexión.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.InvoiceNumber, tx.Date, tx.CustomerID, tx.CustomerName,
		tx.Subtotal, tx.TaxTotal, tx.GrandTotal,
		tx.PaymentMethod, tx.AmountPaid, tx.Change, tx.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: factura %s", domain.ErrDuplicate, tx.InvoiceNumber)
		}
		return fmt.Errorf("insert transaction: %w", err)
	}

	batch := &pgx.Batch{}
	for i, it := range tx.Items {
		batch.Queue(`
			INSERT INTO transaction_items (id, transaction_id, line_no, product_id, name, sku, unit_price,
				quantity, tax_rate, tax_amount, line_total, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			uuid.New(), tx.ID, i+1, it.ProductID, it.Name, it.SKU, it.UnitPrice,
			it.Quantity, it.TaxRate, it.TaxAmount, it.LineTotal, it.Total,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	for range tx.Items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert transaction item: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert transaction items: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con sus líneas.
func (r *TransactionRepo) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Transaction{t}); err != nil {
		return nil, err
	}
	return t, nil
}

// List devuelve todas las ventas, la más reciente primero.
func (r *TransactionRepo) List(ctx context.Context) ([]*entity.Transaction, error) {
	return r.ListRecent(ctx, 0)
}

// ListRecent con limit <= 0 devuelve todas.
func (r *TransactionRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	return r.query(ctx, query, args...)
}

// ListBetween devuelve las ventas con from <= date < to, en orden de emisión.
func (r *TransactionRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	return r.query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE date >= $1 AND date < $2 ORDER BY id`,
		from, to,
	)
}

// Totals cuenta y suma todo el ledger.
func (r *TransactionRepo) Totals(ctx context.Context) (repository.LedgerTotals, error) {
	var totals repository.LedgerTotals
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(grand_total), 0) FROM transactions`,
	).Scan(&totals.Count, &totals.Revenue)
	if err != nil {
		return repository.LedgerTotals{}, fmt.Errorf("ledger totals: %w", err)
	}
	return totals, nil
}

func (r *TransactionRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	list := make([]*entity.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachItems carga las líneas de todas las ventas en una sola consulta.
func (r *TransactionRepo) attachItems(ctx context.Context, list []*entity.Transaction) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(list))
	byID := make(map[int64]*entity.Transaction, len(list))
	for _, t := range list {
		ids = append(ids, t.ID)
		byID[t.ID] = t
		t.Items = make([]entity.TransactionItem, 0)
	}
	rows, err := r.q.Query(ctx, `
		SELECT transaction_id, product_id, name, sku, unit_price, quantity, tax_rate, tax_amount, line_total, total
		FROM transaction_items
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var txID int64
		var it entity.TransactionItem
		if err := rows.Scan(&txID, &it.ProductID, &it.Name, &it.SKU, &it.UnitPrice, &it.Quantity,
			&it.TaxRate, &it.TaxAmount, &it.LineTotal, &it.Total); err != nil {
			return fmt.Errorf("scan transaction item: %w", err)
		}
		if t, ok := byID[txID]; ok {
			t.Items = append(t.Items, it)
		}
	}
	return rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(&t.ID, &t.InvoiceNumber, &t.Date, &t.CustomerID, &t.CustomerName,
		&t.Subtotal, &t.TaxTotal, &t.GrandTotal,
		&t.PaymentMethod, &t.AmountPaid, &t.Change, &t.Status)
	if err != nil {
		return nil, err
	}
	t.Date = t.Date.UTC()
	return &t, nil
}
