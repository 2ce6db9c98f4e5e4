package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pdvlojas/pdv-api/internal/domain/entity"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementação de ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository constrói o adaptador de despesas.
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, store_id, description, amount, due_date, paid, payment_date, category, created_at, updated_at`

// Create insere uma despesa.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.StoreID, e.Description, e.Amount, e.DueDate, e.Paid, e.PaymentDate, e.Category,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

// GetByID busca uma despesa por id; devolve nil se não existe.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	var e entity.Expense
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.StoreID, &e.Description, &e.Amount, &e.DueDate, &e.Paid, &e.PaymentDate, &e.Category,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// ListByStore devolve as despesas da loja, vencimento mais próximo primeiro.
func (r *ExpenseRepo) ListByStore(ctx context.Context, storeID string, onlyUnpaid bool, limit, offset int) ([]*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE store_id = $1`
	if onlyUnpaid {
		query += ` AND paid = false`
	}
	query += ` ORDER BY due_date LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(
			&e.ID, &e.StoreID, &e.Description, &e.Amount, &e.DueDate, &e.Paid, &e.PaymentDate, &e.Category,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, &e)
	}
	return expenses, rows.Err()
}

// MarkPaid marca como paga se ainda não está (compare-and-swap). Devolve
// false se nenhuma linha foi afetada.
func (r *ExpenseRepo) MarkPaid(ctx context.Context, id string, paymentDate time.Time) (bool, error) {
	query := `
		UPDATE expenses
		SET paid = true, payment_date = $2, updated_at = now()
		WHERE id = $1 AND paid = false`
	tag, err := r.q.Exec(ctx, query, id, paymentDate)
	if err != nil {
		return false, fmt.Errorf("mark expense paid: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
