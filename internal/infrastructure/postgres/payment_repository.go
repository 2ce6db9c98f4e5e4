package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/entity"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementação de PaymentRepository sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository constrói o adaptador de pagamentos.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create insere o pagamento da venda. A constraint única em sale_id garante
// um pagamento por venda.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, sale_id, method, amount, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, p.ID, p.SaleID, p.Method, p.Amount, p.Detail, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// GetBySaleID busca o pagamento da venda; devolve nil se não existe.
func (r *PaymentRepo) GetBySaleID(ctx context.Context, saleID string) (*entity.Payment, error) {
	query := `
		SELECT id, sale_id, method, amount, detail, created_at
		FROM payments WHERE sale_id = $1`
	var p entity.Payment
	err := r.q.QueryRow(ctx, query, saleID).Scan(
		&p.ID, &p.SaleID, &p.Method, &p.Amount, &p.Detail, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}
