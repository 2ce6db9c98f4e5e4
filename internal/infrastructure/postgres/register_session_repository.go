package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/entity"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

var _ repository.RegisterSessionRepository = (*RegisterSessionRepo)(nil)

// RegisterSessionRepo implementação de RegisterSessionRepository sobre
// PostgreSQL. O índice único parcial em (store_id) WHERE status = 'OPEN'
// garante no máximo um caixa aberto por loja mesmo sob corrida.
type RegisterSessionRepo struct {
	q Querier
}

// NewRegisterSessionRepository constrói o adaptador de caixas.
func NewRegisterSessionRepository(q Querier) *RegisterSessionRepo {
	return &RegisterSessionRepo{q: q}
}

// Create insere um caixa OPEN. Corrida com outro open devolve
// ErrRegisterAlreadyOpen via violação do índice único parcial.
func (r *RegisterSessionRepo) Create(ctx context.Context, s *entity.RegisterSession) error {
	query := `
		INSERT INTO register_sessions (id, store_id, status, opened_by, opening_balance, opened_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.StoreID, s.Status, s.OpenedBy, s.OpeningBalance, s.OpenedAt, s.ClosedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRegisterAlreadyOpen
		}
		return fmt.Errorf("create register session: %w", err)
	}
	return nil
}

// GetByID busca um caixa por id; devolve nil se não existe.
func (r *RegisterSessionRepo) GetByID(ctx context.Context, id string) (*entity.RegisterSession, error) {
	query := `
		SELECT id, store_id, status, opened_by, opening_balance, opened_at, closed_at
		FROM register_sessions WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetOpenByStore devolve a sessão OPEN da loja, ou nil.
func (r *RegisterSessionRepo) GetOpenByStore(ctx context.Context, storeID string) (*entity.RegisterSession, error) {
	query := `
		SELECT id, store_id, status, opened_by, opening_balance, opened_at, closed_at
		FROM register_sessions WHERE store_id = $1 AND status = 'OPEN'`
	return r.getOne(ctx, query, storeID)
}

func (r *RegisterSessionRepo) getOne(ctx context.Context, query string, args ...any) (*entity.RegisterSession, error) {
	var s entity.RegisterSession
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.StoreID, &s.Status, &s.OpenedBy, &s.OpeningBalance, &s.OpenedAt, &s.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get register session: %w", err)
	}
	return &s, nil
}

// Close fecha a sessão se ainda está OPEN (compare-and-swap). Devolve false
// se nenhuma linha foi afetada.
func (r *RegisterSessionRepo) Close(ctx context.Context, id string, closedAt time.Time) (bool, error) {
	query := `
		UPDATE register_sessions
		SET status = 'CLOSED', closed_at = $2
		WHERE id = $1 AND status = 'OPEN'`
	tag, err := r.q.Exec(ctx, query, id, closedAt)
	if err != nil {
		return false, fmt.Errorf("close register session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
