package repository

import (
	"context"
	"time"

	"github.com/pdvlojas/pdv-api/internal/domain/entity"
)

// ExpenseRepository define o porto de persistência para despesas.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	ListByStore(ctx context.Context, storeID string, onlyUnpaid bool, limit, offset int) ([]*entity.Expense, error)
	// MarkPaid marca como paga se ainda não estiver; devolve false se
	// nenhuma linha foi afetada (já paga ou inexistente).
	MarkPaid(ctx context.Context, id string, paymentDate time.Time) (bool, error)
}
