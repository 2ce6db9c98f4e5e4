package repository

import (
	"context"

	"github.com/pdvlojas/pdv-api/internal/domain/entity"
)

// PaymentRepository define o porto de persistência para pagamentos
// (um por venda finalizada).
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetBySaleID(ctx context.Context, saleID string) (*entity.Payment, error)
}
