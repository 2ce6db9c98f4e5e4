package replenishment

import (
	"context"

	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

// TxRunner executa a criação do pedido (cabeçalho + linhas) em uma única
// transação.
type TxRunner interface {
	RunReplenishment(ctx context.Context, fn func(repo repository.ReplenishmentRepository) error) error
}
