package repository

import (
	"context"
	"time"

	"github.com/pdvlojas/pdv-api/internal/domain/entity"
)

// ReplenishmentRepository define o porto de persistência para pedidos de
// reposição filial → matriz. Create persiste cabeçalho e linhas; deve rodar
// dentro de uma transação (TxRunner).
type ReplenishmentRepository interface {
	Create(ctx context.Context, request *entity.ReplenishmentRequest) error
	// GetByID devolve o pedido com as linhas carregadas, ou nil.
	GetByID(ctx context.Context, id string) (*entity.ReplenishmentRequest, error)
	// List devolve pedidos da loja; storeID vazio devolve todos (visão matriz).
	List(ctx context.Context, storeID string, limit, offset int) ([]*entity.ReplenishmentRequest, error)
	// UpdateStatus aplica a transição apenas se o status atual for
	// expectedFrom (compare-and-swap); devolve false se nada foi afetado.
	UpdateStatus(ctx context.Context, id, expectedFrom, to string, updatedAt time.Time) (bool, error)
}
