package repository

import (
	"context"
	"time"

	"github.com/pdvlojas/pdv-api/internal/domain/entity"
)

// RegisterSessionRepository define o porto de persistência para caixas.
type RegisterSessionRepository interface {
	Create(ctx context.Context, session *entity.RegisterSession) error
	GetByID(ctx context.Context, id string) (*entity.RegisterSession, error)
	// GetOpenByStore devolve a sessão OPEN da loja, ou nil se não houver.
	GetOpenByStore(ctx context.Context, storeID string) (*entity.RegisterSession, error)
	// Close fecha a sessão se ainda estiver OPEN; devolve false se nenhuma
	// linha foi afetada.
	Close(ctx context.Context, id string, closedAt time.Time) (bool, error)
}
