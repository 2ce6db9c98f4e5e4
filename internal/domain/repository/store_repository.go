package repository

import (
	"context"

	"github.com/pdvlojas/pdv-api/internal/domain/entity"
)

// StoreRepository define o porto de persistência para lojas.
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	List(ctx context.Context) ([]*entity.Store, error)
}
