package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/entity"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

// StoreUseCase administra as lojas da rede. Criação é restrita ao ADMIN.
type StoreUseCase struct {
	storeRepo repository.StoreRepository
}

// NewStoreUseCase constrói o caso de uso de lojas.
func NewStoreUseCase(storeRepo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{storeRepo: storeRepo}
}

// Create cadastra uma loja (MATRIX ou BRANCH).
func (uc *StoreUseCase) Create(ctx context.Context, actor domain.Actor, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Kind != entity.StoreKindMatrix && in.Kind != entity.StoreKindBranch {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Kind:      in.Kind,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// Get devolve uma loja por id.
func (uc *StoreUseCase) Get(ctx context.Context, id string) (*dto.StoreResponse, error) {
	store, err := uc.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(store), nil
}

// List devolve todas as lojas.
func (uc *StoreUseCase) List(ctx context.Context) ([]*dto.StoreResponse, error) {
	stores, err := uc.storeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, toStoreResponse(s))
	}
	return out, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:      s.ID,
		Name:    s.Name,
		Address: s.Address,
		Kind:    s.Kind,
		Active:  s.Active,
	}
}
