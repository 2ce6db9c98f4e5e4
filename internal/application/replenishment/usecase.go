package replenishment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/entity"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

// UseCase gerencia pedidos de reposição filial → matriz.
//
// Criação: MANAGER ou ADMIN agindo sobre a própria filial (BRANCH).
// Transições de status: ADMIN cuja loja é a MATRIX, seguindo a máquina de
// estados PENDING → PROCESSING → SHIPPED, com cancelamento a partir de
// PENDING ou PROCESSING.
type UseCase struct {
	txRunner  TxRunner
	replRepo  repository.ReplenishmentRepository
	storeRepo repository.StoreRepository
}

// NewUseCase constrói o caso de uso de reposição.
func NewUseCase(txRunner TxRunner, replRepo repository.ReplenishmentRepository, storeRepo repository.StoreRepository) *UseCase {
	return &UseCase{txRunner: txRunner, replRepo: replRepo, storeRepo: storeRepo}
}

// Create abre um pedido PENDING com as linhas informadas.
func (uc *UseCase) Create(ctx context.Context, actor domain.Actor, in dto.CreateReplenishmentRequest) (*dto.ReplenishmentResponse, error) {
	if !actor.IsManagerOrAdmin() {
		return nil, domain.ErrForbidden
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	store, err := uc.storeRepo.GetByID(ctx, actor.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if store.Kind != entity.StoreKindBranch {
		// A matriz não pede reposição a si mesma.
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	request := &entity.ReplenishmentRequest{
		ID:        uuid.New().String(),
		StoreID:   actor.StoreID,
		CreatedBy: actor.UserID,
		Status:    entity.ReplenishmentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, item := range in.Items {
		name := strings.TrimSpace(item.ProductName)
		if name == "" || item.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		request.Items = append(request.Items, &entity.ReplenishmentItem{
			ID:          uuid.New().String(),
			RequestID:   request.ID,
			ProductName: name,
			Quantity:    item.Quantity,
		})
	}

	err = uc.txRunner.RunReplenishment(ctx, func(repo repository.ReplenishmentRepository) error {
		return repo.Create(ctx, request)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(request), nil
}

// UpdateStatus aplica uma transição de status ao pedido. Só o ADMIN da
// matriz pode processar pedidos; transições fora da máquina de estados
// devolvem ErrInvalidTransition.
func (uc *UseCase) UpdateStatus(ctx context.Context, actor domain.Actor, id, newStatus string) (*dto.ReplenishmentResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	store, err := uc.storeRepo.GetByID(ctx, actor.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil || store.Kind != entity.StoreKindMatrix {
		return nil, domain.ErrForbidden
	}

	request, err := uc.replRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.ValidReplenishmentTransition(request.Status, newStatus) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	ok, err := uc.replRepo.UpdateStatus(ctx, id, request.Status, newStatus, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// O status mudou entre a leitura e o update (transição concorrente).
		return nil, domain.ErrInvalidTransition
	}
	request.Status = newStatus
	request.UpdatedAt = now
	return toResponse(request), nil
}

// Get devolve o pedido com as linhas. Atores de filial só veem pedidos da
// própria loja; o ADMIN da matriz vê todos.
func (uc *UseCase) Get(ctx context.Context, actor domain.Actor, id string) (*dto.ReplenishmentResponse, error) {
	request, err := uc.replRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.ErrNotFound
	}
	if request.StoreID != actor.StoreID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return toResponse(request), nil
}

// List devolve os pedidos visíveis ao ator: todos para o ADMIN da matriz,
// apenas os da própria loja para os demais.
func (uc *UseCase) List(ctx context.Context, actor domain.Actor, page dto.PageRequest) ([]*dto.ReplenishmentResponse, error) {
	page.DefaultPage()
	storeID := actor.StoreID
	if actor.IsAdmin() {
		if store, err := uc.storeRepo.GetByID(ctx, actor.StoreID); err == nil && store != nil && store.Kind == entity.StoreKindMatrix {
			storeID = "" // visão global
		}
	}
	requests, err := uc.replRepo.List(ctx, storeID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReplenishmentResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toResponse(r))
	}
	return out, nil
}

func toResponse(r *entity.ReplenishmentRequest) *dto.ReplenishmentResponse {
	resp := &dto.ReplenishmentResponse{
		ID:        r.ID,
		StoreID:   r.StoreID,
		CreatedBy: r.CreatedBy,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		Items:     make([]dto.ReplenishmentItemResponse, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		resp.Items = append(resp.Items, dto.ReplenishmentItemResponse{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		})
	}
	return resp
}
