package usecase

import (
	"context"
	"time"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/entity"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

// InventoryUseCase administra o estoque por (loja, produto): ajuste direto de
// quantidade/mínimo e listagem com alerta de reposição. O decremento de venda
// não passa por aqui (vive no checkout, dentro da transação).
type InventoryUseCase struct {
	invRepo     repository.InventoryRepository
	productRepo repository.ProductRepository
}

// NewInventoryUseCase constrói o caso de uso de estoque.
func NewInventoryUseCase(invRepo repository.InventoryRepository, productRepo repository.ProductRepository) *InventoryUseCase {
	return &InventoryUseCase{invRepo: invRepo, productRepo: productRepo}
}

// Upsert define quantidade e mínimo do produto na loja do ator.
func (uc *InventoryUseCase) Upsert(ctx context.Context, actor domain.Actor, in dto.UpsertInventoryRequest) (*dto.InventoryRowDTO, error) {
	if !actor.IsManagerOrAdmin() {
		return nil, domain.ErrForbidden
	}
	if in.Quantity < 0 || in.MinQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	entry := &entity.InventoryEntry{
		StoreID:     actor.StoreID,
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
		UpdatedAt:   time.Now(),
	}
	if err := uc.invRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	return &dto.InventoryRowDTO{
		ProductID:    product.ID,
		SKU:          product.SKU,
		ProductName:  product.Name,
		Quantity:     entry.Quantity,
		MinQuantity:  entry.MinQuantity,
		BelowMinimum: entry.BelowMinimum(),
	}, nil
}

// List devolve o estoque da loja do ator com o alerta de mínimo.
func (uc *InventoryUseCase) List(ctx context.Context, actor domain.Actor) ([]dto.InventoryRowDTO, error) {
	rows, err := uc.invRepo.ListByStore(ctx, actor.StoreID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.InventoryRowDTO{
			ProductID:    row.ProductID,
			SKU:          row.SKU,
			ProductName:  row.ProductName,
			Quantity:     row.Quantity,
			MinQuantity:  row.MinQuantity,
			BelowMinimum: row.Quantity < row.MinQuantity,
		})
	}
	return out, nil
}
