package repository

import (
	"context"

	"github.com/pdvlojas/pdv-api/internal/domain/entity"
)

// InventoryRow é a linha de leitura do estoque de uma loja com dados do
// produto (para listagem e alerta de mínimo). Produzida pela DB.
type InventoryRow struct {
	StoreID     string
	ProductID   string
	SKU         string
	ProductName string
	Quantity    int64
	MinQuantity int64
}

// InventoryRepository define o porto para consultar/atualizar o estoque por
// (loja, produto). GetForUpdate é usado dentro de transações para garantir
// consistência do decremento.
type InventoryRepository interface {
	// Get devolve a entrada; se não existir, devolve uma entrada zerada
	// (quantidade e mínimo em zero), nunca nil.
	Get(ctx context.Context, storeID, productID string) (*entity.InventoryEntry, error)
	// GetForUpdate bloqueia a linha (SELECT FOR UPDATE) antes de devolver.
	GetForUpdate(ctx context.Context, storeID, productID string) (*entity.InventoryEntry, error)
	Upsert(ctx context.Context, entry *entity.InventoryEntry) error
	ListByStore(ctx context.Context, storeID string) ([]InventoryRow, error)
}
