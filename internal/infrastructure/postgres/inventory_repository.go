package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pdvlojas/pdv-api/internal/domain/entity"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementação de InventoryRepository sobre PostgreSQL
// (usável com pool ou tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository constrói o adaptador de estoque.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtém a entrada de estoque de um produto na loja. Sem linha devolve
// uma entrada zerada, nunca nil.
func (r *InventoryRepo) Get(ctx context.Context, storeID, productID string) (*entity.InventoryEntry, error) {
	query := `
		SELECT store_id, product_id, quantity, min_quantity, updated_at
		FROM inventory WHERE store_id = $1 AND product_id = $2`
	var e entity.InventoryEntry
	err := r.q.QueryRow(ctx, query, storeID, productID).Scan(
		&e.StoreID, &e.ProductID, &e.Quantity, &e.MinQuantity, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryEntry{StoreID: storeID, ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &e, nil
}

// GetForUpdate obtém a entrada e bloqueia a linha (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(ctx context.Context, storeID, productID string) (*entity.InventoryEntry, error) {
	query := `
		SELECT store_id, product_id, quantity, min_quantity, updated_at
		FROM inventory WHERE store_id = $1 AND product_id = $2
		FOR UPDATE`
	var e entity.InventoryEntry
	err := r.q.QueryRow(ctx, query, storeID, productID).Scan(
		&e.StoreID, &e.ProductID, &e.Quantity, &e.MinQuantity, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryEntry{StoreID: storeID, ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &e, nil
}

// Upsert insere ou atualiza quantidade e mínimo por (loja, produto).
func (r *InventoryRepo) Upsert(ctx context.Context, e *entity.InventoryEntry) error {
	query := `
		INSERT INTO inventory (store_id, product_id, quantity, min_quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (store_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, min_quantity = EXCLUDED.min_quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, e.StoreID, e.ProductID, e.Quantity, e.MinQuantity)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// ListByStore devolve o estoque da loja com dados do produto.
func (r *InventoryRepo) ListByStore(ctx context.Context, storeID string) ([]repository.InventoryRow, error) {
	query := `
		SELECT i.store_id, i.product_id, p.sku, p.name, i.quantity, i.min_quantity
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.store_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var out []repository.InventoryRow
	for rows.Next() {
		var row repository.InventoryRow
		if err := rows.Scan(&row.StoreID, &row.ProductID, &row.SKU, &row.ProductName, &row.Quantity, &row.MinQuantity); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
