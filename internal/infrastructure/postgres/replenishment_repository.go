package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pdvlojas/pdv-api/internal/domain/entity"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

var _ repository.ReplenishmentRepository = (*ReplenishmentRepo)(nil)

// ReplenishmentRepo implementação de ReplenishmentRepository sobre
// PostgreSQL. Create deve rodar dentro do TxRunner (cabeçalho + linhas).
type ReplenishmentRepo struct {
	q Querier
}

// NewReplenishmentRepository constrói o adaptador de reposição.
func NewReplenishmentRepository(q Querier) *ReplenishmentRepo {
	return &ReplenishmentRepo{q: q}
}

// Create insere cabeçalho e linhas do pedido.
func (r *ReplenishmentRepo) Create(ctx context.Context, req *entity.ReplenishmentRequest) error {
	query := `
		INSERT INTO replenishment_requests (id, store_id, created_by, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, req.ID, req.StoreID, req.CreatedBy, req.Status, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create replenishment request: %w", err)
	}
	for _, item := range req.Items {
		itemQuery := `
			INSERT INTO replenishment_items (id, request_id, product_name, quantity)
			VALUES ($1, $2, $3, $4)`
		if _, err := r.q.Exec(ctx, itemQuery, item.ID, req.ID, item.ProductName, item.Quantity); err != nil {
			return fmt.Errorf("create replenishment item: %w", err)
		}
	}
	return nil
}

// GetByID devolve o pedido com as linhas, ou nil.
func (r *ReplenishmentRepo) GetByID(ctx context.Context, id string) (*entity.ReplenishmentRequest, error) {
	query := `
		SELECT id, store_id, created_by, status, created_at, updated_at
		FROM replenishment_requests WHERE id = $1`
	var req entity.ReplenishmentRequest
	err := r.q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.StoreID, &req.CreatedBy, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get replenishment request: %w", err)
	}
	items, err := r.listItems(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	req.Items = items
	return &req, nil
}

// List devolve pedidos mais recentes primeiro; storeID vazio devolve todos
// (visão matriz). As linhas são carregadas por pedido.
func (r *ReplenishmentRepo) List(ctx context.Context, storeID string, limit, offset int) ([]*entity.ReplenishmentRequest, error) {
	query := `
		SELECT id, store_id, created_by, status, created_at, updated_at
		FROM replenishment_requests`
	args := []any{}
	if storeID != "" {
		query += ` WHERE store_id = $1`
		args = append(args, storeID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list replenishment requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.ReplenishmentRequest
	for rows.Next() {
		var req entity.ReplenishmentRequest
		if err := rows.Scan(&req.ID, &req.StoreID, &req.CreatedBy, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan replenishment request: %w", err)
		}
		requests = append(requests, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, req := range requests {
		items, err := r.listItems(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		req.Items = items
	}
	return requests, nil
}

func (r *ReplenishmentRepo) listItems(ctx context.Context, requestID string) ([]*entity.ReplenishmentItem, error) {
	query := `
		SELECT id, request_id, product_name, quantity
		FROM replenishment_items WHERE request_id = $1
		ORDER BY product_name`
	rows, err := r.q.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list replenishment items: %w", err)
	}
	defer rows.Close()

	var items []*entity.ReplenishmentItem
	for rows.Next() {
		var it entity.ReplenishmentItem
		if err := rows.Scan(&it.ID, &it.RequestID, &it.ProductName, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan replenishment item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// UpdateStatus aplica a transição apenas se o status atual é expectedFrom
// (compare-and-swap). Devolve false se nenhuma linha foi afetada.
func (r *ReplenishmentRepo) UpdateStatus(ctx context.Context, id, expectedFrom, to string, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE replenishment_requests
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(ctx, query, id, expectedFrom, to, updatedAt)
	if err != nil {
		return false, fmt.Errorf("update replenishment status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
