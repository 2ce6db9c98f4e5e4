package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pdvlojas/pdv-api/internal/domain/entity"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementação de SaleRepository sobre PostgreSQL (usável com pool
// ou tx). As escritas só são seguras dentro do TxRunner.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository constrói o adaptador de vendas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, store_id, register_session_id, user_id, status, date, total, cmv, transaction_code, created_at, updated_at`

// Create insere uma venda (carrinho recém-aberto).
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.StoreID, s.RegisterSessionID, s.UserID, s.Status, s.Date,
		s.Total, s.CMV, s.TransactionCode, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// GetByID busca uma venda por id; devolve nil se não existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetOpenByUserAndStore devolve a venda OPEN do usuário na loja, ou nil.
func (r *SaleRepo) GetOpenByUserAndStore(ctx context.Context, userID, storeID string) (*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales WHERE user_id = $1 AND store_id = $2 AND status = 'OPEN'`
	return r.getOne(ctx, query, userID, storeID)
}

// GetOpenForUpdate bloqueia a venda OPEN do usuário na loja (FOR UPDATE).
// Serializa mutações concorrentes sobre o mesmo carrinho.
func (r *SaleRepo) GetOpenForUpdate(ctx context.Context, userID, storeID string) (*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales WHERE user_id = $1 AND store_id = $2 AND status = 'OPEN'
		FOR UPDATE`
	return r.getOne(ctx, query, userID, storeID)
}

func (r *SaleRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.StoreID, &s.RegisterSessionID, &s.UserID, &s.Status, &s.Date,
		&s.Total, &s.CMV, &s.TransactionCode, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// UpdateTotal persiste o total recalculado da venda.
func (r *SaleRepo) UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error {
	query := `UPDATE sales SET total = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, total)
	if err != nil {
		return fmt.Errorf("update sale total: %w", err)
	}
	return nil
}

// Delete remove a venda (carrinho que ficou vazio). As linhas caem por
// ON DELETE CASCADE.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// Finalize aplica o compare-and-swap de status: só transiciona se a venda
// ainda está OPEN. Devolve false se nenhuma linha foi afetada.
func (r *SaleRepo) Finalize(ctx context.Context, id string, total, cmv decimal.Decimal, code string, date time.Time) (bool, error) {
	query := `
		UPDATE sales
		SET status = 'FINALIZED', total = $2, cmv = $3, transaction_code = $4, date = $5, updated_at = now()
		WHERE id = $1 AND status = 'OPEN'`
	tag, err := r.q.Exec(ctx, query, id, total, cmv, code, date)
	if err != nil {
		return false, fmt.Errorf("finalize sale: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByStore devolve vendas da loja com o status pedido, mais recentes
// primeiro.
func (r *SaleRepo) ListByStore(ctx context.Context, storeID, status string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales WHERE store_id = $1 AND status = $2
		ORDER BY date DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, storeID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.StoreID, &s.RegisterSessionID, &s.UserID, &s.Status, &s.Date,
			&s.Total, &s.CMV, &s.TransactionCode, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}

// CreateItem insere uma linha na venda.
func (r *SaleRepo) CreateItem(ctx context.Context, item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal)
	if err != nil {
		return fmt.Errorf("create sale item: %w", err)
	}
	return nil
}

// GetItem busca uma linha por id; devolve nil se não existe.
func (r *SaleRepo) GetItem(ctx context.Context, itemID string) (*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_items WHERE id = $1`
	return r.getOneItem(ctx, query, itemID)
}

// GetItemByProduct devolve a linha da venda para o produto, ou nil.
func (r *SaleRepo) GetItemByProduct(ctx context.Context, saleID, productID string) (*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1 AND product_id = $2`
	return r.getOneItem(ctx, query, saleID, productID)
}

func (r *SaleRepo) getOneItem(ctx context.Context, query string, args ...any) (*entity.SaleItem, error) {
	var it entity.SaleItem
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale item: %w", err)
	}
	return &it, nil
}

// UpdateItemQuantity ajusta quantidade e subtotal da linha.
func (r *SaleRepo) UpdateItemQuantity(ctx context.Context, itemID string, quantity int64, subtotal decimal.Decimal) error {
	query := `UPDATE sale_items SET quantity = $2, subtotal = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, itemID, quantity, subtotal)
	if err != nil {
		return fmt.Errorf("update sale item: %w", err)
	}
	return nil
}

// DeleteItem remove a linha.
func (r *SaleRepo) DeleteItem(ctx context.Context, itemID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sale_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete sale item: %w", err)
	}
	return nil
}

// ListItems devolve as linhas da venda.
func (r *SaleRepo) ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListItemsDetailed junta linhas com produto e estoque da loja. O LEFT JOIN
// tolera produto sem entrada de estoque (disponível zero).
func (r *SaleRepo) ListItemsDetailed(ctx context.Context, saleID, storeID string) ([]repository.CartItemRow, error) {
	query := `
		SELECT si.id, si.product_id, p.name, p.sku, si.quantity, si.unit_price, si.subtotal,
		       COALESCE(i.quantity, 0), COALESCE(i.min_quantity, 0)
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		LEFT JOIN inventory i ON i.product_id = si.product_id AND i.store_id = $2
		WHERE si.sale_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, saleID, storeID)
	if err != nil {
		return nil, fmt.Errorf("list sale items detailed: %w", err)
	}
	defer rows.Close()

	var out []repository.CartItemRow
	for rows.Next() {
		var row repository.CartItemRow
		if err := rows.Scan(
			&row.ItemID, &row.ProductID, &row.ProductName, &row.SKU, &row.Quantity,
			&row.UnitPrice, &row.Subtotal, &row.StockAvailable, &row.StockMin,
		); err != nil {
			return nil, fmt.Errorf("scan cart item row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
