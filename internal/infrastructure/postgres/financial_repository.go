package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

var _ repository.FinancialRepository = (*FinancialRepo)(nil)

// FinancialRepo consultas de leitura do agregador financeiro. Todas as somas
// usam COALESCE para devolver zero em períodos sem movimento.
type FinancialRepo struct {
	q Querier
}

// NewFinancialRepository constrói o adaptador de consultas financeiras.
func NewFinancialRepository(q Querier) *FinancialRepo {
	return &FinancialRepo{q: q}
}

// periodFilter monta o filtro de período sobre a coluna dada. start/end nil
// significam sem limite.
func periodFilter(column string, start, end *time.Time, args *[]any) string {
	filter := ""
	if start != nil {
		*args = append(*args, *start)
		filter += fmt.Sprintf(" AND %s >= $%d", column, len(*args))
	}
	if end != nil {
		*args = append(*args, *end)
		filter += fmt.Sprintf(" AND %s <= $%d", column, len(*args))
	}
	return filter
}

// GetSalesTotals soma total e CMV das vendas FINALIZED da loja no período.
func (r *FinancialRepo) GetSalesTotals(ctx context.Context, storeID string, start, end *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := []any{storeID}
	query := `
		SELECT COALESCE(SUM(total), 0), COALESCE(SUM(cmv), 0)
		FROM sales
		WHERE store_id = $1 AND status = 'FINALIZED'` + periodFilter("date", start, end, &args)

	var revenue, cmv decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&revenue, &cmv); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("get sales totals: %w", err)
	}
	return revenue, cmv, nil
}

// GetPaidExpenses soma as despesas pagas da loja no período (por data de
// pagamento).
func (r *FinancialRepo) GetPaidExpenses(ctx context.Context, storeID string, start, end *time.Time) (decimal.Decimal, error) {
	args := []any{storeID}
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE store_id = $1 AND paid = true` + periodFilter("payment_date", start, end, &args)

	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("get paid expenses: %w", err)
	}
	return total, nil
}

// GetSalesByPaymentMethod agrupa as vendas FINALIZED por método de pagamento.
func (r *FinancialRepo) GetSalesByPaymentMethod(ctx context.Context, storeID string, start, end *time.Time) ([]repository.PaymentMethodSalesResult, error) {
	args := []any{storeID}
	query := `
		SELECT pm.method, COUNT(*), COALESCE(SUM(s.total), 0)
		FROM sales s
		JOIN payments pm ON pm.sale_id = s.id
		WHERE s.store_id = $1 AND s.status = 'FINALIZED'` + periodFilter("s.date", start, end, &args) + `
		GROUP BY pm.method
		ORDER BY SUM(s.total) DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get sales by payment method: %w", err)
	}
	defer rows.Close()

	var out []repository.PaymentMethodSalesResult
	for rows.Next() {
		var res repository.PaymentMethodSalesResult
		if err := rows.Scan(&res.Method, &res.SaleCount, &res.Revenue); err != nil {
			return nil, fmt.Errorf("scan payment method result: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// GetTopProducts devolve os produtos com maior receita nas vendas FINALIZED
// do período, com margem por produto.
func (r *FinancialRepo) GetTopProducts(ctx context.Context, storeID string, start, end *time.Time, limit int) ([]repository.TopProductResult, error) {
	args := []any{storeID}
	filter := periodFilter("s.date", start, end, &args)
	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT p.id, p.sku, p.name,
		       COALESCE(SUM(si.quantity), 0),
		       COALESCE(SUM(si.subtotal), 0),
		       CASE WHEN SUM(si.subtotal) > 0
		            THEN ROUND((SUM(si.subtotal) - SUM(p.cost * si.quantity)) / SUM(si.subtotal) * 100, 1)
		            ELSE 0 END
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.store_id = $1 AND s.status = 'FINALIZED'%s
		GROUP BY p.id, p.sku, p.name
		ORDER BY SUM(si.subtotal) DESC
		LIMIT $%d`, filter, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get top products: %w", err)
	}
	defer rows.Close()

	var out []repository.TopProductResult
	for rows.Next() {
		var res repository.TopProductResult
		if err := rows.Scan(&res.ProductID, &res.SKU, &res.ProductName, &res.QuantitySold, &res.Revenue, &res.MarginPct); err != nil {
			return nil, fmt.Errorf("scan top product result: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
