package financial

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// UseCase é o agregador financeiro: deriva receita, CMV, despesas pagas,
// lucro e margem das vendas finalizadas e despesas. Leitura pura, sem
// mutação; tolera períodos sem vendas (zeros, nunca erro).
type UseCase struct {
	financialRepo repository.FinancialRepository
	cache         SummaryCache
}

// NewUseCase constrói o agregador financeiro.
func NewUseCase(financialRepo repository.FinancialRepository, cache SummaryCache) *UseCase {
	return &UseCase{financialRepo: financialRepo, cache: cache}
}

// Summary calcula o resumo financeiro da loja no período (start/end nil =
// sem limite). profit = revenue − (cmv + expensesPaid); margin em % com uma
// casa decimal, zero quando não há receita. O resumo sem período é cacheado.
func (uc *UseCase) Summary(ctx context.Context, actor domain.Actor, start, end *time.Time) (*dto.FinancialSummaryDTO, error) {
	cacheable := start == nil && end == nil
	if cacheable {
		if cached, ok, err := uc.cache.GetSummary(ctx, actor.StoreID); err == nil && ok {
			return cached, nil
		}
	}

	revenue, cmv, err := uc.financialRepo.GetSalesTotals(ctx, actor.StoreID, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.financialRepo.GetPaidExpenses(ctx, actor.StoreID, start, end)
	if err != nil {
		return nil, err
	}

	profit := revenue.Sub(cmv.Add(expenses))
	margin := decimal.Zero
	if revenue.GreaterThan(decimal.Zero) {
		margin = profit.Div(revenue).Mul(hundred).Round(1)
	}
	summary := &dto.FinancialSummaryDTO{
		StoreID:      actor.StoreID,
		Revenue:      revenue,
		CMV:          cmv,
		ExpensesPaid: expenses,
		Profit:       profit,
		Margin:       margin,
	}
	if cacheable {
		_ = uc.cache.SetSummary(ctx, actor.StoreID, summary)
	}
	return summary, nil
}

// SalesByPaymentMethod devolve as vendas do período agrupadas por método de
// pagamento.
func (uc *UseCase) SalesByPaymentMethod(ctx context.Context, actor domain.Actor, start, end *time.Time) ([]dto.PaymentMethodSalesDTO, error) {
	rows, err := uc.financialRepo.GetSalesByPaymentMethod(ctx, actor.StoreID, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentMethodSalesDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.PaymentMethodSalesDTO{
			Method:    row.Method,
			SaleCount: row.SaleCount,
			Revenue:   row.Revenue,
		})
	}
	return out, nil
}

// TopProducts devolve os produtos com maior receita no período.
func (uc *UseCase) TopProducts(ctx context.Context, actor domain.Actor, start, end *time.Time, limit int) ([]dto.TopProductDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	rows, err := uc.financialRepo.GetTopProducts(ctx, actor.StoreID, start, end, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID:    row.ProductID,
			SKU:          row.SKU,
			ProductName:  row.ProductName,
			QuantitySold: row.QuantitySold,
			Revenue:      row.Revenue,
			MarginPct:    row.MarginPct,
		})
	}
	return out, nil
}
