package financial_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdvlojas/pdv-api/internal/application/financial"
	"github.com/pdvlojas/pdv-api/internal/apptest"
	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

const testStoreID = "00000000-0000-0000-0000-00000000000a"

var manager = domain.Actor{UserID: "u1", Role: domain.RoleManager, StoreID: testStoreID}

// financialRepoStub devolve agregados fixos e conta as consultas executadas.
type financialRepoStub struct {
	revenue  decimal.Decimal
	cmv      decimal.Decimal
	expenses decimal.Decimal
	byMethod []repository.PaymentMethodSalesResult
	top      []repository.TopProductResult

	totalsCalls int
	lastLimit   int
}

func (s *financialRepoStub) GetSalesTotals(_ context.Context, _ string, _, _ *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	s.totalsCalls++
	return s.revenue, s.cmv, nil
}

func (s *financialRepoStub) GetPaidExpenses(_ context.Context, _ string, _, _ *time.Time) (decimal.Decimal, error) {
	return s.expenses, nil
}

func (s *financialRepoStub) GetSalesByPaymentMethod(_ context.Context, _ string, _, _ *time.Time) ([]repository.PaymentMethodSalesResult, error) {
	return s.byMethod, nil
}

func (s *financialRepoStub) GetTopProducts(_ context.Context, _ string, _, _ *time.Time, limit int) ([]repository.TopProductResult, error) {
	s.lastLimit = limit
	return s.top, nil
}

// Receita 1000, CMV 400, despesas 100: lucro 500, margem 50,0%.
func TestSummary_CalculaLucroEMargem(t *testing.T) {
	repo := &financialRepoStub{
		revenue:  decimal.NewFromInt(1000),
		cmv:      decimal.NewFromInt(400),
		expenses: decimal.NewFromInt(100),
	}
	uc := financial.NewUseCase(repo, apptest.NewSummaryCache())

	out, err := uc.Summary(context.Background(), manager, nil, nil)
	require.NoError(t, err)
	assert.True(t, out.Revenue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, out.CMV.Equal(decimal.NewFromInt(400)))
	assert.True(t, out.ExpensesPaid.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.Profit.Equal(decimal.NewFromInt(500)), "lucro = receita - (cmv + despesas)")
	assert.True(t, out.Margin.Equal(decimal.NewFromInt(50)))
}

// Margem com arredondamento a uma casa: lucro 100/3 sobre receita 1000.
func TestSummary_MargemComUmaCasaDecimal(t *testing.T) {
	repo := &financialRepoStub{
		revenue:  decimal.NewFromInt(300),
		cmv:      decimal.NewFromInt(200),
		expenses: decimal.NewFromInt(1),
	}
	uc := financial.NewUseCase(repo, apptest.NewSummaryCache())

	out, err := uc.Summary(context.Background(), manager, nil, nil)
	require.NoError(t, err)
	// (300 - 201) / 300 * 100 = 33,0
	assert.True(t, out.Margin.Equal(decimal.NewFromInt(33)))
}

// Sem receita: tudo zero e margem zero, nunca divisão por zero.
func TestSummary_SemVendas(t *testing.T) {
	repo := &financialRepoStub{
		revenue:  decimal.Zero,
		cmv:      decimal.Zero,
		expenses: decimal.NewFromInt(50),
	}
	uc := financial.NewUseCase(repo, apptest.NewSummaryCache())

	out, err := uc.Summary(context.Background(), manager, nil, nil)
	require.NoError(t, err)
	assert.True(t, out.Revenue.IsZero())
	assert.True(t, out.Profit.Equal(decimal.NewFromInt(-50)), "despesas sem receita dão lucro negativo")
	assert.True(t, out.Margin.IsZero(), "margem zero quando não há receita")
}

// O resumo sem período é cacheado; a segunda chamada não consulta o banco.
func TestSummary_UsaCacheSemPeriodo(t *testing.T) {
	repo := &financialRepoStub{revenue: decimal.NewFromInt(100), cmv: decimal.NewFromInt(40), expenses: decimal.Zero}
	cache := apptest.NewSummaryCache()
	uc := financial.NewUseCase(repo, cache)
	ctx := context.Background()

	_, err := uc.Summary(ctx, manager, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.totalsCalls)
	assert.Equal(t, 1, cache.SetCalls)

	_, err = uc.Summary(ctx, manager, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.totalsCalls, "segunda chamada servida do cache")
}

// Consultas com período nunca passam pelo cache.
func TestSummary_PeriodoIgnoraCache(t *testing.T) {
	repo := &financialRepoStub{revenue: decimal.NewFromInt(100), cmv: decimal.Zero, expenses: decimal.Zero}
	cache := apptest.NewSummaryCache()
	uc := financial.NewUseCase(repo, cache)
	ctx := context.Background()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Summary(ctx, manager, &start, nil)
	require.NoError(t, err)
	_, err = uc.Summary(ctx, manager, &start, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.totalsCalls, "cada consulta com período vai ao banco")
	assert.Equal(t, 0, cache.GetCalls)
	assert.Equal(t, 0, cache.SetCalls)
}

func TestSalesByPaymentMethod(t *testing.T) {
	repo := &financialRepoStub{byMethod: []repository.PaymentMethodSalesResult{
		{Method: "PIX", SaleCount: 3, Revenue: decimal.NewFromInt(90)},
		{Method: "CASH", SaleCount: 1, Revenue: decimal.NewFromInt(10)},
	}}
	uc := financial.NewUseCase(repo, apptest.NewSummaryCache())

	out, err := uc.SalesByPaymentMethod(context.Background(), manager, nil, nil)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "PIX", out[0].Method)
	assert.Equal(t, 3, out[0].SaleCount)
}

// Limite fora da faixa cai no padrão 10.
func TestTopProducts_LimiteInvalido(t *testing.T) {
	repo := &financialRepoStub{}
	uc := financial.NewUseCase(repo, apptest.NewSummaryCache())
	ctx := context.Background()

	_, err := uc.TopProducts(ctx, manager, nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastLimit)

	_, err = uc.TopProducts(ctx, manager, nil, nil, 500)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastLimit)

	_, err = uc.TopProducts(ctx, manager, nil, nil, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.lastLimit)
}
