package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/application/usecase"
	"github.com/pdvlojas/pdv-api/internal/apptest"
	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/entity"
)

const expenseStoreID = "00000000-0000-0000-0000-00000000000a"

var expenseManager = domain.Actor{UserID: "u1", Role: domain.RoleManager, StoreID: expenseStoreID}

func buildExpenseUC(t *testing.T) (*usecase.ExpenseUseCase, *apptest.MemDB, *apptest.SummaryCache) {
	t.Helper()
	db := apptest.NewMemDB()
	cache := apptest.NewSummaryCache()
	return usecase.NewExpenseUseCase(&apptest.ExpenseRepo{DB: db}, cache), db, cache
}

func TestExpenseCreate(t *testing.T) {
	uc, db, _ := buildExpenseUC(t)

	out, err := uc.Create(context.Background(), expenseManager, dto.CreateExpenseRequest{
		Description: "Aluguel da loja",
		Amount:      decimal.NewFromInt(2500),
		DueDate:     "2026-09-05",
		Category:    "fixas",
	})
	require.NoError(t, err)
	assert.Equal(t, "Aluguel da loja", out.Description)
	assert.Equal(t, "2026-09-05", out.DueDate)
	assert.False(t, out.Paid)
	assert.Len(t, db.Expenses, 1)
}

func TestExpenseCreate_Validacao(t *testing.T) {
	uc, _, _ := buildExpenseUC(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, expenseManager, dto.CreateExpenseRequest{
		Description: "  ", Amount: decimal.NewFromInt(10), DueDate: "2026-09-05",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, expenseManager, dto.CreateExpenseRequest{
		Description: "Luz", Amount: decimal.Zero, DueDate: "2026-09-05",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, expenseManager, dto.CreateExpenseRequest{
		Description: "Luz", Amount: decimal.NewFromInt(10), DueDate: "05/09/2026",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpenseCreate_CaixaNaoPode(t *testing.T) {
	uc, _, _ := buildExpenseUC(t)
	cashier := domain.Actor{UserID: "u2", Role: domain.RoleCashier, StoreID: expenseStoreID}
	_, err := uc.Create(context.Background(), cashier, dto.CreateExpenseRequest{
		Description: "Luz", Amount: decimal.NewFromInt(10), DueDate: "2026-09-05",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Pagar a despesa invalida o resumo financeiro da loja.
func TestExpenseMarkPaid(t *testing.T) {
	uc, db, cache := buildExpenseUC(t)
	db.Expenses["e1"] = &entity.Expense{
		ID: "e1", StoreID: expenseStoreID, Description: "Internet",
		Amount: decimal.NewFromInt(120), DueDate: time.Now(),
	}

	out, err := uc.MarkPaid(context.Background(), expenseManager, "e1")
	require.NoError(t, err)
	assert.True(t, out.Paid)
	assert.NotEmpty(t, out.PaymentDate)
	assert.Equal(t, []string{expenseStoreID}, cache.Invalidated)
}

func TestExpenseMarkPaid_JaPaga(t *testing.T) {
	uc, db, cache := buildExpenseUC(t)
	paidAt := time.Now()
	db.Expenses["e1"] = &entity.Expense{
		ID: "e1", StoreID: expenseStoreID, Description: "Internet",
		Amount: decimal.NewFromInt(120), DueDate: paidAt, Paid: true, PaymentDate: &paidAt,
	}

	_, err := uc.MarkPaid(context.Background(), expenseManager, "e1")
	assert.ErrorIs(t, err, domain.ErrExpenseAlreadyPaid)
	assert.Empty(t, cache.Invalidated)
}

func TestExpenseMarkPaid_OutraLoja(t *testing.T) {
	uc, db, _ := buildExpenseUC(t)
	db.Expenses["e1"] = &entity.Expense{
		ID: "e1", StoreID: "outra-loja", Description: "Internet",
		Amount: decimal.NewFromInt(120), DueDate: time.Now(),
	}

	_, err := uc.MarkPaid(context.Background(), expenseManager, "e1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestExpenseList_SomenteEmAberto(t *testing.T) {
	uc, db, _ := buildExpenseUC(t)
	now := time.Now()
	db.Expenses["e1"] = &entity.Expense{ID: "e1", StoreID: expenseStoreID, Description: "Luz", Amount: decimal.NewFromInt(80), DueDate: now}
	db.Expenses["e2"] = &entity.Expense{ID: "e2", StoreID: expenseStoreID, Description: "Água", Amount: decimal.NewFromInt(40), DueDate: now, Paid: true, PaymentDate: &now}

	all, err := uc.List(context.Background(), expenseManager, false, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	open, err := uc.List(context.Background(), expenseManager, true, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Luz", open[0].Description)
}
