package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/entity"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

const dueDateLayout = "2006-01-02"

// ExpenseUseCase mantém as despesas da loja. Marcar como paga invalida o
// resumo financeiro em cache (despesas pagas entram no lucro).
type ExpenseUseCase struct {
	expenseRepo repository.ExpenseRepository
	invalidator SummaryInvalidator
}

// NewExpenseUseCase constrói o caso de uso de despesas.
func NewExpenseUseCase(expenseRepo repository.ExpenseRepository, invalidator SummaryInvalidator) *ExpenseUseCase {
	return &ExpenseUseCase{expenseRepo: expenseRepo, invalidator: invalidator}
}

// Create registra uma despesa não paga na loja do ator.
func (uc *ExpenseUseCase) Create(ctx context.Context, actor domain.Actor, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !actor.IsManagerOrAdmin() {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Description) == "" || in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	dueDate, err := time.Parse(dueDateLayout, in.DueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		StoreID:     actor.StoreID,
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		DueDate:     dueDate,
		Paid:        false,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// MarkPaid marca a despesa como paga. Despesa já paga devolve
// ErrExpenseAlreadyPaid; a transição é idempotente no banco (update
// condicional).
func (uc *ExpenseUseCase) MarkPaid(ctx context.Context, actor domain.Actor, id string) (*dto.ExpenseResponse, error) {
	if !actor.IsManagerOrAdmin() {
		return nil, domain.ErrForbidden
	}
	expense, err := uc.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	if expense.StoreID != actor.StoreID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if expense.Paid {
		return nil, domain.ErrExpenseAlreadyPaid
	}
	now := time.Now()
	ok, err := uc.expenseRepo.MarkPaid(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrExpenseAlreadyPaid
	}
	expense.Paid = true
	expense.PaymentDate = &now
	expense.UpdatedAt = now

	// O lado de custos do resumo mudou.
	_ = uc.invalidator.Invalidate(ctx, expense.StoreID)

	return toExpenseResponse(expense), nil
}

// List devolve as despesas da loja do ator; onlyUnpaid filtra as em aberto.
func (uc *ExpenseUseCase) List(ctx context.Context, actor domain.Actor, onlyUnpaid bool, page dto.PageRequest) ([]*dto.ExpenseResponse, error) {
	page.DefaultPage()
	expenses, err := uc.expenseRepo.ListByStore(ctx, actor.StoreID, onlyUnpaid, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	resp := &dto.ExpenseResponse{
		ID:          e.ID,
		StoreID:     e.StoreID,
		Description: e.Description,
		Amount:      e.Amount,
		DueDate:     e.DueDate.Format(dueDateLayout),
		Paid:        e.Paid,
		Category:    e.Category,
	}
	if e.PaymentDate != nil {
		resp.PaymentDate = e.PaymentDate.Format(time.RFC3339)
	}
	return resp
}
