package dto

import "github.com/shopspring/decimal"

// CreateExpenseRequest body para POST /api/expenses.
type CreateExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date"` // YYYY-MM-DD
	Category    string          `json:"category,omitempty"`
}

// ExpenseResponse despesa em respostas.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	StoreID     string          `json:"store_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date"`
	Paid        bool            `json:"paid"`
	PaymentDate string          `json:"payment_date,omitempty"`
	Category    string          `json:"category,omitempty"`
}
