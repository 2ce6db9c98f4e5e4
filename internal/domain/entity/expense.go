package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa uma despesa da loja. Apenas despesas pagas entram no
// cálculo de lucro do agregador financeiro.
type Expense struct {
	ID          string
	StoreID     string
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
	Paid        bool
	PaymentDate *time.Time // preenchido somente quando paga
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
