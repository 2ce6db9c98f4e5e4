package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de uma venda. OPEN é o carrinho; FINALIZED é terminal e imutável.
const (
	SaleStatusOpen      = "OPEN"
	SaleStatusFinalized = "FINALIZED"
)

// Sale é a entidade central: uma venda de uma loja, registrada em um caixa,
// conduzida por um usuário. Total e CMV são sempre derivados das linhas,
// nunca editados de forma independente.
type Sale struct {
	ID                string
	StoreID           string
	RegisterSessionID string
	UserID            string
	Status            string // OPEN | FINALIZED
	Date              time.Time
	Total             decimal.Decimal // soma dos subtotais das linhas
	CMV               decimal.Decimal // soma de custo unitário × quantidade
	TransactionCode   string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Items preenchido apenas em leituras do agregado completo.
	Items []*SaleItem
}

// SaleItem é uma linha da venda. UnitPrice é o snapshot do preço de catálogo
// no momento em que a linha foi criada.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64 // >= 1
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal // Quantity × UnitPrice
}

// SumSubtotals soma os subtotais das linhas (base do invariante do total).
func SumSubtotals(items []*SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}
