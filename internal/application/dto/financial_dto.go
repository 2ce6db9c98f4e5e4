package dto

import "github.com/shopspring/decimal"

// FinancialSummaryDTO resultado de GET /api/financials.
// margin = profit / revenue × 100, arredondada a uma casa decimal;
// zero quando não há receita.
type FinancialSummaryDTO struct {
	StoreID      string          `json:"store_id"`
	Revenue      decimal.Decimal `json:"revenue"`
	CMV          decimal.Decimal `json:"cmv"`
	ExpensesPaid decimal.Decimal `json:"expenses_paid"`
	Profit       decimal.Decimal `json:"profit"`
	Margin       decimal.Decimal `json:"margin"`
}

// PaymentMethodSalesDTO vendas agrupadas por método de pagamento.
type PaymentMethodSalesDTO struct {
	Method    string          `json:"method"`
	SaleCount int             `json:"sale_count"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// TopProductDTO produto no ranking de receita do período.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	MarginPct    decimal.Decimal `json:"margin_pct"`
}
