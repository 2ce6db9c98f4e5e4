package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethodSalesResult é o resultado cru da consulta de vendas por método
// de pagamento. A DB produz; o caso de uso converte em DTO.
type PaymentMethodSalesResult struct {
	Method    string
	SaleCount int
	Revenue   decimal.Decimal
}

// TopProductResult é o resultado cru da consulta de produtos mais vendidos.
type TopProductResult struct {
	ProductID    string
	SKU          string
	ProductName  string
	QuantitySold int64
	Revenue      decimal.Decimal
	MarginPct    decimal.Decimal // (revenue - cmv) / revenue * 100
}

// FinancialRepository define as consultas de leitura do agregador financeiro.
// As implementações são read-only e devem tolerar períodos sem vendas
// (COALESCE para zero, nunca erro).
type FinancialRepository interface {
	// GetSalesTotals soma total e CMV das vendas FINALIZED da loja no
	// período. start/end nil significam sem limite.
	GetSalesTotals(ctx context.Context, storeID string, start, end *time.Time) (revenue, cmv decimal.Decimal, err error)
	// GetPaidExpenses soma as despesas pagas da loja no período (por data de
	// pagamento).
	GetPaidExpenses(ctx context.Context, storeID string, start, end *time.Time) (decimal.Decimal, error)
	GetSalesByPaymentMethod(ctx context.Context, storeID string, start, end *time.Time) ([]PaymentMethodSalesResult, error)
	GetTopProducts(ctx context.Context, storeID string, start, end *time.Time, limit int) ([]TopProductResult, error)
}
