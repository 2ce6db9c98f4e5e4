package usecase

import "context"

// SummaryInvalidator invalida o resumo financeiro em cache de uma loja
// quando uma despesa muda o lado de custos.
type SummaryInvalidator interface {
	Invalidate(ctx context.Context, storeID string) error
}
