package financial

import (
	"context"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
)

// SummaryCache guarda o resumo financeiro sem período de uma loja.
// Consultas com período não passam pelo cache. Implementações: Redis em
// produção, Noop em testes e deployments sem Redis.
type SummaryCache interface {
	GetSummary(ctx context.Context, storeID string) (*dto.FinancialSummaryDTO, bool, error)
	SetSummary(ctx context.Context, storeID string, summary *dto.FinancialSummaryDTO) error
	Invalidate(ctx context.Context, storeID string) error
}
