package cache

import (
	"context"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/application/financial"
)

// Garante que as implementações cumprem o porto do agregador financeiro.
var _ financial.SummaryCache = (*Noop)(nil)
var _ financial.SummaryCache = (*RedisSummaryCache)(nil)

// Noop é o cache desligado: sempre miss, escritas ignoradas. Usado quando
// REDIS_ADDR está vazio e nos testes.
type Noop struct{}

// NewNoop constrói o cache desligado.
func NewNoop() *Noop { return &Noop{} }

func (Noop) GetSummary(context.Context, string) (*dto.FinancialSummaryDTO, bool, error) {
	return nil, false, nil
}

func (Noop) SetSummary(context.Context, string, *dto.FinancialSummaryDTO) error { return nil }

func (Noop) Invalidate(context.Context, string) error { return nil }
