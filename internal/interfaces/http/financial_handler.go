package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/application/financial"
)

// FinancialHandler trata as consultas do agregador financeiro.
type FinancialHandler struct {
	uc *financial.UseCase
}

// NewFinancialHandler constrói o handler.
func NewFinancialHandler(uc *financial.UseCase) *FinancialHandler {
	return &FinancialHandler{uc: uc}
}

// parsePeriod lê start/end da query string. Aceita RFC3339 ou YYYY-MM-DD;
// end em data pura vira fim do dia.
func parsePeriod(c *fiber.Ctx) (start, end *time.Time, err error) {
	if raw := c.Query("start"); raw != "" {
		t, perr := parseDateTime(raw, false)
		if perr != nil {
			return nil, nil, perr
		}
		start = &t
	}
	if raw := c.Query("end"); raw != "" {
		t, perr := parseDateTime(raw, true)
		if perr != nil {
			return nil, nil, perr
		}
		end = &t
	}
	return start, end, nil
}

func parseDateTime(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// Summary godoc
// @Summary      Resumo financeiro da loja
// @Description  Receita, CMV, despesas pagas, lucro e margem no período.
//               Sem start/end cobre todo o histórico (resposta cacheada).
// @Tags         financials
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "RFC3339 ou YYYY-MM-DD"
// @Param        end    query  string  false  "RFC3339 ou YYYY-MM-DD"
// @Success      200    {object}  dto.FinancialSummaryDTO
// @Router       /api/financials [get]
func (h *FinancialHandler) Summary(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período inválido"})
	}
	out, err := h.uc.Summary(c.Context(), ActorFromCtx(c), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesByPaymentMethod vendas do período agrupadas por método de pagamento.
func (h *FinancialHandler) SalesByPaymentMethod(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período inválido"})
	}
	out, err := h.uc.SalesByPaymentMethod(c.Context(), ActorFromCtx(c), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts produtos com maior receita no período.
func (h *FinancialHandler) TopProducts(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período inválido"})
	}
	out, err := h.uc.TopProducts(c.Context(), ActorFromCtx(c), start, end, c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
