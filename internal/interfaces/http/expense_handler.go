package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/application/usecase"
)

// ExpenseHandler trata as rotas de despesas.
type ExpenseHandler struct {
	uc *usecase.ExpenseUseCase
}

// NewExpenseHandler constrói o handler.
func NewExpenseHandler(uc *usecase.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create registra uma despesa não paga.
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), ActorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarkPaid godoc
// @Summary      Marcar despesa como paga
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id da despesa"
// @Success      200  {object}  dto.ExpenseResponse
// @Failure      409  {object}  dto.ErrorResponse  "EXPENSE_ALREADY_PAID"
// @Router       /api/expenses/{id}/pay [put]
func (h *ExpenseHandler) MarkPaid(c *fiber.Ctx) error {
	out, err := h.uc.MarkPaid(c.Context(), ActorFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List devolve as despesas da loja; ?unpaid=true filtra as em aberto.
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.uc.List(c.Context(), ActorFromCtx(c), c.QueryBool("unpaid"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
