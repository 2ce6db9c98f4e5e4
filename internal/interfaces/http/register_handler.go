package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/application/register"
)

// RegisterHandler trata as rotas do caixa.
type RegisterHandler struct {
	uc *register.UseCase
}

// NewRegisterHandler constrói o handler.
func NewRegisterHandler(uc *register.UseCase) *RegisterHandler {
	return &RegisterHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir o caixa da loja
// @Tags         register
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenRegisterRequest  true  "opening_balance"
// @Success      201   {object}  dto.RegisterSessionResponse
// @Failure      409   {object}  dto.ErrorResponse  "REGISTER_ALREADY_OPEN"
// @Router       /api/register/open [post]
func (h *RegisterHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Open(c.Context(), ActorFromCtx(c), in.OpeningBalance)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close fecha o caixa aberto da loja.
func (h *RegisterHandler) Close(c *fiber.Ctx) error {
	out, err := h.uc.Close(c.Context(), ActorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Current devolve o caixa aberto da loja, ou 422 se não há.
func (h *RegisterHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.Current(c.Context(), ActorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
