package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/application/usecase"
)

// InventoryHandler trata as rotas de estoque da loja.
type InventoryHandler struct {
	uc *usecase.InventoryUseCase
}

// NewInventoryHandler constrói o handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Upsert define quantidade e mínimo de um produto na loja do ator.
func (h *InventoryHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Upsert(c.Context(), ActorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List devolve o estoque da loja com alerta de mínimo.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), ActorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
