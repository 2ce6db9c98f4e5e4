package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/application/replenishment"
)

// ReplenishmentHandler trata os pedidos de reposição filial → matriz.
type ReplenishmentHandler struct {
	uc *replenishment.UseCase
}

// NewReplenishmentHandler constrói o handler.
func NewReplenishmentHandler(uc *replenishment.UseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir pedido de reposição
// @Tags         replenishments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReplenishmentRequest  true  "items (nome livre + quantidade)"
// @Success      201   {object}  dto.ReplenishmentResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/replenishments [post]
func (h *ReplenishmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReplenishmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), ActorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus aplica uma transição de status (ADMIN da matriz).
func (h *ReplenishmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateReplenishmentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.UpdateStatus(c.Context(), ActorFromCtx(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get devolve um pedido com as linhas.
func (h *ReplenishmentHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), ActorFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List devolve os pedidos visíveis ao ator.
func (h *ReplenishmentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.uc.List(c.Context(), ActorFromCtx(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
