package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pdvlojas/pdv-api/internal/application/checkout"
	"github.com/pdvlojas/pdv-api/internal/application/dto"
)

// CheckoutHandler trata o finalize e a consulta de vendas.
type CheckoutHandler struct {
	uc *checkout.UseCase
}

// NewCheckoutHandler constrói o handler.
func NewCheckoutHandler(uc *checkout.UseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Finalize godoc
// @Summary      Finalizar a venda aberta do usuário
// @Description  Valida estoque, decrementa, transiciona para FINALIZED e
//               registra o pagamento em uma única transação.
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FinalizeSaleRequest  true  "payment_method, payment_detail"
// @Success      200   {object}  dto.SaleResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Failure      422   {object}  dto.ErrorResponse  "NO_OPEN_REGISTER | NO_OPEN_CART | EMPTY_CART"
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Finalize(c.Context(), ActorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSale devolve o agregado completo da venda (recibo).
func (h *CheckoutHandler) GetSale(c *fiber.Ctx) error {
	out, err := h.uc.GetSale(c.Context(), ActorFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListSales lista as vendas finalizadas da loja.
func (h *CheckoutHandler) ListSales(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.uc.ListSales(c.Context(), ActorFromCtx(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
