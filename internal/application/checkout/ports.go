package checkout

import (
	"context"

	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

// TxRunner executa o finalize dentro de uma única transação: flip de status,
// criação do pagamento e decremento de estoque são todos-ou-nada.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// SummaryInvalidator invalida o resumo financeiro em cache de uma loja após
// uma venda finalizada. Best effort: falha de cache não desfaz a venda.
type SummaryInvalidator interface {
	Invalidate(ctx context.Context, storeID string) error
}
