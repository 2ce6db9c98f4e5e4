package cart

import (
	"context"

	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante que as mutações do agregado
// Sale/SaleItem sejam serializadas por venda (lock de linha) e atômicas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
	) error) error
}
