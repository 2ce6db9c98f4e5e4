package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pdvlojas/pdv-api/internal/domain/entity"
)

// CartItemRow é a linha de leitura do carrinho com dados de produto e
// estoque atual (apenas exibição; o estoque não é reservado no carrinho).
type CartItemRow struct {
	ItemID         string
	ProductID      string
	ProductName    string
	SKU            string
	Quantity       int64
	UnitPrice      decimal.Decimal
	Subtotal       decimal.Decimal
	StockAvailable int64
	StockMin       int64
}

// SaleRepository define o porto de persistência para vendas e suas linhas.
// As operações de escrita são usadas dentro de transações (TxRunner); as de
// leitura funcionam com pool ou tx (Querier).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetOpenByUserAndStore devolve a venda OPEN do usuário na loja, ou nil.
	GetOpenByUserAndStore(ctx context.Context, userID, storeID string) (*entity.Sale, error)
	// GetOpenForUpdate bloqueia a linha da venda OPEN do usuário na loja
	// (SELECT FOR UPDATE), serializando mutações por venda. Devolve nil se
	// não há venda OPEN.
	GetOpenForUpdate(ctx context.Context, userID, storeID string) (*entity.Sale, error)
	UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	// Finalize aplica o compare-and-swap de status: só finaliza se a venda
	// ainda estiver OPEN. Devolve false se nenhuma linha foi afetada.
	Finalize(ctx context.Context, id string, total, cmv decimal.Decimal, code string, date time.Time) (bool, error)
	ListByStore(ctx context.Context, storeID, status string, limit, offset int) ([]*entity.Sale, error)

	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetItem(ctx context.Context, itemID string) (*entity.SaleItem, error)
	// GetItemByProduct devolve a linha da venda para o produto, ou nil
	// (usada para mesclar quantidades no add-to-cart).
	GetItemByProduct(ctx context.Context, saleID, productID string) (*entity.SaleItem, error)
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int64, subtotal decimal.Decimal) error
	DeleteItem(ctx context.Context, itemID string) error
	ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	// ListItemsDetailed junta linhas com produto e estoque da loja, para a
	// resposta do carrinho e o recibo.
	ListItemsDetailed(ctx context.Context, saleID, storeID string) ([]CartItemRow, error)
}
