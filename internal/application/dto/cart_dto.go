package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest body para POST /api/cart/items.
type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// UpdateCartItemRequest body para PUT /api/cart/items/:id.
type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// CartItemResponse linha do carrinho com estoque atual para exibição
// (o estoque não é reservado; a validação ocorre no checkout).
type CartItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	SKU            string          `json:"sku"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	StockAvailable int64           `json:"stock_available"`
	StockMin       int64           `json:"stock_min"`
}

// CartResponse carrinho (venda OPEN) para GET /api/cart.
type CartResponse struct {
	SaleID string             `json:"sale_id"`
	Total  decimal.Decimal    `json:"total"`
	Items  []CartItemResponse `json:"items"`
}

// RemoveCartItemResponse resultado de DELETE /api/cart/items/:id.
// SaleDeleted indica que a venda foi removida por ficar vazia.
type RemoveCartItemResponse struct {
	Success     bool            `json:"success"`
	SaleDeleted bool            `json:"sale_deleted"`
	SaleTotal   decimal.Decimal `json:"sale_total"`
}
