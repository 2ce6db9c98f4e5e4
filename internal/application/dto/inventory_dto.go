package dto

// UpsertInventoryRequest body para PUT /api/inventory.
type UpsertInventoryRequest struct {
	ProductID   string `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	MinQuantity int64  `json:"min_quantity"`
}

// InventoryRowDTO linha do estoque da loja com alerta de mínimo.
type InventoryRowDTO struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	ProductName  string `json:"product_name"`
	Quantity     int64  `json:"quantity"`
	MinQuantity  int64  `json:"min_quantity"`
	BelowMinimum bool   `json:"below_minimum"`
}
