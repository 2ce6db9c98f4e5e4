package dto

// ReplenishmentItemRequest linha do pedido: nome livre + quantidade.
// Deliberadamente desacoplado do catálogo (a filial pode pedir itens ainda
// não cadastrados como Product).
type ReplenishmentItemRequest struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

// CreateReplenishmentRequest body para POST /api/replenishments.
type CreateReplenishmentRequest struct {
	Items []ReplenishmentItemRequest `json:"items"`
}

// UpdateReplenishmentStatusRequest body para PUT /api/replenishments/:id/status.
type UpdateReplenishmentStatusRequest struct {
	Status string `json:"status"` // PROCESSING | SHIPPED | CANCELLED
}

// ReplenishmentItemResponse linha do pedido em respostas.
type ReplenishmentItemResponse struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

// ReplenishmentResponse pedido de reposição em respostas.
type ReplenishmentResponse struct {
	ID        string                      `json:"id"`
	StoreID   string                      `json:"store_id"`
	CreatedBy string                      `json:"created_by"`
	Status    string                      `json:"status"`
	CreatedAt string                      `json:"created_at"`
	Items     []ReplenishmentItemResponse `json:"items"`
}
