package entity

import "time"

// Estados de um pedido de reposição filial → matriz.
const (
	ReplenishmentPending    = "PENDING"
	ReplenishmentProcessing = "PROCESSING"
	ReplenishmentShipped    = "SHIPPED"
	ReplenishmentCancelled  = "CANCELLED"
)

// ValidReplenishmentTransition valida a máquina de estados:
// PENDING → PROCESSING → SHIPPED; PENDING/PROCESSING → CANCELLED.
func ValidReplenishmentTransition(from, to string) bool {
	switch from {
	case ReplenishmentPending:
		return to == ReplenishmentProcessing || to == ReplenishmentCancelled
	case ReplenishmentProcessing:
		return to == ReplenishmentShipped || to == ReplenishmentCancelled
	}
	return false
}

// ReplenishmentRequest é um pedido de reposição de uma filial à matriz.
// As linhas são texto livre (nome + quantidade), desacopladas do catálogo:
// a filial pode pedir itens ainda não modelados como Product.
type ReplenishmentRequest struct {
	ID        string
	StoreID   string
	CreatedBy string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []*ReplenishmentItem
}

// ReplenishmentItem é uma linha do pedido de reposição.
type ReplenishmentItem struct {
	ID          string
	RequestID   string
	ProductName string
	Quantity    int64 // >= 1
}
