package entity

import "time"

// InventoryEntry representa o estoque de um produto em uma loja.
// Invariante: Quantity nunca negativa; exatamente uma entrada por (loja, produto).
type InventoryEntry struct {
	StoreID     string
	ProductID   string
	Quantity    int64 // quantidade em mãos (>= 0)
	MinQuantity int64 // estoque mínimo para alerta de reposição (>= 0)
	UpdatedAt   time.Time
}

// BelowMinimum indica se a quantidade está abaixo do mínimo configurado.
func (e *InventoryEntry) BelowMinimum() bool {
	return e.Quantity < e.MinQuantity
}
