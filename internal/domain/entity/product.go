package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto do catálogo global.
// Price e Cost são independentes de loja; o estoque é por loja em InventoryEntry.
type Product struct {
	ID           string
	SKU          string // código único global
	InternalCode string
	Name         string
	Description  string
	ImageURL     string
	Price        decimal.Decimal // preço de venda
	Cost         decimal.Decimal // custo unitário (base do CMV)
	Category     string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
