package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de um caixa.
const (
	RegisterStatusOpen   = "OPEN"
	RegisterStatusClosed = "CLOSED"
)

// RegisterSession (caixa) é o período de trabalho de uma loja durante o qual
// vendas podem ser abertas e finalizadas. Invariante: no máximo uma sessão
// OPEN por loja.
type RegisterSession struct {
	ID             string
	StoreID        string
	Status         string // OPEN | CLOSED
	OpenedBy       string
	OpeningBalance decimal.Decimal
	OpenedAt       time.Time
	ClosedAt       *time.Time
}
