package dto

import "github.com/shopspring/decimal"

// OpenRegisterRequest body para POST /api/register/open.
type OpenRegisterRequest struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// RegisterSessionResponse caixa em respostas.
type RegisterSessionResponse struct {
	ID             string          `json:"id"`
	StoreID        string          `json:"store_id"`
	Status         string          `json:"status"`
	OpenedBy       string          `json:"opened_by"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	OpenedAt       string          `json:"opened_at"`
	ClosedAt       string          `json:"closed_at,omitempty"`
}
