package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// FinalizeSaleRequest body para POST /api/checkout.
// PaymentDetail é um blob opaco específico do método.
type FinalizeSaleRequest struct {
	PaymentMethod string          `json:"payment_method"`
	PaymentDetail json.RawMessage `json:"payment_detail,omitempty"`
}

// SaleItemResponse linha de uma venda em respostas.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PaymentResponse pagamento registrado da venda.
type PaymentResponse struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
	Detail json.RawMessage `json:"detail,omitempty"`
}

// SaleResponse agregado da venda finalizada (insumo do recibo).
type SaleResponse struct {
	ID              string             `json:"id"`
	StoreID         string             `json:"store_id"`
	UserID          string             `json:"user_id"`
	Status          string             `json:"status"`
	Date            string             `json:"date"`
	Total           decimal.Decimal    `json:"total"`
	CMV             decimal.Decimal    `json:"cmv"`
	TransactionCode string             `json:"transaction_code,omitempty"`
	Items           []SaleItemResponse `json:"items"`
	Payment         *PaymentResponse   `json:"payment,omitempty"`
}
