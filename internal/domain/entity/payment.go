package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pagamento aceitos.
const (
	PaymentPix        = "PIX"
	PaymentDebitCard  = "DEBIT_CARD"
	PaymentCreditCard = "CREDIT_CARD"
	PaymentBoleto     = "BOLETO"
	PaymentCash       = "CASH"
)

// IsValidPaymentMethod verifica se o método é conhecido.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentPix, PaymentDebitCard, PaymentCreditCard, PaymentBoleto, PaymentCash:
		return true
	}
	return false
}

// Payment registra o pagamento de uma venda finalizada (um para um).
// O pagamento é registrado, não processado: Detail é um blob opaco
// específico do método (ex.: bandeira do cartão, parcelas).
type Payment struct {
	ID        string
	SaleID    string
	Method    string
	Amount    decimal.Decimal // deve ser igual ao total da venda
	Detail    json.RawMessage
	CreatedAt time.Time
}
