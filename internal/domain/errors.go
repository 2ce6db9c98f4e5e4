package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o email já está cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("quantidade inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")
	ErrInsufficientStock  = errors.New("estoque insuficiente")
	ErrNoOpenRegister     = errors.New("nenhum caixa aberto para a loja")
	ErrNoOpenCart         = errors.New("nenhuma venda aberta para o usuário")
	ErrEmptyCart          = errors.New("o carrinho está vazio")
	ErrSaleFinalized      = errors.New("a venda já foi finalizada")
	ErrRegisterAlreadyOpen = errors.New("a loja já possui um caixa aberto")
	ErrInvalidTransition  = errors.New("transição de status inválida")
	ErrExpenseAlreadyPaid = errors.New("a despesa já foi paga")
)

// InsufficientStockError indica estoque insuficiente para um produto.
// Carrega a quantidade disponível para exibição ao cliente.
// errors.Is(err, ErrInsufficientStock) retorna true.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente para %q: solicitado %d, disponível %d",
		e.ProductName, e.Requested, e.Available)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
