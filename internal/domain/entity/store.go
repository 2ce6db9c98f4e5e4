package entity

import "time"

// Tipos de loja. A MATRIX centraliza a administração e recebe os pedidos de
// reposição das BRANCH.
const (
	StoreKindMatrix = "MATRIX"
	StoreKindBranch = "BRANCH"
)

// Store representa uma loja da rede.
type Store struct {
	ID        string
	Name      string
	Address   string
	Kind      string // MATRIX | BRANCH
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
