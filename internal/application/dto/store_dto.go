package dto

// CreateStoreRequest body para POST /api/stores (admin da matriz).
type CreateStoreRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Kind    string `json:"kind"` // MATRIX | BRANCH
}

// StoreResponse loja em respostas.
type StoreResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Kind    string `json:"kind"`
	Active  bool   `json:"active"`
}
