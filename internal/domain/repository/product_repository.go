package repository

import (
	"context"

	"github.com/pdvlojas/pdv-api/internal/domain/entity"
)

// ProductRepository define o porto de persistência para o catálogo global.
// O núcleo de vendas trata produtos como entrada somente leitura: preço e
// custo são capturados (snapshot) na criação da linha e no checkout.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// List filtra por nome normalizado (sem acentos, minúsculas) quando
	// search não é vazio.
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error)
}
