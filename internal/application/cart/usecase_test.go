package cart_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdvlojas/pdv-api/internal/application/cart"
	"github.com/pdvlojas/pdv-api/internal/apptest"
	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/entity"
)

const (
	testStoreID = "00000000-0000-0000-0000-00000000000a"
	testUserID  = "00000000-0000-0000-0000-00000000000b"
)

var testActor = domain.Actor{UserID: testUserID, Role: domain.RoleCashier, StoreID: testStoreID}

// buildCartUC monta o caso de uso sobre um banco em memória com um produto
// de R$ 10,00 e, opcionalmente, caixa aberto.
func buildCartUC(t *testing.T, registerOpen bool) (*cart.UseCase, *apptest.MemDB) {
	t.Helper()
	db := apptest.NewMemDB()
	db.Products["p1"] = &entity.Product{
		ID:     "p1",
		SKU:    "SKU-1",
		Name:   "Água Mineral 500ml",
		Price:  decimal.NewFromInt(10),
		Cost:   decimal.NewFromInt(4),
		Active: true,
	}
	db.Stock[apptest.StockKey(testStoreID, "p1")] = &entity.InventoryEntry{
		StoreID: testStoreID, ProductID: "p1", Quantity: 5, MinQuantity: 2,
	}
	if registerOpen {
		db.Sessions["sess1"] = &entity.RegisterSession{
			ID: "sess1", StoreID: testStoreID, Status: entity.RegisterStatusOpen,
			OpenedBy: testUserID, OpeningBalance: decimal.NewFromInt(100), OpenedAt: time.Now(),
		}
	}
	uc := cart.NewUseCase(&apptest.TxRunner{DB: db}, &apptest.SaleRepo{DB: db}, &apptest.ProductRepo{DB: db}, &apptest.RegisterRepo{DB: db})
	return uc, db
}

// Sem caixa aberto, nenhuma operação de carrinho é permitida.
func TestGetOrCreateCart_SemCaixaAberto(t *testing.T) {
	uc, _ := buildCartUC(t, false)
	_, err := uc.GetOrCreateCart(context.Background(), testActor)
	assert.ErrorIs(t, err, domain.ErrNoOpenRegister)
}

// Primeiro acesso cria a venda OPEN vazia; o segundo devolve a mesma.
func TestGetOrCreateCart_CriaEReutiliza(t *testing.T) {
	uc, _ := buildCartUC(t, true)
	first, err := uc.GetOrCreateCart(context.Background(), testActor)
	require.NoError(t, err)
	assert.Empty(t, first.Items)
	assert.True(t, first.Total.IsZero())

	second, err := uc.GetOrCreateCart(context.Background(), testActor)
	require.NoError(t, err)
	assert.Equal(t, first.SaleID, second.SaleID, "deve reutilizar a venda OPEN existente")
}

// Adicionar o mesmo produto duas vezes mescla a linha e soma quantidades.
func TestAddItem_MesclaLinhaDoMesmoProduto(t *testing.T) {
	uc, _ := buildCartUC(t, true)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, testActor, "p1", 2)
	require.NoError(t, err)
	out, err := uc.AddItem(ctx, testActor, "p1", 3)
	require.NoError(t, err)

	require.Len(t, out.Items, 1, "mesmo produto não gera segunda linha")
	assert.Equal(t, int64(5), out.Items[0].Quantity)
	assert.True(t, out.Items[0].Subtotal.Equal(decimal.NewFromInt(50)))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(50)), "total = soma dos subtotais")
}

// Adicionar além do estoque é permitido no carrinho; a validação fica para o
// checkout. A resposta expõe o estoque atual para exibição.
func TestAddItem_NaoValidaEstoque(t *testing.T) {
	uc, _ := buildCartUC(t, true)
	out, err := uc.AddItem(context.Background(), testActor, "p1", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), out.Items[0].Quantity)
	assert.Equal(t, int64(5), out.Items[0].StockAvailable)
}

func TestAddItem_QuantidadeInvalida(t *testing.T) {
	uc, _ := buildCartUC(t, true)
	_, err := uc.AddItem(context.Background(), testActor, "p1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestAddItem_ProdutoInexistenteOuInativo(t *testing.T) {
	uc, db := buildCartUC(t, true)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, testActor, "nao-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	db.Products["p1"].Active = false
	_, err = uc.AddItem(ctx, testActor, "p1", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Alterar quantidade valida contra o estoque atual e devolve available.
func TestUpdateItemQuantity_EstoqueInsuficiente(t *testing.T) {
	uc, _ := buildCartUC(t, true)
	ctx := context.Background()

	out, err := uc.AddItem(ctx, testActor, "p1", 2)
	require.NoError(t, err)
	itemID := out.Items[0].ID

	_, err = uc.UpdateItemQuantity(ctx, testActor, itemID, 9)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(5), stockErr.Available)
	assert.Equal(t, int64(9), stockErr.Requested)
	assert.Equal(t, "Água Mineral 500ml", stockErr.ProductName)
}

func TestUpdateItemQuantity_RecalculaSubtotalETotal(t *testing.T) {
	uc, _ := buildCartUC(t, true)
	ctx := context.Background()

	out, err := uc.AddItem(ctx, testActor, "p1", 2)
	require.NoError(t, err)
	itemID := out.Items[0].ID

	item, err := uc.UpdateItemQuantity(ctx, testActor, itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), item.Quantity)
	assert.True(t, item.Subtotal.Equal(decimal.NewFromInt(40)))

	cartOut, err := uc.GetOrCreateCart(ctx, testActor)
	require.NoError(t, err)
	assert.True(t, cartOut.Total.Equal(decimal.NewFromInt(40)))
}

func TestUpdateItemQuantity_SemCarrinho(t *testing.T) {
	uc, _ := buildCartUC(t, true)
	_, err := uc.UpdateItemQuantity(context.Background(), testActor, "x", 1)
	assert.ErrorIs(t, err, domain.ErrNoOpenCart)
}

// Item de outra venda não é visível nem alterável por este ator.
func TestUpdateItemQuantity_ItemDeOutraVenda(t *testing.T) {
	uc, db := buildCartUC(t, true)
	ctx := context.Background()

	_, err := uc.AddItem(ctx, testActor, "p1", 1)
	require.NoError(t, err)
	db.Items["alheio"] = &entity.SaleItem{ID: "alheio", SaleID: "outra-venda", ProductID: "p1", Quantity: 1}

	_, err = uc.UpdateItemQuantity(ctx, testActor, "alheio", 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Remover a última linha apaga a venda (carrinho vazio não persiste).
func TestRemoveItem_UltimaLinhaApagaVenda(t *testing.T) {
	uc, db := buildCartUC(t, true)
	ctx := context.Background()

	out, err := uc.AddItem(ctx, testActor, "p1", 2)
	require.NoError(t, err)

	resp, err := uc.RemoveItem(ctx, testActor, out.Items[0].ID)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.SaleDeleted)
	assert.True(t, resp.SaleTotal.IsZero())
	assert.Empty(t, db.Sales, "a venda vazia deve ser apagada")
}

func TestRemoveItem_RecalculaTotal(t *testing.T) {
	uc, db := buildCartUC(t, true)
	ctx := context.Background()

	db.Products["p2"] = &entity.Product{ID: "p2", SKU: "SKU-2", Name: "Refrigerante", Price: decimal.NewFromInt(7), Active: true}
	out, err := uc.AddItem(ctx, testActor, "p1", 2)
	require.NoError(t, err)
	p1Item := out.Items[0].ID
	_, err = uc.AddItem(ctx, testActor, "p2", 1)
	require.NoError(t, err)

	resp, err := uc.RemoveItem(ctx, testActor, p1Item)
	require.NoError(t, err)
	assert.False(t, resp.SaleDeleted)
	assert.True(t, resp.SaleTotal.Equal(decimal.NewFromInt(7)))
}

func TestRemoveItem_SemCarrinho(t *testing.T) {
	uc, _ := buildCartUC(t, true)
	_, err := uc.RemoveItem(context.Background(), testActor, "x")
	assert.True(t, errors.Is(err, domain.ErrNoOpenCart))
}
