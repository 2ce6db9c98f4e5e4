package checkout_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdvlojas/pdv-api/internal/application/checkout"
	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/apptest"
	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/entity"
)

const (
	testStoreID = "00000000-0000-0000-0000-00000000000a"
	testUserID  = "00000000-0000-0000-0000-00000000000b"
)

var testActor = domain.Actor{UserID: testUserID, Role: domain.RoleCashier, StoreID: testStoreID}

// buildCheckoutUC monta o cenário padrão: caixa aberto, venda OPEN com uma
// linha de 3 unidades de um produto de R$ 10,00 (custo R$ 4,00) e estoque 5.
func buildCheckoutUC(t *testing.T) (*checkout.UseCase, *apptest.MemDB, *apptest.SummaryCache) {
	t.Helper()
	db := apptest.NewMemDB()
	cache := apptest.NewSummaryCache()

	db.Products["p1"] = &entity.Product{
		ID: "p1", SKU: "SKU-1", Name: "Água Mineral 500ml",
		Price: decimal.NewFromInt(10), Cost: decimal.NewFromInt(4), Active: true,
	}
	db.Stock[apptest.StockKey(testStoreID, "p1")] = &entity.InventoryEntry{
		StoreID: testStoreID, ProductID: "p1", Quantity: 5, MinQuantity: 2,
	}
	db.Sessions["sess1"] = &entity.RegisterSession{
		ID: "sess1", StoreID: testStoreID, Status: entity.RegisterStatusOpen,
		OpenedBy: testUserID, OpeningBalance: decimal.NewFromInt(100), OpenedAt: time.Now(),
	}
	db.Sales["s1"] = &entity.Sale{
		ID: "s1", StoreID: testStoreID, RegisterSessionID: "sess1",
		UserID: testUserID, Status: entity.SaleStatusOpen,
	}
	db.Items["i1"] = &entity.SaleItem{
		ID: "i1", SaleID: "s1", ProductID: "p1", Quantity: 3,
		UnitPrice: decimal.NewFromInt(10), Subtotal: decimal.NewFromInt(30),
	}

	uc := checkout.NewUseCase(
		&apptest.TxRunner{DB: db},
		&apptest.SaleRepo{DB: db},
		&apptest.PaymentRepo{DB: db},
		&apptest.RegisterRepo{DB: db},
		cache,
	)
	return uc, db, cache
}

func TestFinalize_CaminhoFeliz(t *testing.T) {
	uc, db, cache := buildCheckoutUC(t)

	out, err := uc.Finalize(context.Background(), testActor, dto.FinalizeSaleRequest{PaymentMethod: entity.PaymentPix})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusFinalized, out.Status)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(30)), "total = 3 x R$ 10,00")
	assert.True(t, out.CMV.Equal(decimal.NewFromInt(12)), "cmv = 3 x R$ 4,00")
	assert.Contains(t, out.TransactionCode, "VND-")

	require.NotNil(t, out.Payment)
	assert.Equal(t, entity.PaymentPix, out.Payment.Method)
	assert.True(t, out.Payment.Amount.Equal(decimal.NewFromInt(30)), "pagamento cobre o total")

	stock := db.Stock[apptest.StockKey(testStoreID, "p1")]
	assert.Equal(t, int64(2), stock.Quantity, "estoque decrementado de 5 para 2")

	assert.Equal(t, []string{testStoreID}, cache.Invalidated, "resumo financeiro invalidado")
}

func TestFinalize_MetodoDePagamentoInvalido(t *testing.T) {
	uc, _, _ := buildCheckoutUC(t)
	_, err := uc.Finalize(context.Background(), testActor, dto.FinalizeSaleRequest{PaymentMethod: "CHEQUE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFinalize_SemCaixaAberto(t *testing.T) {
	uc, db, _ := buildCheckoutUC(t)
	db.Sessions["sess1"].Status = entity.RegisterStatusClosed

	_, err := uc.Finalize(context.Background(), testActor, dto.FinalizeSaleRequest{PaymentMethod: entity.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrNoOpenRegister)
}

func TestFinalize_SemCarrinho(t *testing.T) {
	uc, db, _ := buildCheckoutUC(t)
	delete(db.Sales, "s1")
	delete(db.Items, "i1")

	_, err := uc.Finalize(context.Background(), testActor, dto.FinalizeSaleRequest{PaymentMethod: entity.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrNoOpenCart)
}

// Venda OPEN presa a uma sessão anterior não pode ser finalizada na atual.
func TestFinalize_VendaDeSessaoAnterior(t *testing.T) {
	uc, db, _ := buildCheckoutUC(t)
	db.Sales["s1"].RegisterSessionID = "sessao-antiga"

	_, err := uc.Finalize(context.Background(), testActor, dto.FinalizeSaleRequest{PaymentMethod: entity.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrNoOpenCart)
}

func TestFinalize_CarrinhoVazio(t *testing.T) {
	uc, db, _ := buildCheckoutUC(t)
	delete(db.Items, "i1")

	_, err := uc.Finalize(context.Background(), testActor, dto.FinalizeSaleRequest{PaymentMethod: entity.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

// Estoque insuficiente rejeita o checkout inteiro nomeando o produto; nunca
// vende parcial nem trunca a quantidade.
func TestFinalize_EstoqueInsuficiente(t *testing.T) {
	uc, db, cache := buildCheckoutUC(t)
	db.Items["i1"].Quantity = 9
	db.Items["i1"].Subtotal = decimal.NewFromInt(90)

	_, err := uc.Finalize(context.Background(), testActor, dto.FinalizeSaleRequest{PaymentMethod: entity.PaymentPix})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Água Mineral 500ml", stockErr.ProductName)
	assert.Equal(t, int64(5), stockErr.Available)
	assert.Equal(t, int64(9), stockErr.Requested)

	assert.Equal(t, entity.SaleStatusOpen, db.Sales["s1"].Status, "a venda permanece OPEN")
	assert.Equal(t, int64(5), db.Stock[apptest.StockKey(testStoreID, "p1")].Quantity, "estoque intacto")
	assert.Empty(t, db.Payments, "nenhum pagamento registrado")
	assert.Empty(t, cache.Invalidated)
}

// Após um finalize bem-sucedido, não há mais venda OPEN para finalizar.
func TestFinalize_SegundaChamadaFalha(t *testing.T) {
	uc, _, _ := buildCheckoutUC(t)
	ctx := context.Background()

	_, err := uc.Finalize(ctx, testActor, dto.FinalizeSaleRequest{PaymentMethod: entity.PaymentPix})
	require.NoError(t, err)

	_, err = uc.Finalize(ctx, testActor, dto.FinalizeSaleRequest{PaymentMethod: entity.PaymentPix})
	assert.ErrorIs(t, err, domain.ErrNoOpenCart)
}

func TestGetSale_OutraLojaSemPermissao(t *testing.T) {
	uc, _, _ := buildCheckoutUC(t)
	outsider := domain.Actor{UserID: "u9", Role: domain.RoleCashier, StoreID: "outra-loja"}

	_, err := uc.GetSale(context.Background(), outsider, "s1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetSale_AdminEnxergaQualquerLoja(t *testing.T) {
	uc, _, _ := buildCheckoutUC(t)
	admin := domain.Actor{UserID: "u9", Role: domain.RoleAdmin, StoreID: "matriz"}

	out, err := uc.GetSale(context.Background(), admin, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", out.ID)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Água Mineral 500ml", out.Items[0].ProductName)
}

func TestGetSale_Inexistente(t *testing.T) {
	uc, _, _ := buildCheckoutUC(t)
	_, err := uc.GetSale(context.Background(), testActor, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
