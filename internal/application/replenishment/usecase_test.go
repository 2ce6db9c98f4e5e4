package replenishment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/application/replenishment"
	"github.com/pdvlojas/pdv-api/internal/apptest"
	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/entity"
)

const (
	matrixID = "00000000-0000-0000-0000-000000000001"
	branchID = "00000000-0000-0000-0000-000000000002"
)

var (
	branchManager = domain.Actor{UserID: "u-ger", Role: domain.RoleManager, StoreID: branchID}
	branchCashier = domain.Actor{UserID: "u-cx", Role: domain.RoleCashier, StoreID: branchID}
	matrixAdmin   = domain.Actor{UserID: "u-adm", Role: domain.RoleAdmin, StoreID: matrixID}
)

func buildReplenishmentUC(t *testing.T) (*replenishment.UseCase, *apptest.MemDB) {
	t.Helper()
	db := apptest.NewMemDB()
	db.Stores[matrixID] = &entity.Store{ID: matrixID, Name: "Matriz", Kind: entity.StoreKindMatrix, Active: true}
	db.Stores[branchID] = &entity.Store{ID: branchID, Name: "Filial Centro", Kind: entity.StoreKindBranch, Active: true}
	uc := replenishment.NewUseCase(&apptest.TxRunner{DB: db}, &apptest.ReplenishmentRepo{DB: db}, &apptest.StoreRepo{DB: db})
	return uc, db
}

func validItems() []dto.ReplenishmentItemRequest {
	return []dto.ReplenishmentItemRequest{
		{ProductName: "Água Mineral 500ml", Quantity: 24},
		{ProductName: "Refrigerante 2L", Quantity: 12},
	}
}

func TestCreate_GerenteDeFilial(t *testing.T) {
	uc, db := buildReplenishmentUC(t)

	out, err := uc.Create(context.Background(), branchManager, dto.CreateReplenishmentRequest{Items: validItems()})
	require.NoError(t, err)
	assert.Equal(t, entity.ReplenishmentPending, out.Status)
	assert.Equal(t, branchID, out.StoreID)
	assert.Equal(t, "u-ger", out.CreatedBy)
	require.Len(t, out.Items, 2)
	assert.Equal(t, int64(24), out.Items[0].Quantity)
	assert.Len(t, db.Requests, 1)
}

func TestCreate_CaixaNaoPode(t *testing.T) {
	uc, _ := buildReplenishmentUC(t)
	_, err := uc.Create(context.Background(), branchCashier, dto.CreateReplenishmentRequest{Items: validItems()})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// A matriz não abre pedido de reposição contra si mesma.
func TestCreate_MatrizNaoPede(t *testing.T) {
	uc, _ := buildReplenishmentUC(t)
	_, err := uc.Create(context.Background(), matrixAdmin, dto.CreateReplenishmentRequest{Items: validItems()})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_ItensInvalidos(t *testing.T) {
	uc, _ := buildReplenishmentUC(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, branchManager, dto.CreateReplenishmentRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, branchManager, dto.CreateReplenishmentRequest{
		Items: []dto.ReplenishmentItemRequest{{ProductName: "   ", Quantity: 5}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, branchManager, dto.CreateReplenishmentRequest{
		Items: []dto.ReplenishmentItemRequest{{ProductName: "Suco", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_FluxoCompleto(t *testing.T) {
	uc, _ := buildReplenishmentUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, branchManager, dto.CreateReplenishmentRequest{Items: validItems()})
	require.NoError(t, err)

	out, err := uc.UpdateStatus(ctx, matrixAdmin, created.ID, entity.ReplenishmentProcessing)
	require.NoError(t, err)
	assert.Equal(t, entity.ReplenishmentProcessing, out.Status)

	out, err = uc.UpdateStatus(ctx, matrixAdmin, created.ID, entity.ReplenishmentShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.ReplenishmentShipped, out.Status)
}

func TestUpdateStatus_TransicaoInvalida(t *testing.T) {
	uc, _ := buildReplenishmentUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, branchManager, dto.CreateReplenishmentRequest{Items: validItems()})
	require.NoError(t, err)

	// PENDING não vai direto para SHIPPED.
	_, err = uc.UpdateStatus(ctx, matrixAdmin, created.ID, entity.ReplenishmentShipped)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// SHIPPED é terminal.
	_, err = uc.UpdateStatus(ctx, matrixAdmin, created.ID, entity.ReplenishmentProcessing)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, matrixAdmin, created.ID, entity.ReplenishmentShipped)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, matrixAdmin, created.ID, entity.ReplenishmentCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_CancelamentoAPartirDePendingOuProcessing(t *testing.T) {
	uc, _ := buildReplenishmentUC(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, branchManager, dto.CreateReplenishmentRequest{Items: validItems()})
	require.NoError(t, err)
	out, err := uc.UpdateStatus(ctx, matrixAdmin, first.ID, entity.ReplenishmentCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.ReplenishmentCancelled, out.Status)

	second, err := uc.Create(ctx, branchManager, dto.CreateReplenishmentRequest{Items: validItems()})
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, matrixAdmin, second.ID, entity.ReplenishmentProcessing)
	require.NoError(t, err)
	out, err = uc.UpdateStatus(ctx, matrixAdmin, second.ID, entity.ReplenishmentCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.ReplenishmentCancelled, out.Status)
}

// Só o ADMIN da matriz processa pedidos.
func TestUpdateStatus_SomenteAdminDaMatriz(t *testing.T) {
	uc, _ := buildReplenishmentUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, branchManager, dto.CreateReplenishmentRequest{Items: validItems()})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, branchManager, created.ID, entity.ReplenishmentProcessing)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	branchAdmin := domain.Actor{UserID: "u-adm2", Role: domain.RoleAdmin, StoreID: branchID}
	_, err = uc.UpdateStatus(ctx, branchAdmin, created.ID, entity.ReplenishmentProcessing)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_PedidoInexistente(t *testing.T) {
	uc, _ := buildReplenishmentUC(t)
	_, err := uc.UpdateStatus(context.Background(), matrixAdmin, "nao-existe", entity.ReplenishmentProcessing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_FilialSoVeOProprio(t *testing.T) {
	uc, _ := buildReplenishmentUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, branchManager, dto.CreateReplenishmentRequest{Items: validItems()})
	require.NoError(t, err)

	outsider := domain.Actor{UserID: "u9", Role: domain.RoleManager, StoreID: "outra-filial"}
	_, err = uc.Get(ctx, outsider, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Get(ctx, matrixAdmin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, out.ID)
}

// O ADMIN da matriz lista pedidos de todas as filiais; a filial, só os seus.
func TestList_VisaoGlobalDaMatriz(t *testing.T) {
	uc, db := buildReplenishmentUC(t)
	ctx := context.Background()

	otherBranch := "00000000-0000-0000-0000-000000000003"
	db.Stores[otherBranch] = &entity.Store{ID: otherBranch, Name: "Filial Norte", Kind: entity.StoreKindBranch, Active: true}
	otherManager := domain.Actor{UserID: "u-ger2", Role: domain.RoleManager, StoreID: otherBranch}

	_, err := uc.Create(ctx, branchManager, dto.CreateReplenishmentRequest{Items: validItems()})
	require.NoError(t, err)
	_, err = uc.Create(ctx, otherManager, dto.CreateReplenishmentRequest{Items: validItems()})
	require.NoError(t, err)

	all, err := uc.List(ctx, matrixAdmin, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2, "a matriz enxerga todas as filiais")

	mine, err := uc.List(ctx, branchManager, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, mine, 1, "a filial só enxerga os próprios pedidos")
}
