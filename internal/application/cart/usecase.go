package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/entity"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

// UseCase gerencia o ciclo de vida do carrinho: a venda OPEN de um
// (usuário, loja). O estoque é apenas consultado aqui, nunca decrementado;
// o decremento acontece só no checkout.
type UseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	registerRepo repository.RegisterSessionRepository
}

// NewUseCase constrói o caso de uso do carrinho.
func NewUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	registerRepo repository.RegisterSessionRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		registerRepo: registerRepo,
	}
}

// GetOrCreateCart devolve a venda OPEN do usuário na loja; se não existir,
// cria uma venda vazia atada ao caixa aberto. Falha com ErrNoOpenRegister se
// a loja não tem caixa aberto.
func (uc *UseCase) GetOrCreateCart(ctx context.Context, actor domain.Actor) (*dto.CartResponse, error) {
	session, err := uc.registerRepo.GetOpenByStore(ctx, actor.StoreID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNoOpenRegister
	}

	sale, err := uc.saleRepo.GetOpenByUserAndStore(ctx, actor.UserID, actor.StoreID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		now := time.Now()
		sale = &entity.Sale{
			ID:                uuid.New().String(),
			StoreID:           actor.StoreID,
			RegisterSessionID: session.ID,
			UserID:            actor.UserID,
			Status:            entity.SaleStatusOpen,
			Date:              now,
			Total:             decimal.Zero,
			CMV:               decimal.Zero,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := uc.saleRepo.Create(ctx, sale); err != nil {
			return nil, err
		}
	}
	return uc.toCartResponse(ctx, sale)
}

// AddItem acrescenta ou mescla uma linha do produto no carrinho, com snapshot
// do preço de catálogo. Não valida estoque (a validação é adiada ao checkout),
// mas a resposta traz o estoque atual para exibição.
func (uc *UseCase) AddItem(ctx context.Context, actor domain.Actor, productID string, quantity int64) (*dto.CartResponse, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrNotFound
	}
	session, err := uc.registerRepo.GetOpenByStore(ctx, actor.StoreID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNoOpenRegister
	}

	var saleID string
	err = uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.InventoryRepository,
		_ repository.ProductRepository,
	) error {
		sale, err := saleRepo.GetOpenForUpdate(ctx, actor.UserID, actor.StoreID)
		if err != nil {
			return err
		}
		if sale == nil {
			now := time.Now()
			sale = &entity.Sale{
				ID:                uuid.New().String(),
				StoreID:           actor.StoreID,
				RegisterSessionID: session.ID,
				UserID:            actor.UserID,
				Status:            entity.SaleStatusOpen,
				Date:              now,
				Total:             decimal.Zero,
				CMV:               decimal.Zero,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := saleRepo.Create(ctx, sale); err != nil {
				return err
			}
		}
		saleID = sale.ID

		existing, err := saleRepo.GetItemByProduct(ctx, sale.ID, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			newQty := existing.Quantity + quantity
			subtotal := existing.UnitPrice.Mul(decimal.NewFromInt(newQty))
			if err := saleRepo.UpdateItemQuantity(ctx, existing.ID, newQty, subtotal); err != nil {
				return err
			}
		} else {
			item := &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: productID,
				Quantity:  quantity,
				UnitPrice: product.Price,
				Subtotal:  product.Price.Mul(decimal.NewFromInt(quantity)),
			}
			if err := saleRepo.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return uc.recomputeTotal(ctx, saleRepo, sale.ID)
	})
	if err != nil {
		return nil, err
	}

	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return uc.toCartResponse(ctx, sale)
}

// UpdateItemQuantity altera a quantidade de uma linha do carrinho, validando
// contra o estoque atual da loja (consulta, não reserva). Recalcula subtotal
// e total na mesma transação.
func (uc *UseCase) UpdateItemQuantity(ctx context.Context, actor domain.Actor, itemID string, newQuantity int64) (*dto.CartItemResponse, error) {
	if newQuantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	var saleID string
	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
	) error {
		sale, err := saleRepo.GetOpenForUpdate(ctx, actor.UserID, actor.StoreID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNoOpenCart
		}
		item, err := saleRepo.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.SaleID != sale.ID {
			return domain.ErrNotFound
		}

		stock, err := invRepo.Get(ctx, actor.StoreID, item.ProductID)
		if err != nil {
			return err
		}
		if newQuantity > stock.Quantity {
			product, err := productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			name := item.ProductID
			if product != nil {
				name = product.Name
			}
			return &domain.InsufficientStockError{
				ProductID:   item.ProductID,
				ProductName: name,
				Requested:   newQuantity,
				Available:   stock.Quantity,
			}
		}

		subtotal := item.UnitPrice.Mul(decimal.NewFromInt(newQuantity))
		if err := saleRepo.UpdateItemQuantity(ctx, item.ID, newQuantity, subtotal); err != nil {
			return err
		}
		saleID = sale.ID
		return uc.recomputeTotal(ctx, saleRepo, sale.ID)
	})
	if err != nil {
		return nil, err
	}

	rows, err := uc.saleRepo.ListItemsDetailed(ctx, saleID, actor.StoreID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.ItemID == itemID {
			resp := toCartItemResponse(row)
			return &resp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// RemoveItem remove uma linha do carrinho e recalcula o total. Se a venda
// ficar vazia, é apagada (limpeza preguiçosa: carrinho vazio não persiste).
func (uc *UseCase) RemoveItem(ctx context.Context, actor domain.Actor, itemID string) (*dto.RemoveCartItemResponse, error) {
	resp := &dto.RemoveCartItemResponse{SaleTotal: decimal.Zero}
	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.InventoryRepository,
		_ repository.ProductRepository,
	) error {
		sale, err := saleRepo.GetOpenForUpdate(ctx, actor.UserID, actor.StoreID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNoOpenCart
		}
		item, err := saleRepo.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.SaleID != sale.ID {
			return domain.ErrNotFound
		}
		if err := saleRepo.DeleteItem(ctx, item.ID); err != nil {
			return err
		}
		items, err := saleRepo.ListItems(ctx, sale.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			if err := saleRepo.Delete(ctx, sale.ID); err != nil {
				return err
			}
			resp.SaleDeleted = true
			resp.SaleTotal = decimal.Zero
			resp.Success = true
			return nil
		}
		total := entity.SumSubtotals(items)
		if err := saleRepo.UpdateTotal(ctx, sale.ID, total); err != nil {
			return err
		}
		resp.SaleTotal = total
		resp.Success = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// recomputeTotal reimpõe o invariante total = soma dos subtotais.
func (uc *UseCase) recomputeTotal(ctx context.Context, saleRepo repository.SaleRepository, saleID string) error {
	items, err := saleRepo.ListItems(ctx, saleID)
	if err != nil {
		return err
	}
	return saleRepo.UpdateTotal(ctx, saleID, entity.SumSubtotals(items))
}

func (uc *UseCase) toCartResponse(ctx context.Context, sale *entity.Sale) (*dto.CartResponse, error) {
	rows, err := uc.saleRepo.ListItemsDetailed(ctx, sale.ID, sale.StoreID)
	if err != nil {
		return nil, err
	}
	resp := &dto.CartResponse{
		SaleID: sale.ID,
		Total:  sale.Total,
		Items:  make([]dto.CartItemResponse, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Items = append(resp.Items, toCartItemResponse(row))
	}
	return resp, nil
}

func toCartItemResponse(row repository.CartItemRow) dto.CartItemResponse {
	return dto.CartItemResponse{
		ID:             row.ItemID,
		ProductID:      row.ProductID,
		ProductName:    row.ProductName,
		SKU:            row.SKU,
		Quantity:       row.Quantity,
		UnitPrice:      row.UnitPrice,
		Subtotal:       row.Subtotal,
		StockAvailable: row.StockAvailable,
		StockMin:       row.StockMin,
	}
}
