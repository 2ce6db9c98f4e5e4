package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/entity"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

// UseCase é o motor de checkout: valida a venda OPEN contra o estoque,
// calcula total e CMV, transiciona a venda para FINALIZED, decrementa o
// estoque e registra o pagamento — tudo em uma única transação.
type UseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	paymentRepo  repository.PaymentRepository
	registerRepo repository.RegisterSessionRepository
	invalidator  SummaryInvalidator
}

// NewUseCase constrói o motor de checkout.
func NewUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	registerRepo repository.RegisterSessionRepository,
	invalidator SummaryInvalidator,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		registerRepo: registerRepo,
		invalidator:  invalidator,
	}
}

// Finalize transiciona a venda OPEN do usuário para FINALIZED.
//
// Dentro da transação: bloqueia a venda (FOR UPDATE), recalcula subtotais e
// CMV por linha, bloqueia e decrementa condicionalmente cada linha de
// estoque (rejeita com InsufficientStockError nomeando o produto em falta —
// nunca trunca para zero em silêncio), aplica o compare-and-swap de status e
// cria o pagamento com amount = total. Qualquer falha desfaz tudo: a venda
// permanece OPEN e o estoque intacto.
//
// Dois finalize concorrentes sobre a mesma venda: o segundo ou bloqueia no
// lock e depois não encontra venda OPEN, ou perde o CAS — ambos resultam em
// ErrNoOpenCart.
func (uc *UseCase) Finalize(ctx context.Context, actor domain.Actor, in dto.FinalizeSaleRequest) (*dto.SaleResponse, error) {
	if !entity.IsValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	session, err := uc.registerRepo.GetOpenByStore(ctx, actor.StoreID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNoOpenRegister
	}

	var saleID string
	var payment *entity.Payment
	err = uc.txRunner.RunCheckout(ctx, func(
		saleRepo repository.SaleRepository,
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		sale, err := saleRepo.GetOpenForUpdate(ctx, actor.UserID, actor.StoreID)
		if err != nil {
			return err
		}
		if sale == nil || sale.RegisterSessionID != session.ID {
			return domain.ErrNoOpenCart
		}
		items, err := saleRepo.ListItems(ctx, sale.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrEmptyCart
		}

		now := time.Now()
		total := decimal.Zero
		cmv := decimal.Zero
		for _, item := range items {
			product, err := productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			qty := decimal.NewFromInt(item.Quantity)
			// Recalcula o subtotal; se a linha não tem snapshot de preço,
			// cai no preço de catálogo.
			unitPrice := item.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = product.Price
			}
			total = total.Add(unitPrice.Mul(qty))
			cmv = cmv.Add(product.Cost.Mul(qty))

			stock, err := invRepo.GetForUpdate(ctx, actor.StoreID, item.ProductID)
			if err != nil {
				return err
			}
			if stock.Quantity < item.Quantity {
				return &domain.InsufficientStockError{
					ProductID:   item.ProductID,
					ProductName: product.Name,
					Requested:   item.Quantity,
					Available:   stock.Quantity,
				}
			}
			stock.Quantity -= item.Quantity
			stock.UpdatedAt = now
			if err := invRepo.Upsert(ctx, stock); err != nil {
				return err
			}
		}

		code := fmt.Sprintf("VND-%d", now.Unix())
		ok, err := saleRepo.Finalize(ctx, sale.ID, total, cmv, code, now)
		if err != nil {
			return err
		}
		if !ok {
			// A venda deixou de estar OPEN entre o lock e o update.
			return domain.ErrNoOpenCart
		}

		payment = &entity.Payment{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			Method:    in.PaymentMethod,
			Amount:    total,
			Detail:    in.PaymentDetail,
			CreatedAt: now,
		}
		if err := paymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		saleID = sale.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Cache do resumo financeiro fica obsoleto após a venda.
	_ = uc.invalidator.Invalidate(ctx, actor.StoreID)

	return uc.GetSale(ctx, actor, saleID)
}

// GetSale devolve o agregado completo da venda (linhas, produto, pagamento),
// adequado para a renderização de recibo pelo colaborador externo.
func (uc *UseCase) GetSale(ctx context.Context, actor domain.Actor, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.StoreID != actor.StoreID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	rows, err := uc.saleRepo.ListItemsDetailed(ctx, sale.ID, sale.StoreID)
	if err != nil {
		return nil, err
	}
	resp := &dto.SaleResponse{
		ID:              sale.ID,
		StoreID:         sale.StoreID,
		UserID:          sale.UserID,
		Status:          sale.Status,
		Date:            sale.Date.Format(time.RFC3339),
		Total:           sale.Total,
		CMV:             sale.CMV,
		TransactionCode: sale.TransactionCode,
		Items:           make([]dto.SaleItemResponse, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          row.ItemID,
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			SKU:         row.SKU,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
			Subtotal:    row.Subtotal,
		})
	}
	pay, err := uc.paymentRepo.GetBySaleID(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	if pay != nil {
		resp.Payment = &dto.PaymentResponse{
			ID:     pay.ID,
			Method: pay.Method,
			Amount: pay.Amount,
			Detail: pay.Detail,
		}
	}
	return resp, nil
}

// ListSales lista as vendas finalizadas da loja (histórico).
func (uc *UseCase) ListSales(ctx context.Context, actor domain.Actor, page dto.PageRequest) ([]*dto.SaleResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.ListByStore(ctx, actor.StoreID, entity.SaleStatusFinalized, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		out = append(out, &dto.SaleResponse{
			ID:              sale.ID,
			StoreID:         sale.StoreID,
			UserID:          sale.UserID,
			Status:          sale.Status,
			Date:            sale.Date.Format(time.RFC3339),
			Total:           sale.Total,
			CMV:             sale.CMV,
			TransactionCode: sale.TransactionCode,
			Items:           []dto.SaleItemResponse{},
		})
	}
	return out, nil
}
