// Package apptest fornece repositórios em memória para os testes dos casos
// de uso. Os fakes cumprem os portos de repository e o TxRunner executa os
// callbacks diretamente, sem transação real.
package apptest

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/domain/entity"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

// MemDB banco em memória compartilhado pelos fakes.
type MemDB struct {
	Mu       sync.Mutex
	Stores   map[string]*entity.Store
	Products map[string]*entity.Product
	Stock    map[string]*entity.InventoryEntry // StoreID|ProductID
	Sales    map[string]*entity.Sale
	Items    map[string]*entity.SaleItem
	Sessions map[string]*entity.RegisterSession
	Payments map[string]*entity.Payment // por SaleID
	Expenses map[string]*entity.Expense
	Requests map[string]*entity.ReplenishmentRequest
}

// NewMemDB cria o banco vazio.
func NewMemDB() *MemDB {
	return &MemDB{
		Stores:   map[string]*entity.Store{},
		Products: map[string]*entity.Product{},
		Stock:    map[string]*entity.InventoryEntry{},
		Sales:    map[string]*entity.Sale{},
		Items:    map[string]*entity.SaleItem{},
		Sessions: map[string]*entity.RegisterSession{},
		Payments: map[string]*entity.Payment{},
		Expenses: map[string]*entity.Expense{},
		Requests: map[string]*entity.ReplenishmentRequest{},
	}
}

// StockKey chave de estoque por (loja, produto).
func StockKey(storeID, productID string) string { return storeID + "|" + productID }

// TxRunner fake: executa os callbacks sobre os fakes, sem transação.
type TxRunner struct{ DB *MemDB }

func (r *TxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(&SaleRepo{DB: r.DB}, &InventoryRepo{DB: r.DB}, &ProductRepo{DB: r.DB})
}

func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return fn(&SaleRepo{DB: r.DB}, &InventoryRepo{DB: r.DB}, &ProductRepo{DB: r.DB}, &PaymentRepo{DB: r.DB})
}

func (r *TxRunner) RunReplenishment(ctx context.Context, fn func(
	repo repository.ReplenishmentRepository,
) error) error {
	return fn(&ReplenishmentRepo{DB: r.DB})
}

// SaleRepo fake de SaleRepository.
type SaleRepo struct{ DB *MemDB }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	cp := *sale
	r.DB.Sales[sale.ID] = &cp
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	s, ok := r.DB.Sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *SaleRepo) GetOpenByUserAndStore(_ context.Context, userID, storeID string) (*entity.Sale, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	for _, s := range r.DB.Sales {
		if s.UserID == userID && s.StoreID == storeID && s.Status == entity.SaleStatusOpen {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *SaleRepo) GetOpenForUpdate(ctx context.Context, userID, storeID string) (*entity.Sale, error) {
	return r.GetOpenByUserAndStore(ctx, userID, storeID)
}

func (r *SaleRepo) UpdateTotal(_ context.Context, id string, total decimal.Decimal) error {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	if s, ok := r.DB.Sales[id]; ok {
		s.Total = total
	}
	return nil
}

func (r *SaleRepo) Delete(_ context.Context, id string) error {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	delete(r.DB.Sales, id)
	for itemID, it := range r.DB.Items {
		if it.SaleID == id {
			delete(r.DB.Items, itemID)
		}
	}
	return nil
}

func (r *SaleRepo) Finalize(_ context.Context, id string, total, cmv decimal.Decimal, code string, date time.Time) (bool, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	s, ok := r.DB.Sales[id]
	if !ok || s.Status != entity.SaleStatusOpen {
		return false, nil
	}
	s.Status = entity.SaleStatusFinalized
	s.Total = total
	s.CMV = cmv
	s.TransactionCode = code
	s.Date = date
	return true, nil
}

func (r *SaleRepo) ListByStore(_ context.Context, storeID, status string, limit, offset int) ([]*entity.Sale, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.DB.Sales {
		if s.StoreID == storeID && s.Status == status {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *SaleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	cp := *item
	r.DB.Items[item.ID] = &cp
	return nil
}

func (r *SaleRepo) GetItem(_ context.Context, itemID string) (*entity.SaleItem, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	it, ok := r.DB.Items[itemID]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *SaleRepo) GetItemByProduct(_ context.Context, saleID, productID string) (*entity.SaleItem, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	for _, it := range r.DB.Items {
		if it.SaleID == saleID && it.ProductID == productID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *SaleRepo) UpdateItemQuantity(_ context.Context, itemID string, quantity int64, subtotal decimal.Decimal) error {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	if it, ok := r.DB.Items[itemID]; ok {
		it.Quantity = quantity
		it.Subtotal = subtotal
	}
	return nil
}

func (r *SaleRepo) DeleteItem(_ context.Context, itemID string) error {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	delete(r.DB.Items, itemID)
	return nil
}

func (r *SaleRepo) ListItems(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	var out []*entity.SaleItem
	for _, it := range r.DB.Items {
		if it.SaleID == saleID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *SaleRepo) ListItemsDetailed(_ context.Context, saleID, storeID string) ([]repository.CartItemRow, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	var out []repository.CartItemRow
	for _, it := range r.DB.Items {
		if it.SaleID != saleID {
			continue
		}
		row := repository.CartItemRow{
			ItemID:    it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		}
		if p, ok := r.DB.Products[it.ProductID]; ok {
			row.ProductName = p.Name
			row.SKU = p.SKU
		}
		if st, ok := r.DB.Stock[StockKey(storeID, it.ProductID)]; ok {
			row.StockAvailable = st.Quantity
			row.StockMin = st.MinQuantity
		}
		out = append(out, row)
	}
	return out, nil
}

// InventoryRepo fake de InventoryRepository.
type InventoryRepo struct{ DB *MemDB }

func (r *InventoryRepo) Get(_ context.Context, storeID, productID string) (*entity.InventoryEntry, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	if e, ok := r.DB.Stock[StockKey(storeID, productID)]; ok {
		cp := *e
		return &cp, nil
	}
	return &entity.InventoryEntry{StoreID: storeID, ProductID: productID}, nil
}

func (r *InventoryRepo) GetForUpdate(ctx context.Context, storeID, productID string) (*entity.InventoryEntry, error) {
	return r.Get(ctx, storeID, productID)
}

func (r *InventoryRepo) Upsert(_ context.Context, e *entity.InventoryEntry) error {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	cp := *e
	r.DB.Stock[StockKey(e.StoreID, e.ProductID)] = &cp
	return nil
}

func (r *InventoryRepo) ListByStore(_ context.Context, storeID string) ([]repository.InventoryRow, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	var out []repository.InventoryRow
	for _, e := range r.DB.Stock {
		if e.StoreID != storeID {
			continue
		}
		row := repository.InventoryRow{
			StoreID:     e.StoreID,
			ProductID:   e.ProductID,
			Quantity:    e.Quantity,
			MinQuantity: e.MinQuantity,
		}
		if p, ok := r.DB.Products[e.ProductID]; ok {
			row.SKU = p.SKU
			row.ProductName = p.Name
		}
		out = append(out, row)
	}
	return out, nil
}

// ProductRepo fake de ProductRepository.
type ProductRepo struct{ DB *MemDB }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	cp := *p
	r.DB.Products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.Create(ctx, p)
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	if p, ok := r.DB.Products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	for _, p := range r.DB.Products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Product, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	var out []*entity.Product
	for _, p := range r.DB.Products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// RegisterRepo fake de RegisterSessionRepository.
type RegisterRepo struct{ DB *MemDB }

func (r *RegisterRepo) Create(_ context.Context, s *entity.RegisterSession) error {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	cp := *s
	r.DB.Sessions[s.ID] = &cp
	return nil
}

func (r *RegisterRepo) GetByID(_ context.Context, id string) (*entity.RegisterSession, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	if s, ok := r.DB.Sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *RegisterRepo) GetOpenByStore(_ context.Context, storeID string) (*entity.RegisterSession, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	for _, s := range r.DB.Sessions {
		if s.StoreID == storeID && s.Status == entity.RegisterStatusOpen {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *RegisterRepo) Close(_ context.Context, id string, closedAt time.Time) (bool, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	s, ok := r.DB.Sessions[id]
	if !ok || s.Status != entity.RegisterStatusOpen {
		return false, nil
	}
	s.Status = entity.RegisterStatusClosed
	s.ClosedAt = &closedAt
	return true, nil
}

// PaymentRepo fake de PaymentRepository.
type PaymentRepo struct{ DB *MemDB }

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	cp := *p
	r.DB.Payments[p.SaleID] = &cp
	return nil
}

func (r *PaymentRepo) GetBySaleID(_ context.Context, saleID string) (*entity.Payment, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	if p, ok := r.DB.Payments[saleID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

// StoreRepo fake de StoreRepository.
type StoreRepo struct{ DB *MemDB }

func (r *StoreRepo) Create(_ context.Context, s *entity.Store) error {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	cp := *s
	r.DB.Stores[s.ID] = &cp
	return nil
}

func (r *StoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	if s, ok := r.DB.Stores[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *StoreRepo) List(_ context.Context) ([]*entity.Store, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	var out []*entity.Store
	for _, s := range r.DB.Stores {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

// ExpenseRepo fake de ExpenseRepository.
type ExpenseRepo struct{ DB *MemDB }

func (r *ExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	cp := *e
	r.DB.Expenses[e.ID] = &cp
	return nil
}

func (r *ExpenseRepo) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	if e, ok := r.DB.Expenses[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (r *ExpenseRepo) ListByStore(_ context.Context, storeID string, onlyUnpaid bool, limit, offset int) ([]*entity.Expense, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	var out []*entity.Expense
	for _, e := range r.DB.Expenses {
		if e.StoreID != storeID {
			continue
		}
		if onlyUnpaid && e.Paid {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ExpenseRepo) MarkPaid(_ context.Context, id string, paymentDate time.Time) (bool, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	e, ok := r.DB.Expenses[id]
	if !ok || e.Paid {
		return false, nil
	}
	e.Paid = true
	e.PaymentDate = &paymentDate
	return true, nil
}

// ReplenishmentRepo fake de ReplenishmentRepository.
type ReplenishmentRepo struct{ DB *MemDB }

func (r *ReplenishmentRepo) Create(_ context.Context, req *entity.ReplenishmentRequest) error {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	cp := *req
	r.DB.Requests[req.ID] = &cp
	return nil
}

func (r *ReplenishmentRepo) GetByID(_ context.Context, id string) (*entity.ReplenishmentRequest, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	if req, ok := r.DB.Requests[id]; ok {
		cp := *req
		return &cp, nil
	}
	return nil, nil
}

func (r *ReplenishmentRepo) List(_ context.Context, storeID string, limit, offset int) ([]*entity.ReplenishmentRequest, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	var out []*entity.ReplenishmentRequest
	for _, req := range r.DB.Requests {
		if storeID != "" && req.StoreID != storeID {
			continue
		}
		cp := *req
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ReplenishmentRepo) UpdateStatus(_ context.Context, id, expectedFrom, to string, updatedAt time.Time) (bool, error) {
	r.DB.Mu.Lock()
	defer r.DB.Mu.Unlock()
	req, ok := r.DB.Requests[id]
	if !ok || req.Status != expectedFrom {
		return false, nil
	}
	req.Status = to
	req.UpdatedAt = updatedAt
	return true, nil
}

// SummaryCache fake: mapa em memória com contadores de uso.
type SummaryCache struct {
	Mu          sync.Mutex
	Entries     map[string]*dto.FinancialSummaryDTO
	Invalidated []string
	GetCalls    int
	SetCalls    int
}

// NewSummaryCache cria o cache fake vazio.
func NewSummaryCache() *SummaryCache {
	return &SummaryCache{Entries: map[string]*dto.FinancialSummaryDTO{}}
}

func (c *SummaryCache) GetSummary(_ context.Context, storeID string) (*dto.FinancialSummaryDTO, bool, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.GetCalls++
	if s, ok := c.Entries[storeID]; ok {
		cp := *s
		return &cp, true, nil
	}
	return nil, false, nil
}

func (c *SummaryCache) SetSummary(_ context.Context, storeID string, summary *dto.FinancialSummaryDTO) error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.SetCalls++
	cp := *summary
	c.Entries[storeID] = &cp
	return nil
}

func (c *SummaryCache) Invalidate(_ context.Context, storeID string) error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	delete(c.Entries, storeID)
	c.Invalidated = append(c.Invalidated, storeID)
	return nil
}
