package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pdvlojas/pdv-api/internal/application/auth"
	"github.com/pdvlojas/pdv-api/internal/application/cart"
	"github.com/pdvlojas/pdv-api/internal/application/checkout"
	"github.com/pdvlojas/pdv-api/internal/application/financial"
	"github.com/pdvlojas/pdv-api/internal/application/register"
	"github.com/pdvlojas/pdv-api/internal/application/replenishment"
	"github.com/pdvlojas/pdv-api/internal/application/usecase"
	"github.com/pdvlojas/pdv-api/internal/domain"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC          *auth.UseCase
	CartUC          *cart.UseCase
	CheckoutUC      *checkout.UseCase
	RegisterUC      *register.UseCase
	FinancialUC     *financial.UseCase
	ReplenishmentUC *replenishment.UseCase
	ProductUC       *usecase.ProductUseCase
	StoreUC         *usecase.StoreUseCase
	InventoryUC     *usecase.InventoryUseCase
	ExpenseUC       *usecase.ExpenseUseCase
	JWTSecret       string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Carrinho (venda OPEN do usuário)
	cartGroup := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:id", cartHandler.UpdateItem)
	cartGroup.Delete("/items/:id", cartHandler.RemoveItem)

	// Checkout e vendas
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	protected.Post("/checkout", checkoutHandler.Finalize)
	sales := protected.Group("/sales")
	sales.Get("/", checkoutHandler.ListSales)
	sales.Get("/:id", checkoutHandler.GetSale)

	// Caixa
	registerGroup := protected.Group("/register")
	registerHandler := NewRegisterHandler(deps.RegisterUC)
	registerGroup.Post("/open", registerHandler.Open)
	registerGroup.Post("/close", registerHandler.Close)
	registerGroup.Get("/current", registerHandler.Current)

	// Financeiro (MANAGER/ADMIN)
	financials := protected.Group("/financials", RequireRole(domain.RoleManager, domain.RoleAdmin))
	financialHandler := NewFinancialHandler(deps.FinancialUC)
	financials.Get("/", financialHandler.Summary)
	financials.Get("/payment-methods", financialHandler.SalesByPaymentMethod)
	financials.Get("/top-products", financialHandler.TopProducts)

	// Despesas (MANAGER/ADMIN)
	expenses := protected.Group("/expenses", RequireRole(domain.RoleManager, domain.RoleAdmin))
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Put("/:id/pay", expenseHandler.MarkPaid)

	// Reposição filial → matriz
	replenishments := protected.Group("/replenishments")
	replenishmentHandler := NewReplenishmentHandler(deps.ReplenishmentUC)
	replenishments.Post("/", replenishmentHandler.Create)
	replenishments.Get("/", replenishmentHandler.List)
	replenishments.Get("/:id", replenishmentHandler.Get)
	replenishments.Put("/:id/status", RequireRole(domain.RoleAdmin), replenishmentHandler.UpdateStatus)

	// Catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Estoque da loja
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory.Put("/", inventoryHandler.Upsert)
	inventory.Get("/", inventoryHandler.List)

	// Lojas
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
}
