package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/pdvlojas/pdv-api/internal/application/auth"
	"github.com/pdvlojas/pdv-api/internal/application/cart"
	"github.com/pdvlojas/pdv-api/internal/application/checkout"
	"github.com/pdvlojas/pdv-api/internal/application/financial"
	"github.com/pdvlojas/pdv-api/internal/application/register"
	"github.com/pdvlojas/pdv-api/internal/application/replenishment"
	"github.com/pdvlojas/pdv-api/internal/application/usecase"
	"github.com/pdvlojas/pdv-api/internal/infrastructure/cache"
	"github.com/pdvlojas/pdv-api/internal/infrastructure/postgres"
	httpRouter "github.com/pdvlojas/pdv-api/internal/interfaces/http"
	"github.com/pdvlojas/pdv-api/pkg/config"
	"github.com/pdvlojas/pdv-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	storeRepo := postgres.NewStoreRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	sessionRepo := postgres.NewRegisterSessionRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	replRepo := postgres.NewReplenishmentRepository(pool)
	financialRepo := postgres.NewFinancialRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache do resumo financeiro: Redis se configurado, Noop caso contrário.
	var summaryCache financial.SummaryCache = cache.NewNoop()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis indisponível, cache desligado")
		} else {
			summaryCache = cache.NewRedisSummaryCache(client, time.Duration(cfg.Redis.TTLMinutes)*time.Minute)
		}
	}

	authUC := auth.NewUseCase(userRepo, storeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	cartUC := cart.NewUseCase(txRunner, saleRepo, productRepo, sessionRepo)
	checkoutUC := checkout.NewUseCase(txRunner, saleRepo, paymentRepo, sessionRepo, summaryCache)
	registerUC := register.NewUseCase(sessionRepo)
	financialUC := financial.NewUseCase(financialRepo, summaryCache)
	replenishmentUC := replenishment.NewUseCase(txRunner, replRepo, storeRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	storeUC := usecase.NewStoreUseCase(storeRepo)
	inventoryUC := usecase.NewInventoryUseCase(invRepo, productRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, summaryCache)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PDV Lojas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CartUC:          cartUC,
		CheckoutUC:      checkoutUC,
		RegisterUC:      registerUC,
		FinancialUC:     financialUC,
		ReplenishmentUC: replenishmentUC,
		ProductUC:       productUC,
		StoreUC:         storeUC,
		InventoryUC:     inventoryUC,
		ExpenseUC:       expenseUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("encerrando aplicação")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown HTTP")
	}
}
