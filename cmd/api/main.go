package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/supermercado-pos/internal/application/inventory"
	"github.com/tu-usuario/supermercado-pos/internal/application/reports"
	"github.com/tu-usuario/supermercado-pos/internal/application/sales"
	"github.com/tu-usuario/supermercado-pos/internal/application/usecase"
	"github.com/tu-usuario/supermercado-pos/internal/infrastructure/cache"
	"github.com/tu-usuario/supermercado-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/supermercado-pos/internal/interfaces/http"
	"github.com/tu-usuario/supermercado-pos/pkg/config"
	"github.com/tu-usuario/supermercado-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de reportes: Redis si está configurado y responde; si no, noop.
	var reportCache cache.ReportCache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no responde, cache de reportes desactivado")
		} else {
			reportCache = redisCache
			log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de reportes en Redis")
		}
	}

	ledger := inventory.NewLedger(txRunner, productRepo, log)
	advisor := inventory.NewRestockAdvisor(
		productRepo, ledger,
		decimal.NewFromFloat(cfg.Sales.LowStockThreshold),
		log,
	)
	commitUC := sales.NewCommitInvoiceUseCase(txRunner, ledger, customerRepo, invoiceRepo, log)
	aggregator := reports.NewAggregator(reportRepo, invoiceRepo, reportCache, log)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		CustomerUC: customerUC,
		CommitUC:   commitUC,
		Ledger:     ledger,
		Advisor:    advisor,
		Aggregator: aggregator,
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
