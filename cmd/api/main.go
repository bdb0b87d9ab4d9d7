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

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/orders"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/sales"
	"github.com/jhoicas/almacen-api/internal/application/transfers"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/internal/infrastructure/rediscache"
	"github.com/jhoicas/almacen-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
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

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	typeRepo := postgres.NewProductTypeRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	resolutionRepo := postgres.NewResolutionRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de catálogo: opcional, Noop si no hay Redis configurado.
	var productCache catalog.ProductCache = catalog.NoopProductCache{}
	if cfg.Redis.Addr != "" {
		redisCache := rediscache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, catálogo sin caché")
		} else {
			productCache = redisCache
			defer redisCache.Close()
		}
	}

	evidenceStore, err := storage.NewLocalEvidenceStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de evidencias")
	}

	pol := policy.New(cfg.Policy.ApprovalThreshold)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewUseCase(productRepo, typeRepo, productCache)
	ledgerUC := ledger.NewUseCase(txRunner, productRepo, movRepo, pol)
	projectionUC := ledger.NewProjectionUseCase(productRepo, typeRepo, movRepo, resolutionRepo)
	salesUC := sales.NewUseCase(txRunner, saleRepo)
	ordersUC := orders.NewUseCase(txRunner, orderRepo, productRepo)
	transfersUC := transfers.NewUseCase(txRunner, warehouseRepo, transferRepo)
	reportsUC := reports.NewUseCase(projectionUC, infrapdf.NewMarotoReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CatalogUC:   catalogUC,
		LedgerUC:    ledgerUC,
		Projection:  projectionUC,
		SalesUC:     salesUC,
		OrdersUC:    ordersUC,
		TransfersUC: transfersUC,
		ReportsUC:   reportsUC,
		Evidence:    evidenceStore,
		JWTSecret:   cfg.JWT.Secret,
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
