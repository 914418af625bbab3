package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nmarin/posflow-api/internal/application/auth"
	"github.com/nmarin/posflow-api/internal/application/inventory"
	"github.com/nmarin/posflow-api/internal/application/scope"
	apptransfer "github.com/nmarin/posflow-api/internal/application/transfer"
	"github.com/nmarin/posflow-api/internal/application/usecase"
	infrapdf "github.com/nmarin/posflow-api/internal/infrastructure/pdf"
	"github.com/nmarin/posflow-api/internal/infrastructure/postgres"
	"github.com/nmarin/posflow-api/internal/infrastructure/rediscache"
	httpRouter "github.com/nmarin/posflow-api/internal/interfaces/http"
	"github.com/nmarin/posflow-api/pkg/config"
	"github.com/nmarin/posflow-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
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

	// Redis es opcional: sin REDIS_ADDR la app corre sin cache.
	var locationCache scope.Cache
	var statsCache apptransfer.StatsCache
	if cfg.Redis.Addr != "" {
		redisClient, err := rediscache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		cache := rediscache.New(redisClient)
		locationCache = cache
		statsCache = cache
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: corriendo sin cache")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := scope.NewResolver(branchRepo, warehouseRepo, locationCache)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	branchUC := usecase.NewBranchUseCase(branchRepo, resolver)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, resolver)
	inventoryUC := inventory.NewUseCase(txRunner, itemRepo, movementRepo, resolver)
	workflowUC := apptransfer.NewWorkflowUseCase(txRunner, transferRepo, resolver)
	queryUC := apptransfer.NewQueryUseCase(transferRepo, movementRepo)
	statisticsUC := apptransfer.NewStatisticsUseCase(transferRepo, statsCache)
	manifestUC := apptransfer.NewManifestUseCase(transferRepo, resolver, infrapdf.NewMarotoManifestGenerator())
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if !httpRouter.MountSwagger(app, "./docs/swagger.json", "PosFlow API") {
		log.Warn().Msg("docs/swagger.json no encontrado: API sin UI de documentación")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:    companyUC,
		BranchUC:     branchUC,
		WarehouseUC:  warehouseUC,
		InventoryUC:  inventoryUC,
		WorkflowUC:   workflowUC,
		QueryUC:      queryUC,
		StatisticsUC: statisticsUC,
		ManifestUC:   manifestUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
