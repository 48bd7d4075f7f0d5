package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/almacen-api/internal/application/auth"
	appjournal "github.com/tu-usuario/almacen-api/internal/application/journal"
	"github.com/tu-usuario/almacen-api/internal/application/layout"
	"github.com/tu-usuario/almacen-api/internal/application/ledger"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	infrajournal "github.com/tu-usuario/almacen-api/internal/infrastructure/journal"
	infrapdf "github.com/tu-usuario/almacen-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/almacen-api/internal/interfaces/http"
	"github.com/tu-usuario/almacen-api/pkg/config"
	"github.com/tu-usuario/almacen-api/pkg/logger"
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

	// Journal NDJSON de solo-anexado; al abrir recupera la secuencia escaneando el archivo.
	if err := os.MkdirAll(filepath.Dir(cfg.Journal.Path), 0o755); err != nil {
		log.Fatal().Err(err).Msg("crear directorio del journal")
	}
	fileJournal, err := infrajournal.NewFileJournal(cfg.Journal.Path, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir journal")
	}
	defer fileJournal.Close()

	userRepo := postgres.NewUserRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	depotRepo := postgres.NewDepotRepository(pool)
	aisleRepo := postgres.NewAisleRepository(pool)
	rackRepo := postgres.NewRackRepository(pool)
	slotRepo := postgres.NewSlotRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	provisioner := layout.NewSlotGridProvisioner(slotRepo)
	assembler := layout.NewSlotLayoutAssembler(rackRepo, slotRepo, provisioner)
	hierarchyUC := usecase.NewHierarchyUseCase(locationRepo, depotRepo, aisleRepo)
	rackUC := usecase.NewRackUseCase(rackRepo, aisleRepo, provisioner)
	productUC := usecase.NewProductUseCase(productRepo)
	ledgerUC := ledger.NewStockLedgerUseCase(txRunner, fileJournal, stockRepo, productRepo)
	movementUC := appjournal.NewQueryUseCase(fileJournal, productRepo)
	reportGen := infrapdf.NewMovementsReportGenerator()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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
		HierarchyUC: hierarchyUC,
		RackUC:      rackUC,
		ProductUC:   productUC,
		Assembler:   assembler,
		LedgerUC:    ledgerUC,
		MovementUC:  movementUC,
		ReportGen:   reportGen,
		AuthUC:      authUC,
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
