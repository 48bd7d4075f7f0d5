// seed puebla la base con datos de demostración: un usuario admin, una
// jerarquía sede → depósito → pasillo, una estantería doble con su grilla
// aprovisionada y un catálogo mínimo de productos.
//
// Uso: go run ./cmd/seed
// Idempotente a nivel práctico: los registros con clave única ya existentes
// se informan y se omiten.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/layout"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/almacen-api/pkg/config"
	"github.com/tu-usuario/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	depotRepo := postgres.NewDepotRepository(pool)
	aisleRepo := postgres.NewAisleRepository(pool)
	rackRepo := postgres.NewRackRepository(pool)
	slotRepo := postgres.NewSlotRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	provisioner := layout.NewSlotGridProvisioner(slotRepo)
	hierarchyUC := usecase.NewHierarchyUseCase(locationRepo, depotRepo, aisleRepo)
	rackUC := usecase.NewRackUseCase(rackRepo, aisleRepo, provisioner)
	productUC := usecase.NewProductUseCase(productRepo)

	// Usuario admin
	now := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña")
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        "admin@almacen.local",
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(admin); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			log.Info().Str("email", admin.Email).Msg("usuario admin ya existe, se omite")
		} else {
			log.Fatal().Err(err).Msg("crear usuario admin")
		}
	} else {
		log.Info().Str("email", admin.Email).Msg("usuario admin creado")
	}

	// Jerarquía física
	location, err := hierarchyUC.CreateLocation(dto.CreateLocationRequest{
		Name:    "Sede Central",
		Address: "Calle 10 # 25-40",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear sede")
	}
	depot, err := hierarchyUC.CreateDepot(dto.CreateDepotRequest{
		LocationID: location.ID,
		Name:       "Depósito Principal",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear depósito")
	}
	aisle, err := hierarchyUC.CreateAisle(dto.CreateAisleRequest{
		DepotID: depot.ID,
		Name:    "Pasillo A",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear pasillo")
	}

	// Estantería doble 3 niveles × 4 cuerpos × 2 posiciones (48 posiciones)
	rk, err := rackUC.Create(dto.CreateRackRequest{
		AisleID:    aisle.ID,
		Name:       "Estantería A1",
		FaceType:   entity.FaceTypeDouble,
		Levels:     3,
		Bays:       4,
		BinsPerBay: 2,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear estantería")
	}
	log.Info().
		Str("rack_id", rk.ID).
		Str("code", rk.Code).
		Int("slots", rk.SlotCount).
		Msg("estantería aprovisionada")

	// Catálogo mínimo
	products := []dto.CreateProductRequest{
		{SKU: "SKU-0001", Name: "Caja de tornillos 4x40", Type: "GENERAL", SalePrice: dec("12.50"), CostPrice: dec("8.00"), UnitMeasure: "caja"},
		{SKU: "SKU-0002", Name: "Aceite lubricante 1L", Type: "PERISHABLE", SalePrice: dec("22.00"), CostPrice: dec("15.30"), UnitMeasure: "unidad"},
		{SKU: "SKU-0003", Name: "Guantes de nitrilo talla M", Type: "GENERAL", SalePrice: dec("6.75"), CostPrice: dec("4.10"), UnitMeasure: "par"},
	}
	for _, p := range products {
		created, err := productUC.Create(p)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				log.Info().Str("sku", p.SKU).Msg("producto ya existe, se omite")
				continue
			}
			log.Fatal().Err(err).Str("sku", p.SKU).Msg("crear producto")
		}
		log.Info().Str("sku", created.SKU).Str("id", created.ID).Msg("producto creado")
	}

	log.Info().Msg("seed completado")
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}
