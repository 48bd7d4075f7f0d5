package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-api/internal/application/auth"
	"github.com/tu-usuario/almacen-api/internal/application/journal"
	"github.com/tu-usuario/almacen-api/internal/application/layout"
	"github.com/tu-usuario/almacen-api/internal/application/ledger"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	HierarchyUC *usecase.HierarchyUseCase
	RackUC      *usecase.RackUseCase
	ProductUC   *usecase.ProductUseCase
	Assembler   *layout.SlotLayoutAssembler
	LedgerUC    *ledger.StockLedgerUseCase
	MovementUC  *journal.QueryUseCase
	ReportGen   *pdf.MovementsReportGenerator
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// La jerarquía física y el catálogo los administran admin y bodeguero;
	// las operaciones del ledger las ejecuta también el operario de piso.
	manage := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Jerarquía física: sedes, depósitos, pasillos (protegido)
	hierarchyHandler := NewHierarchyHandler(deps.HierarchyUC)
	locations := protected.Group("/locations")
	locations.Post("/", manage, hierarchyHandler.CreateLocation)
	locations.Get("/", hierarchyHandler.ListLocations)
	locations.Get("/:id", hierarchyHandler.GetLocation)

	depots := protected.Group("/depots")
	depots.Post("/", manage, hierarchyHandler.CreateDepot)
	depots.Get("/", hierarchyHandler.ListDepots)
	depots.Get("/:id", hierarchyHandler.GetDepot)

	aisles := protected.Group("/aisles")
	aisles.Post("/", manage, hierarchyHandler.CreateAisle)
	aisles.Get("/", hierarchyHandler.ListAisles)
	aisles.Get("/:id", hierarchyHandler.GetAisle)

	// Estanterías: configuración, grilla y ocupación (protegido)
	racks := protected.Group("/racks")
	rackHandler := NewRackHandler(deps.RackUC, deps.Assembler)
	racks.Post("/", manage, rackHandler.Create)
	racks.Get("/", rackHandler.ListByAisle)
	racks.Get("/:id", rackHandler.GetByID)
	racks.Put("/:id", manage, rackHandler.Reconfigure)
	racks.Get("/:id/layout", rackHandler.Layout)
	racks.Get("/:id/stats", rackHandler.Stats)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", manage, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", manage, productHandler.Update)

	// Ledger de stock (protegido; el operario también opera)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC)
	stock.Post("/", stockHandler.Place)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Post("/:id/inflow", stockHandler.Inflow)
	stock.Post("/:id/outflow", stockHandler.Outflow)
	stock.Post("/:id/transfer", stockHandler.Transfer)
	stock.Post("/:id/adjust", manage, stockHandler.Adjust)
	stock.Post("/:id/relocate", stockHandler.Relocate)
	stock.Post("/:id/migrate", stockHandler.Migrate)
	stock.Delete("/:id", manage, stockHandler.Discard)

	// Journal de movimientos (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC, deps.ReportGen)
	movements.Get("/", movementHandler.List)
	movements.Get("/report", movementHandler.Report)
}
