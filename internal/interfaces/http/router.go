package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nmarin/posflow-api/internal/application/auth"
	"github.com/nmarin/posflow-api/internal/application/inventory"
	apptransfer "github.com/nmarin/posflow-api/internal/application/transfer"
	"github.com/nmarin/posflow-api/internal/application/usecase"
	"github.com/nmarin/posflow-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC    *usecase.CompanyUseCase
	BranchUC     *usecase.BranchUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	InventoryUC  *inventory.UseCase
	WorkflowUC   *apptransfer.WorkflowUseCase
	QueryUC      *apptransfer.QueryUseCase
	StatisticsUC *apptransfer.StatisticsUseCase
	ManifestUC   *apptransfer.ManifestUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)

	// Branches (protegido; escritura solo admin)
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", adminOnly, branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id", adminOnly, branchHandler.Update)
	branches.Delete("/:id", adminOnly, branchHandler.Delete)

	// Warehouses (protegido; escritura solo admin)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Inventory (protegido; el alcance por sede lo decide el caso de uso)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/items", inventoryHandler.CreateItem)
	invGroup.Get("/items", inventoryHandler.ListItems)
	invGroup.Get("/items/:id", inventoryHandler.GetItem)
	invGroup.Put("/items/:id", inventoryHandler.UpdateItem)
	invGroup.Delete("/items/:id", adminOnly, inventoryHandler.DeleteItem)
	invGroup.Post("/movements", inventoryHandler.RegisterAdjustment)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Transfers (protegido). Las rutas fijas van antes que /:id.
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.WorkflowUC, deps.QueryUC, deps.StatisticsUC, deps.ManifestUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/logs", transferHandler.Logs)
	transfers.Get("/statistics", transferHandler.Statistics)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Get("/:id/movements", transferHandler.Movements)
	transfers.Get("/:id/manifest", transferHandler.Manifest)
	transfers.Put("/:id/complete", transferHandler.Complete)
	transfers.Put("/:id/status", adminOnly, transferHandler.UpdateStatus)
}
