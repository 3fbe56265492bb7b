package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stockmaster/warehouse-api/internal/application/analytics"
	"github.com/stockmaster/warehouse-api/internal/application/auth"
	"github.com/stockmaster/warehouse-api/internal/application/operations"
	"github.com/stockmaster/warehouse-api/internal/application/usecase"
	"github.com/stockmaster/warehouse-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	LocationUC  *usecase.LocationUseCase
	OperationUC *operations.OperationUseCase
	DashboardUC *analytics.DashboardUseCase
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
	manager := RequireRole(entity.RoleManager)

	// Products (protegido; mutaciones solo MANAGER)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", manager, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", manager, productHandler.Update)
	products.Get("/:id/stock", productHandler.Stock)

	// Locations (protegido; mutaciones solo MANAGER)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", manager, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", manager, locationHandler.Update)

	// Operations (protegido)
	ops := protected.Group("/operations")
	operationHandler := NewOperationHandler(deps.OperationUC)
	ops.Post("/", operationHandler.Create)
	ops.Get("/", operationHandler.List)
	ops.Get("/:id", operationHandler.GetByID)
	ops.Put("/:id", operationHandler.Update)
	ops.Put("/:id/validate", operationHandler.Validate)
	ops.Get("/:id/document", operationHandler.Document)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetStats)
}
