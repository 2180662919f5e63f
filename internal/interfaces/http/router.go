package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/operation"
	"github.com/jhoicas/stockmaster-api/internal/application/stock"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC  *usecase.WarehouseUseCase
	ProductUC    *usecase.ProductUseCase
	PartnerUC    *usecase.PartnerUseCase
	AlertUC      *usecase.AlertUseCase
	StockQueryUC *usecase.StockQueryUseCase
	LedgerUC     *stock.LedgerUseCase
	WorkflowUC   *operation.WorkflowUseCase
	OperationQUC *operation.QueryUseCase
	PDFUC        *operation.PDFUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
// Lectura: cualquier usuario autenticado. Escritura: admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writers := RequireRole(entity.RoleAdmin, entity.RoleWarehouse)

	// Warehouses + locations (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", writers, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", writers, warehouseHandler.Update)
	warehouses.Post("/:id/locations", writers, warehouseHandler.CreateLocation)
	warehouses.Get("/:id/locations", warehouseHandler.ListLocations)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", writers, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", writers, productHandler.Update)

	// Partners (protegido)
	partners := protected.Group("/partners")
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners.Post("/", writers, partnerHandler.Create)
	partners.Get("/", partnerHandler.List)
	partners.Get("/:id", partnerHandler.GetByID)

	// Stock: movimientos directos + consultas (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC, deps.StockQueryUC)
	stockGroup.Post("/movements", writers, stockHandler.RegisterMovement)
	stockGroup.Get("/", stockHandler.GetBalance)
	stockGroup.Get("/history", stockHandler.ListMovements)
	stockGroup.Get("/locations/:id", stockHandler.ListByLocation)
	stockGroup.Get("/products/:id", stockHandler.ListByProduct)

	// Alerts (protegido)
	alerts := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts.Get("/", alertHandler.ListActive)
	alerts.Post("/:id/read", writers, alertHandler.MarkRead)

	// Operations: documentos de inventario (protegido)
	operations := protected.Group("/operations")
	operationHandler := NewOperationHandler(deps.WorkflowUC, deps.OperationQUC, deps.PDFUC)
	operations.Post("/", writers, operationHandler.Create)
	operations.Get("/", operationHandler.List)
	operations.Get("/:id", operationHandler.GetByID)
	operations.Post("/:id/validate", writers, operationHandler.Validate)
	operations.Post("/:id/status", writers, operationHandler.Transition)
	operations.Get("/:id/pdf", operationHandler.DownloadPDF)
}
