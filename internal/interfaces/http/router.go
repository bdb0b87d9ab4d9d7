package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/orders"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/sales"
	"github.com/jhoicas/almacen-api/internal/application/transfers"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/storage"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CatalogUC   *catalog.UseCase
	LedgerUC    *ledger.UseCase
	Projection  *ledger.ProjectionUseCase
	SalesUC     *sales.UseCase
	OrdersUC    *orders.UseCase
	TransfersUC *transfers.UseCase
	ReportsUC   *reports.UseCase
	Evidence    *storage.LocalEvidenceStore
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

	// Catálogo (protegido; crear y editar solo admin)
	productHandler := NewProductHandler(deps.CatalogUC, deps.Projection)
	types := protected.Group("/product-types")
	types.Post("/", RequireRole(entity.RoleAdmin), productHandler.CreateType)
	types.Get("/", productHandler.ListTypes)

	products := protected.Group("/products")
	// /full antes que /:id para que Fiber no lo capture como parámetro.
	products.Get("/full", productHandler.ListProductsFull)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.CreateProduct)
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Patch("/:id", RequireRole(entity.RoleAdmin), productHandler.UpdateProduct)
	products.Get("/:id/full", productHandler.GetProductFull)

	// Movimientos (protegido; la política de roles decide por tipo y cantidad)
	movementHandler := NewMovementHandler(deps.LedgerUC)
	protected.Post("/movements", movementHandler.Register)
	products.Get("/:id/movements", movementHandler.History)

	// Discrepancias (protegido)
	discrepancyHandler := NewDiscrepancyHandler(deps.Projection)
	discrepancies := protected.Group("/discrepancies")
	discrepancies.Get("/", discrepancyHandler.List)
	discrepancies.Post("/resolve", discrepancyHandler.Resolve)

	// Ventas (protegido, solo admin y ventas)
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup := protected.Group("/sales", RequireRole(entity.RoleAdmin, entity.RoleSales))
	salesGroup.Post("/", saleHandler.Record)
	salesGroup.Get("/", saleHandler.List)

	// Órdenes (protegido)
	orderHandler := NewOrderHandler(deps.OrdersUC)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.Get)
	ordersGroup.Post("/:id/complete", orderHandler.Complete)

	// Bodegas y traslados (protegido)
	transferHandler := NewTransferHandler(deps.TransfersUC)
	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", RequireRole(entity.RoleAdmin), transferHandler.CreateWarehouse)
	warehouses.Get("/", transferHandler.ListWarehouses)
	transfersGroup := protected.Group("/transfers")
	transfersGroup.Post("/", transferHandler.Create)
	transfersGroup.Get("/", transferHandler.List)

	// Exportaciones (protegido)
	reportHandler := NewReportHandler(deps.ReportsUC)
	export := protected.Group("/export")
	export.Get("/products.csv", reportHandler.ProductsCSV)
	export.Get("/discrepancies.csv", reportHandler.DiscrepanciesCSV)
	export.Get("/valuation.pdf", reportHandler.ValuationPDF)

	// Evidencias (protegido para subir, público para servir)
	uploadHandler := NewUploadHandler(deps.Evidence)
	protected.Post("/uploads/evidence", uploadHandler.Evidence)
	app.Static("/uploads", deps.Evidence.Dir())
}
