package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/auth"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/application/orders"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	LedgerUC    *ledger.UseCase
	PurchaseUC  *orders.PurchaseUseCase
	SalesUC     *orders.SalesUseCase
	TransferUC  *orders.TransferUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
// Lectura: cualquier rol autenticado. Escritura de inventario, compras y
// traslados: admin y bodeguero. Órdenes de venta: admin y vendedor, salvo el
// despacho que toca bodega (admin y bodeguero).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	writers := RequireRole(inventoryWriterRoles...)
	sellers := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Warehouses (protegido; solo admin crea)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleAdmin), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", writers, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", writers, productHandler.Update)
	products.Get("/:id/price-history", productHandler.PriceHistory)

	// Inventory / kardex (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	invGroup.Post("/movements", writers, inventoryHandler.RegisterMovement)
	invGroup.Post("/adjustments", writers, inventoryHandler.AdjustStock)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/stock", inventoryHandler.GetStock)
	invGroup.Get("/stock-levels", inventoryHandler.ListStock)
	invGroup.Get("/reorder-list", inventoryHandler.GetReorderList)
	invGroup.Get("/audit", inventoryHandler.AuditPair)

	// Purchase orders (protegido)
	purchases := protected.Group("/purchase-orders")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", writers, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/send", writers, purchaseHandler.Send)
	purchases.Post("/:id/receive", writers, purchaseHandler.Receive)
	purchases.Post("/:id/cancel", writers, purchaseHandler.Cancel)

	// Sales orders (protegido)
	sales := protected.Group("/sales-orders")
	salesHandler := NewSalesHandler(deps.SalesUC)
	sales.Post("/", sellers, salesHandler.Create)
	sales.Get("/", salesHandler.List)
	sales.Get("/:id", salesHandler.GetByID)
	sales.Post("/:id/confirm", sellers, salesHandler.Confirm)
	sales.Post("/:id/fulfill", writers, salesHandler.Fulfill)
	sales.Post("/:id/invoice", sellers, salesHandler.Invoice)
	sales.Post("/:id/cancel", sellers, salesHandler.Cancel)

	// Transfers (protegido)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", writers, transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/send", writers, transferHandler.Send)
	transfers.Post("/:id/complete", writers, transferHandler.Complete)
	transfers.Post("/:id/cancel", writers, transferHandler.Cancel)
}
