package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-tiendas/internal/application/auth"
	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	StoreUC          *usecase.StoreUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementQuery    *inventory.MovementQueryUseCase
	JWTSecret        string
	ProviderSecret   string
	RateLimitMax     int
	RateLimitWindow  time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, protegido por el secreto del puente del proveedor)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/provider",
		RateLimit(deps.RateLimitMax, deps.RateLimitWindow),
		ProviderSecretMiddleware(deps.ProviderSecret),
		authHandler.ProviderSignIn,
	)

	// Rutas protegidas (requieren Bearer Token); el límite se cuenta por usuario
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RateLimit(deps.RateLimitMax, deps.RateLimitWindow))

	storeHandler := NewStoreHandler(deps.StoreUC)
	protected.Get("/stores", storeHandler.List)
	protected.Post("/stores", storeHandler.Create)

	productHandler := NewProductHandler(deps.ProductUC)
	protected.Get("/products", productHandler.List)

	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	protected.Post("/stock-in", inventoryHandler.StockIn)
	protected.Post("/sale", inventoryHandler.Sale)
	protected.Post("/manual-removal", inventoryHandler.ManualRemoval)

	reportHandler := NewReportHandler(deps.MovementQuery)
	protected.Get("/reports/stock-movements", reportHandler.StockMovements)
	protected.Get("/reports/stock-movements/pdf", reportHandler.StockMovementsPDF)
}
