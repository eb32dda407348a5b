package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/supermercado-pos/internal/application/inventory"
	"github.com/tu-usuario/supermercado-pos/internal/application/reports"
	"github.com/tu-usuario/supermercado-pos/internal/application/sales"
	"github.com/tu-usuario/supermercado-pos/internal/application/usecase"
	"github.com/tu-usuario/supermercado-pos/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	CustomerUC *usecase.CustomerUseCase
	CommitUC   *sales.CommitInvoiceUseCase
	Ledger     *inventory.Ledger
	Advisor    *inventory.RestockAdvisor
	Aggregator *reports.Aggregator
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products (catálogo)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/code/:code", productHandler.GetByCode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Deactivate)

	// Sales (facturación y stock)
	salesHandler := NewSalesHandler(deps.CommitUC, deps.Ledger, deps.Advisor, deps.Log)
	invoices := api.Group("/invoices")
	invoices.Post("/", salesHandler.CommitInvoice)
	invoices.Get("/:id", salesHandler.GetInvoice)

	stock := api.Group("/stock")
	stock.Post("/check", salesHandler.CheckStock)
	stock.Post("/restock", salesHandler.Restock)

	// Reports (solo lectura)
	reportsGroup := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Aggregator)
	reportsGroup.Get("/sales", reportHandler.SalesBetween)
	reportsGroup.Get("/sales-trend", reportHandler.SalesTrend)
	reportsGroup.Get("/stock-levels", reportHandler.StockLevels)
	reportsGroup.Get("/stock-trend", reportHandler.StockTrend)
	reportsGroup.Get("/sales-details", reportHandler.SalesDetails)
}
