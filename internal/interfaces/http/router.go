package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/accupos-api/internal/application/analytics"
	"github.com/jhoicas/accupos-api/internal/application/checkout"
	"github.com/jhoicas/accupos-api/internal/application/invoice"
	"github.com/jhoicas/accupos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	CustomerUC     *usecase.CustomerUseCase
	Checkout       *checkout.UseCase
	DashboardUC    *appanalytics.DashboardUseCase
	InvoicePDF     *invoice.PDFUseCase // opcional
	RequestTimeout time.Duration       // límite del checkout
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	api.Get("/categories", productHandler.Categories)

	// Clientes
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)

	// Ventas
	transactions := api.Group("/transactions")
	txHandler := NewTransactionHandler(deps.Checkout, deps.RequestTimeout)
	transactions.Post("/", txHandler.Checkout)
	transactions.Get("/", txHandler.List)
	transactions.Get("/:id", txHandler.GetByID)
	if deps.InvoicePDF != nil {
		invoiceHandler := NewInvoiceHandler(deps.InvoicePDF)
		transactions.Get("/:id/invoice.pdf", invoiceHandler.DownloadPDF)
	}

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.Get)
}
