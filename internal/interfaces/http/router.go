package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/catalog"
	"github.com/jhoicas/Pedidos-api/internal/application/receivables"
	"github.com/jhoicas/Pedidos-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClientUC      *catalog.ClientUseCase
	ProductUC     *catalog.ProductUseCase
	DocumentUC    *sales.DocumentUseCase
	LifecycleUC   *sales.LifecycleUseCase
	ProductionUC  *sales.ProductionUseCase
	ReceivablesUC *receivables.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Clients
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/lookup/:cnpj", clientHandler.Lookup)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/preview", productHandler.Preview)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Documents (pedidos y orçamentos)
	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.LifecycleUC)
	api.Post("/pricing/unit-price", documentHandler.PricePreview)

	documents := api.Group("/documents")
	documents.Post("/preview-number", documentHandler.PreviewNumber)
	documents.Post("/bulk/status", documentHandler.BulkChangeStatus)
	documents.Post("/bulk/delete", documentHandler.BulkDelete)
	documents.Post("/", documentHandler.Create)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Put("/:id", documentHandler.Update)
	documents.Delete("/:id", documentHandler.Delete)
	documents.Patch("/:id/status", documentHandler.ChangeStatus)
	documents.Post("/:id/convert", documentHandler.Convert)
	documents.Patch("/:id/invoice-number", documentHandler.SetInvoiceNumber)
	documents.Get("/:id/pdf", documentHandler.PDF)
	documents.Get("/:id/installments", documentHandler.Installments)

	// Production
	production := api.Group("/production")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	production.Get("/queue", productionHandler.Queue)
	production.Post("/pdf", productionHandler.Sheets)

	// Receivables
	receivableHandler := NewReceivableHandler(deps.ReceivablesUC)
	api.Get("/receivables", receivableHandler.List)
	api.Get("/receivables/summary", receivableHandler.Summary)
	api.Post("/installments/:id/pay", receivableHandler.Pay)
	api.Post("/installments/:id/reopen", receivableHandler.Reopen)

	api.Get("/schemas/item-description", ItemDescriptionSchema)
}
