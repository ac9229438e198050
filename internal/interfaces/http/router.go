package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/automaten-pro/automaten-api/internal/application/auth"
	"github.com/automaten-pro/automaten-api/internal/application/email"
	"github.com/automaten-pro/automaten-api/internal/application/inventory"
	"github.com/automaten-pro/automaten-api/internal/application/report"
	"github.com/automaten-pro/automaten-api/internal/application/sales"
	"github.com/automaten-pro/automaten-api/internal/application/scanner"
	"github.com/automaten-pro/automaten-api/internal/application/usecase"
	"github.com/automaten-pro/automaten-api/internal/application/waste"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

// RouterDeps holds everything the route table needs.
type RouterDeps struct {
	AuthUC          *auth.UseCase
	ProductUC       *usecase.ProductUseCase
	CategoryUC      *usecase.CategoryUseCase
	SettingsUC      *usecase.SettingsUseCase
	InventoryUC     *inventory.UseCase
	InvAnalysisUC   *inventory.AnalysisUseCase
	WasteUC         *waste.UseCase
	WasteAnalysisUC *waste.AnalysisUseCase
	WasteOptimizeUC *waste.OptimizationUseCase
	WasteExportUC   *waste.ExportUseCase
	SalesUC         *sales.UseCase
	ScannerUC       *scanner.UseCase
	ReportUC        *report.UseCase
	ReportExportUC  *report.ExportUseCase
	MailSvc         *email.Service
	MovementRepo    repository.StockMovementRepository
	WasteRepo       repository.WasteRepository
	JWTSecret       string
	UploadDir       string
}

// Router registers the API routes. Everything except login sits behind the
// JWT middleware; write access escalates by role.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	operator := RequireRole(entity.RoleOperator)
	manager := RequireRole(entity.RoleManager)
	admin := RequireRole(entity.RoleAdmin)

	// Auth (login is the only public route)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register", admin, authHandler.Register)
	protected.Get("/users", admin, authHandler.ListUsers)
	protected.Get("/security/events", admin, authHandler.SecurityEvents)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", operator, productHandler.List)
	products.Get("/low-stock", operator, productHandler.LowStock)
	products.Get("/barcode/:barcode", operator, productHandler.GetByBarcode)
	products.Get("/:id", operator, productHandler.GetByID)
	products.Post("/", manager, productHandler.Create)
	products.Put("/:id", manager, productHandler.Update)
	products.Delete("/:id", manager, productHandler.Delete)

	// Categories
	categories := protected.Group("/categories", manager)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Inventory
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.InvAnalysisUC, deps.MovementRepo)
	invGroup.Post("/movements", operator, inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", operator, inventoryHandler.ListMovements)
	invGroup.Get("/expiring", operator, inventoryHandler.Expiring)
	invGroup.Get("/abc", manager, inventoryHandler.ABCAnalysis)
	invGroup.Get("/turnover", manager, inventoryHandler.Turnover)

	// Waste
	wasteGroup := protected.Group("/waste")
	wasteHandler := NewWasteHandler(deps.WasteUC, deps.WasteAnalysisUC, deps.WasteOptimizeUC,
		deps.WasteExportUC, deps.WasteRepo, deps.UploadDir)
	wasteGroup.Get("/reasons", operator, wasteHandler.Reasons)
	wasteGroup.Post("/disposals", operator, wasteHandler.LogDisposal)
	wasteGroup.Get("/disposals", operator, wasteHandler.ListDisposals)
	wasteGroup.Get("/disposals/:id", operator, wasteHandler.GetDisposal)
	wasteGroup.Post("/photos", operator, wasteHandler.UploadPhotos)
	wasteGroup.Get("/analysis", manager, wasteHandler.Analysis)
	wasteGroup.Get("/optimization", manager, wasteHandler.Optimization)
	wasteGroup.Post("/export", manager, wasteHandler.ExportTaxReport)

	// Sales
	salesGroup := protected.Group("/sales", operator)
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup.Post("/sessions", salesHandler.OpenSession)
	salesGroup.Get("/sessions", salesHandler.ListSessions)
	salesGroup.Get("/sessions/:id", salesHandler.GetSession)
	salesGroup.Post("/sessions/:id/items", salesHandler.AddItem)
	salesGroup.Post("/sessions/:id/close", salesHandler.CloseSession)

	// Scanner
	scannerGroup := protected.Group("/scanner", operator)
	scannerHandler := NewScannerHandler(deps.ScannerUC)
	scannerGroup.Get("/lookup/:barcode", scannerHandler.Lookup)
	scannerGroup.Post("/action", scannerHandler.Action)

	// Reports
	reports := protected.Group("/reports", manager)
	reportHandler := NewReportHandler(deps.ReportUC, deps.ReportExportUC)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/kpis", reportHandler.KPIs)
	reports.Get("/trends", reportHandler.Trends)
	reports.Post("/export", reportHandler.Export)

	// Settings and email log
	settingsHandler := NewSettingsHandler(deps.SettingsUC, deps.MailSvc)
	settings := protected.Group("/settings", admin)
	settings.Put("/", settingsHandler.Put)
	settings.Get("/groups/:group", settingsHandler.GetGroup)
	settings.Get("/:key", settingsHandler.Get)
	protected.Get("/emails", admin, settingsHandler.EmailLog)
}
