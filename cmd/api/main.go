package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/automaten-pro/automaten-api/internal/application/auth"
	"github.com/automaten-pro/automaten-api/internal/application/email"
	"github.com/automaten-pro/automaten-api/internal/application/inventory"
	"github.com/automaten-pro/automaten-api/internal/application/report"
	"github.com/automaten-pro/automaten-api/internal/application/sales"
	"github.com/automaten-pro/automaten-api/internal/application/scanner"
	"github.com/automaten-pro/automaten-api/internal/application/usecase"
	"github.com/automaten-pro/automaten-api/internal/application/waste"
	infraexcel "github.com/automaten-pro/automaten-api/internal/infrastructure/excel"
	"github.com/automaten-pro/automaten-api/internal/infrastructure/mailer"
	infrapdf "github.com/automaten-pro/automaten-api/internal/infrastructure/pdf"
	"github.com/automaten-pro/automaten-api/internal/infrastructure/postgres"
	httpRouter "github.com/automaten-pro/automaten-api/internal/interfaces/http"
	"github.com/automaten-pro/automaten-api/internal/scheduler"
	"github.com/automaten-pro/automaten-api/pkg/config"
	"github.com/automaten-pro/automaten-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("database migration")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	wasteRepo := postgres.NewWasteRepository(pool)
	salesRepo := postgres.NewSalesRepository(pool)
	emailLogRepo := postgres.NewEmailLogRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	securityRepo := postgres.NewSecurityEventRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mailSender := mailer.NewGomailSender(mailer.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		User:     cfg.Mail.User,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	})
	settingsUC := usecase.NewSettingsUseCase(settingRepo)
	mailSvc := email.NewService(
		mailSender, emailLogRepo, salesRepo, settingsUC, log,
		cfg.Mail.ReportTo, cfg.Mail.MaxAttempts, cfg.Mail.Enabled,
	)

	inventoryUC := inventory.NewUseCase(txRunner)
	invAnalysisUC := inventory.NewAnalysisUseCase(productRepo, reportRepo)

	wasteUC := waste.NewUseCase(txRunner, productRepo, mailSvc, settingsUC, log, cfg.Tax.Rate, cfg.Waste.AlertThreshold)
	wasteAnalysisUC := waste.NewAnalysisUseCase(reportRepo)
	wasteOptimizeUC := waste.NewOptimizationUseCase(reportRepo)
	wasteExportUC := waste.NewExportUseCase(
		reportRepo,
		infrapdf.NewMarotoPDFGenerator(),
		infraexcel.NewExcelizeGenerator(),
		cfg.ExportPath(),
		cfg.App.PublicURL,
	)

	reportExportUC := report.NewExportUseCase(
		reportRepo,
		infrapdf.NewMarotoPDFGenerator(),
		infraexcel.NewExcelizeGenerator(),
		cfg.ExportPath(),
		cfg.App.PublicURL,
	)

	salesUC := sales.NewUseCase(txRunner, salesRepo, productRepo, mailSvc, log)
	productUC := usecase.NewProductUseCase(productRepo, inventoryUC)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	scannerUC := scanner.NewUseCase(productRepo, salesRepo, inventoryUC, wasteUC, salesUC, productUC)
	reportUC := report.NewUseCase(reportRepo, productRepo, salesRepo, settingsUC, cfg.Report.ExpiryDays)

	limiter := auth.NewLoginLimiter(5, 15*time.Minute)
	authUC := auth.NewUseCase(
		userRepo, securityRepo, limiter, log,
		cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    32 << 20,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AutomatenManager Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Static("/exports", cfg.ExportPath())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ProductUC:       productUC,
		CategoryUC:      categoryUC,
		SettingsUC:      settingsUC,
		InventoryUC:     inventoryUC,
		InvAnalysisUC:   invAnalysisUC,
		WasteUC:         wasteUC,
		WasteAnalysisUC: wasteAnalysisUC,
		WasteOptimizeUC: wasteOptimizeUC,
		WasteExportUC:   wasteExportUC,
		SalesUC:         salesUC,
		ScannerUC:       scannerUC,
		ReportUC:        reportUC,
		ReportExportUC:  reportExportUC,
		MailSvc:         mailSvc,
		MovementRepo:    movementRepo,
		WasteRepo:       wasteRepo,
		JWTSecret:       cfg.JWT.Secret,
		UploadDir:       cfg.App.UploadDir,
	})

	schedCtx, stopSched := context.WithCancel(ctx)
	defer stopSched()
	sched := scheduler.New(reportUC, reportExportUC, mailSvc, productRepo, log,
		cfg.Report.DailyHour, cfg.Report.RetryInterval)
	sched.Start(schedCtx)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")
	stopSched()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
