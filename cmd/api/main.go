package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/application/catalog"
	"github.com/jhoicas/Pedidos-api/internal/application/receivables"
	"github.com/jhoicas/Pedidos-api/internal/application/sales"
	infracnpj "github.com/jhoicas/Pedidos-api/internal/infrastructure/cnpj"
	infrapdf "github.com/jhoicas/Pedidos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Pedidos-api/internal/interfaces/http"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/logger"

	_ "github.com/jhoicas/Pedidos-api/docs"
)

// @title        Pedidos API
// @version      1.0
// @description  Orçamentos, pedidos, produção e contas a receber.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := postgres.MigrateUp(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	installmentRepo := postgres.NewInstallmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Consulta de CNPJ opcional: sin URL el alta de clientes sigue funcionando a mano.
	var lookup catalog.CNPJLookup
	if cfg.CNPJ.BaseURL != "" {
		lookup = infracnpj.NewBrasilAPIClient(cfg.CNPJ.BaseURL, cfg.CNPJ.Timeout)
	}
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Company)

	clientUC := catalog.NewClientUseCase(clientRepo, lookup, log.Component("clients"))
	productUC := catalog.NewProductUseCase(productRepo, log.Component("products"))
	builder := sales.NewItemBuilder(productRepo, sales.PrintCosts{
		Small: decimal.NewFromInt(cfg.Pricing.PrintCostSmall),
		Large: decimal.NewFromInt(cfg.Pricing.PrintCostLarge),
	})
	receivablesUC := receivables.NewUseCase(txRunner, documentRepo, installmentRepo, log.Component("receivables"))
	documentUC := sales.NewDocumentUseCase(
		txRunner, documentRepo, clientRepo, installmentRepo, builder, pdfGenerator, log.Component("documents"),
	)
	lifecycleUC := sales.NewLifecycleUseCase(txRunner, clientRepo, receivablesUC, log.Component("lifecycle"))
	productionUC := sales.NewProductionUseCase(documentRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pedidos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClientUC:      clientUC,
		ProductUC:     productUC,
		DocumentUC:    documentUC,
		LifecycleUC:   lifecycleUC,
		ProductionUC:  productionUC,
		ReceivablesUC: receivablesUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
