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

	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/operation"
	"github.com/jhoicas/stockmaster-api/internal/application/stock"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	infraemail "github.com/jhoicas/stockmaster-api/internal/infrastructure/email"
	infrapdf "github.com/jhoicas/stockmaster-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stockmaster-api/internal/interfaces/http"
	"github.com/jhoicas/stockmaster-api/pkg/config"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios fuera de transacción (consultas y CRUD)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	partnerRepo := postgres.NewPartnerRepository(pool)
	stockRepo := postgres.NewProductStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	alertRepo := postgres.NewLowStockAlertRepository(pool)
	operationRepo := postgres.NewOperationRepository(pool)
	lineRepo := postgres.NewOperationLineRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificaciones por correo (best-effort; no-op sin SMTP configurado)
	notifier := infraemail.NewGomailNotifier(cfg.SMTP, productRepo, locationRepo, warehouseRepo, log.Component("notificaciones"))
	if !cfg.SMTP.Enabled() {
		log.Info().Msg("SMTP no configurado: notificaciones por correo deshabilitadas")
	}

	// Motores
	ledgerUC := stock.NewLedgerUseCase(txRunner, notifier, log.Component("stock"))
	workflowUC := operation.NewWorkflowUseCase(txRunner, notifier, log.Component("operaciones"))
	operationQueryUC := operation.NewQueryUseCase(operationRepo, lineRepo)

	// PDF de documentos validados
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := operation.NewPDFUseCase(operationRepo, lineRepo, productRepo, locationRepo, pdfGenerator)

	// CRUD y consultas
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, locationRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	partnerUC := usecase.NewPartnerUseCase(partnerRepo)
	alertUC := usecase.NewAlertUseCase(alertRepo)
	stockQueryUC := usecase.NewStockQueryUseCase(stockRepo, movementRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockMaster API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC:  warehouseUC,
		ProductUC:    productUC,
		PartnerUC:    partnerUC,
		AlertUC:      alertUC,
		StockQueryUC: stockQueryUC,
		LedgerUC:     ledgerUC,
		WorkflowUC:   workflowUC,
		OperationQUC: operationQueryUC,
		PDFUC:        pdfUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
