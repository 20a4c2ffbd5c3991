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

	_ "github.com/jhoicas/Combustible-api/docs"
	"github.com/jhoicas/Combustible-api/internal/application/ledger"
	"github.com/jhoicas/Combustible-api/internal/application/report"
	"github.com/jhoicas/Combustible-api/internal/application/usecase"
	infraexcel "github.com/jhoicas/Combustible-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/Combustible-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Combustible-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Combustible-api/internal/interfaces/http"
	appscheduler "github.com/jhoicas/Combustible-api/internal/scheduler"
	"github.com/jhoicas/Combustible-api/pkg/config"
	"github.com/jhoicas/Combustible-api/pkg/logger"
)

// @title           Combustible API
// @version         1.0
// @description     Ledger de inventario de combustible: tanques, camiones cisterna y despachos a unidades.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
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

	storageRepo := postgres.NewFuelStorageRepository(pool)
	truckRepo := postgres.NewFuelTruckRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	unitTypeRepo := postgres.NewUnitTypeRepository(pool)
	transferRepo := postgres.NewFuelTransferRepository(pool)
	txnRepo := postgres.NewFuelTransactionRepository(pool)
	checkRepo := postgres.NewStockCheckRepository(pool)
	reportRepo := postgres.NewVarianceReportRepository(pool)
	summaryRepo := postgres.NewConsumptionSummaryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	storageUC := usecase.NewStorageUseCase(storageRepo)
	truckUC := usecase.NewTruckUseCase(truckRepo)
	unitUC := usecase.NewUnitUseCase(unitRepo, unitTypeRepo)

	containerUC := ledger.NewContainerUseCase(txRunner, log)
	transferUC := ledger.NewTransferUseCase(txRunner, transferRepo, log)
	dispenseUC := ledger.NewDispenseUseCase(txRunner, txnRepo, unitRepo, unitTypeRepo, log)
	stockCheckUC := ledger.NewStockCheckUseCase(txRunner, checkRepo, log)

	reportUC := report.NewVarianceReportUseCase(checkRepo, reportRepo)
	summaryUC := report.NewConsumptionSummaryUseCase(txnRepo, summaryRepo, unitRepo, log)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	workbookGenerator := infraexcel.NewWorkbookGenerator()
	exportUC := report.NewExportUseCase(reportUC, summaryRepo, unitRepo, checkRepo, pdfGenerator, workbookGenerator)

	sched := appscheduler.New(cfg.Scheduler, summaryUC, log)
	sched.Start()
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Combustible API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		StorageUC:    storageUC,
		TruckUC:      truckUC,
		UnitUC:       unitUC,
		ContainerUC:  containerUC,
		TransferUC:   transferUC,
		DispenseUC:   dispenseUC,
		StockCheckUC: stockCheckUC,
		ReportUC:     reportUC,
		SummaryUC:    summaryUC,
		ExportUC:     exportUC,
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
