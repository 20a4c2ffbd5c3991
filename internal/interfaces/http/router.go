package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Combustible-api/internal/application/ledger"
	"github.com/jhoicas/Combustible-api/internal/application/report"
	"github.com/jhoicas/Combustible-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StorageUC    *usecase.StorageUseCase
	TruckUC      *usecase.TruckUseCase
	UnitUC       *usecase.UnitUseCase
	ContainerUC  *ledger.ContainerUseCase
	TransferUC   *ledger.TransferUseCase
	DispenseUC   *ledger.DispenseUseCase
	StockCheckUC *ledger.StockCheckUseCase
	ReportUC     *report.VarianceReportUseCase
	SummaryUC    *report.ConsumptionSummaryUseCase
	ExportUC     *report.ExportUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Health (público)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Tanques de almacenamiento
	storages := protected.Group("/storages")
	storageHandler := NewStorageHandler(deps.StorageUC, deps.ContainerUC)
	storages.Post("/", storageHandler.Create)
	storages.Get("/", storageHandler.List)
	storages.Get("/low", storageHandler.ListLow)
	storages.Get("/:id", storageHandler.GetByID)
	storages.Put("/:id", storageHandler.Update)
	storages.Put("/:id/level", storageHandler.AdjustLevel)

	// Camiones cisterna
	trucks := protected.Group("/trucks")
	truckHandler := NewTruckHandler(deps.TruckUC, deps.ContainerUC)
	trucks.Post("/", truckHandler.Create)
	trucks.Get("/", truckHandler.List)
	trucks.Get("/:id", truckHandler.GetByID)
	trucks.Put("/:id", truckHandler.Update)
	trucks.Put("/:id/level", truckHandler.AdjustLevel)

	// Unidades y tipos
	unitHandler := NewUnitHandler(deps.UnitUC, deps.SummaryUC)
	unitTypes := protected.Group("/unit-types")
	unitTypes.Post("/", unitHandler.CreateUnitType)
	unitTypes.Get("/", unitHandler.ListUnitTypes)
	unitTypes.Put("/:id", unitHandler.UpdateUnitType)

	transactionHandler := NewTransactionHandler(deps.DispenseUC)
	units := protected.Group("/units")
	units.Post("/", unitHandler.CreateUnit)
	units.Get("/", unitHandler.ListUnits)
	units.Get("/:id", unitHandler.GetUnit)
	units.Put("/:id", unitHandler.UpdateUnit)
	units.Get("/:id/rating", unitHandler.Rating)
	units.Get("/:id/transactions", transactionHandler.ListByUnit)

	// Transferencias tanque -> camión
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Put("/:id", transferHandler.UpdateAmount)
	transfers.Delete("/:id", transferHandler.Delete)

	// Despachos a unidades
	transactions := protected.Group("/transactions")
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/", transactionHandler.ListBySource)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Delete("/:id", transactionHandler.Delete)

	// Chequeos físicos de stock
	stockChecks := protected.Group("/stock-checks")
	stockCheckHandler := NewStockCheckHandler(deps.StockCheckUC)
	stockChecks.Post("/", stockCheckHandler.Record)
	stockChecks.Get("/", stockCheckHandler.ListByContainer)
	stockChecks.Get("/:id", stockCheckHandler.GetByID)
	stockChecks.Post("/:id/adjust", stockCheckHandler.Adjust)

	// Reportes y exportables
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.SummaryUC, deps.ExportUC)
	reports.Post("/variance", reportHandler.Generate)
	reports.Get("/variance", reportHandler.List)
	reports.Get("/variance/:id", reportHandler.GetByID)
	reports.Post("/variance/:id/finalize", reportHandler.Finalize)
	reports.Post("/variance/:id/approve", reportHandler.Approve)
	reports.Post("/variance/:id/reject", reportHandler.Reject)
	reports.Get("/variance/:id/pdf", reportHandler.ExportPDF)
	reports.Get("/consumption", reportHandler.ListSummaries)
	reports.Post("/consumption/rebuild", reportHandler.RebuildSummaries)
	reports.Get("/consumption/xlsx", reportHandler.ExportSummariesXLSX)
	reports.Get("/stock-checks/xlsx", reportHandler.ExportChecksXLSX)
}
