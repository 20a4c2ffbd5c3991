package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Combustible-api/internal/application/report"
	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/fuel"
	"github.com/jhoicas/Combustible-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los read-models (sin transacciones: los reportes solo
// leen el ledger).
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

type fakeCheckRepo struct {
	checks []*entity.PhysicalStockCheck
}

func (r *fakeCheckRepo) Create(c *entity.PhysicalStockCheck) error {
	r.checks = append(r.checks, c)
	return nil
}
func (r *fakeCheckRepo) GetByID(string) (*entity.PhysicalStockCheck, error) { return nil, nil }

func (r *fakeCheckRepo) GetForUpdate(string) (*entity.PhysicalStockCheck, error) { return nil, nil }

func (r *fakeCheckRepo) Update(*entity.PhysicalStockCheck) error { return nil }

func (r *fakeCheckRepo) ListByContainer(entity.ContainerRef, int, int) ([]*entity.PhysicalStockCheck, error) {
	return nil, nil
}
func (r *fakeCheckRepo) ListBetween(from, to time.Time) ([]*entity.PhysicalStockCheck, error) {
	var out []*entity.PhysicalStockCheck
	for _, c := range r.checks {
		if !c.CheckedAt.Before(from) && c.CheckedAt.Before(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeReportRepo struct {
	reports map[string]*entity.VarianceReport
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]*entity.VarianceReport)}
}

func (r *fakeReportRepo) Create(rep *entity.VarianceReport) error {
	cp := *rep
	r.reports[rep.ID] = &cp
	return nil
}

func (r *fakeReportRepo) GetByID(id string) (*entity.VarianceReport, error) {
	rep, ok := r.reports[id]
	if !ok {
		return nil, nil
	}
	cp := *rep
	return &cp, nil
}

func (r *fakeReportRepo) Update(rep *entity.VarianceReport) error {
	cp := *rep
	r.reports[rep.ID] = &cp
	return nil
}

func (r *fakeReportRepo) List(limit, offset int) ([]*entity.VarianceReport, error) {
	var out []*entity.VarianceReport
	for _, rep := range r.reports {
		cp := *rep
		out = append(out, &cp)
	}
	return out, nil
}

type fakeTxnRepo struct {
	txns []*entity.FuelTransaction
	avg  *decimal.Decimal
}

func (r *fakeTxnRepo) Create(*entity.FuelTransaction) error { return nil }

func (r *fakeTxnRepo) GetByID(string) (*entity.FuelTransaction, error) { return nil, nil }

func (r *fakeTxnRepo) GetForUpdate(string) (*entity.FuelTransaction, error) { return nil, nil }

func (r *fakeTxnRepo) Delete(string) error { return nil }

func (r *fakeTxnRepo) GetLastByUnit(unitID string) (*entity.FuelTransaction, error) {
	var last *entity.FuelTransaction
	for _, t := range r.txns {
		if t.UnitID != unitID {
			continue
		}
		if last == nil || t.DispensedAt.After(last.DispensedAt) {
			last = t
		}
	}
	return last, nil
}
func (r *fakeTxnRepo) ListByUnit(string, *time.Time, *time.Time, int, int) ([]*entity.FuelTransaction, error) {
	return nil, nil
}
func (r *fakeTxnRepo) ListBySource(entity.ContainerRef, *time.Time, *time.Time, int, int) ([]*entity.FuelTransaction, error) {
	return nil, nil
}
func (r *fakeTxnRepo) ListByUnitAndDay(unitID string, day time.Time) ([]*entity.FuelTransaction, error) {
	next := day.AddDate(0, 0, 1)
	var out []*entity.FuelTransaction
	for _, t := range r.txns {
		if t.UnitID == unitID && !t.DispensedAt.Before(day) && t.DispensedAt.Before(next) {
			out = append(out, t)
		}
	}
	return out, nil
}
func (r *fakeTxnRepo) AvgCombinedByUnitType(string, time.Time) (*decimal.Decimal, error) {
	return r.avg, nil
}

type fakeSummaryRepo struct {
	summaries map[string]*entity.UnitConsumptionSummary
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{summaries: make(map[string]*entity.UnitConsumptionSummary)}
}

func summaryKey(unitID string, date time.Time) string {
	return unitID + "|" + date.Format("2006-01-02")
}

func (r *fakeSummaryRepo) Upsert(s *entity.UnitConsumptionSummary) error {
	cp := *s
	r.summaries[summaryKey(s.UnitID, s.Date)] = &cp
	return nil
}

func (r *fakeSummaryRepo) Get(unitID string, date time.Time) (*entity.UnitConsumptionSummary, error) {
	s, ok := r.summaries[summaryKey(unitID, date)]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSummaryRepo) Delete(unitID string, date time.Time) error {
	delete(r.summaries, summaryKey(unitID, date))
	return nil
}

func (r *fakeSummaryRepo) ListBetween(from, to time.Time) ([]*entity.UnitConsumptionSummary, error) {
	var out []*entity.UnitConsumptionSummary
	for _, s := range r.summaries {
		if !s.Date.Before(from) && !s.Date.After(to) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSummaryRepo) ListByUnit(unitID string, from, to time.Time) ([]*entity.UnitConsumptionSummary, error) {
	var out []*entity.UnitConsumptionSummary
	for _, s := range r.summaries {
		if s.UnitID == unitID && !s.Date.Before(from) && !s.Date.After(to) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeUnitRepo struct {
	units map[string]*entity.Unit
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{units: make(map[string]*entity.Unit)}
}

func (r *fakeUnitRepo) Create(u *entity.Unit) error { r.units[u.ID] = u; return nil }

func (r *fakeUnitRepo) GetByID(id string) (*entity.Unit, error) {
	u, ok := r.units[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUnitRepo) GetForUpdate(id string) (*entity.Unit, error) { return r.GetByID(id) }

func (r *fakeUnitRepo) List(int, int) ([]*entity.Unit, error) { return nil, nil }

func (r *fakeUnitRepo) ListActive() ([]*entity.Unit, error) {
	var out []*entity.Unit
	for _, u := range r.units {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}
func (r *fakeUnitRepo) Update(*entity.Unit) error { return nil }

func (r *fakeUnitRepo) UpdateMeters(string, decimal.Decimal, decimal.Decimal) error { return nil }

func check(kind entity.ContainerKind, variance string, status string, at time.Time) *entity.PhysicalStockCheck {
	return &entity.PhysicalStockCheck{
		Container:      entity.ContainerRef{Kind: kind, ID: "c-1"},
		Variance:       dec(variance),
		VarianceStatus: status,
		CheckedAt:      at,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes de varianza
// ──────────────────────────────────────────────────────────────────────────────

func TestVarianceReportGenerate_AgregaLosChequeosDelPeriodo(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	checkRepo := &fakeCheckRepo{checks: []*entity.PhysicalStockCheck{
		check(entity.ContainerKindStorage, "-20", entity.VarianceStatusMinor, day.Add(2*time.Hour)),
		check(entity.ContainerKindTruck, "-5", entity.VarianceStatusNormal, day.Add(8*time.Hour)),
		check(entity.ContainerKindStorage, "-60", entity.VarianceStatusCritical, day.Add(20*time.Hour)),
		// Fuera de la ventana del día.
		check(entity.ContainerKindStorage, "-100", entity.VarianceStatusCritical, day.AddDate(0, 0, 1)),
	}}
	uc := report.NewVarianceReportUseCase(checkRepo, newFakeReportRepo())

	rep, err := uc.Generate(context.Background(), entity.ReportPeriodDaily, day.Add(9*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 3, rep.TotalChecks)
	assert.True(t, rep.TotalVariance.Equal(dec("-85")))
	assert.True(t, rep.StorageVariance.Equal(dec("-80")))
	assert.True(t, rep.TruckVariance.Equal(dec("-5")))
	assert.Equal(t, 1, rep.NormalCount)
	assert.Equal(t, 1, rep.MinorCount)
	assert.Equal(t, 0, rep.WarningCount)
	assert.Equal(t, 1, rep.CriticalCount)
	assert.Equal(t, entity.ReportStatusDraft, rep.Status)
	assert.True(t, rep.PeriodStart.Equal(day), "start se normaliza al inicio del día")
	assert.True(t, rep.PeriodEnd.Equal(day.AddDate(0, 0, 1)))
}

func TestVarianceReportGenerate_VentanasDePeriodo(t *testing.T) {
	uc := report.NewVarianceReportUseCase(&fakeCheckRepo{}, newFakeReportRepo())

	// Miércoles 2026-08-12: la semana arranca el lunes 2026-08-10.
	wed := time.Date(2026, 8, 12, 15, 0, 0, 0, time.UTC)
	rep, err := uc.Generate(context.Background(), entity.ReportPeriodWeekly, wed)
	require.NoError(t, err)
	assert.True(t, rep.PeriodStart.Equal(time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, rep.PeriodEnd.Equal(time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)))

	rep, err = uc.Generate(context.Background(), entity.ReportPeriodMonthly, wed)
	require.NoError(t, err)
	assert.True(t, rep.PeriodStart.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, rep.PeriodEnd.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))

	_, err = uc.Generate(context.Background(), "QUARTERLY", wed)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVarianceReportWorkflow(t *testing.T) {
	uc := report.NewVarianceReportUseCase(&fakeCheckRepo{}, newFakeReportRepo())

	rep, err := uc.Generate(context.Background(), entity.ReportPeriodDaily, time.Now())
	require.NoError(t, err)

	// DRAFT no se aprueba directamente.
	_, err = uc.Approve(context.Background(), rep.ID, "sup-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	rep, err = uc.Finalize(context.Background(), rep.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusFinal, rep.Status)

	// Rechazo: vuelve a DRAFT y se puede finalizar de nuevo.
	rep, err = uc.Reject(context.Background(), rep.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusDraft, rep.Status)

	rep, err = uc.Finalize(context.Background(), rep.ID)
	require.NoError(t, err)

	rep, err = uc.Approve(context.Background(), rep.ID, "sup-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusApproved, rep.Status)
	assert.Equal(t, "sup-1", rep.ApprovedBy)

	// APPROVED es terminal.
	_, err = uc.Reject(context.Background(), rep.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestVarianceReportGetByID_NoExiste(t *testing.T) {
	uc := report.NewVarianceReportUseCase(&fakeCheckRepo{}, newFakeReportRepo())
	_, err := uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resúmenes de consumo
// ──────────────────────────────────────────────────────────────────────────────

func txn(unitID string, at time.Time, fuelAmount, hourDiff, kmDiff string, combined *decimal.Decimal) *entity.FuelTransaction {
	prevHour := dec("100")
	prevOdo := dec("1000")
	return &entity.FuelTransaction{
		UnitID:             unitID,
		FuelAmount:         dec(fuelAmount),
		PreviousHourMeter:  prevHour,
		CurrentHourMeter:   prevHour.Add(dec(hourDiff)),
		PreviousOdometer:   prevOdo,
		CurrentOdometer:    prevOdo.Add(dec(kmDiff)),
		CombinedEfficiency: combined,
		DispensedAt:        at,
	}
}

func TestRebuildForUnit_AgregaElDia(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	eff1 := dec("5")
	eff2 := dec("7")
	txnRepo := &fakeTxnRepo{txns: []*entity.FuelTransaction{
		txn("u-1", day.Add(6*time.Hour), "50", "10", "0", &eff1),
		txn("u-1", day.Add(14*time.Hour), "70", "10", "40", &eff2),
		// Sin eficiencia calculable: cuenta en totales, no en promedios.
		txn("u-1", day.Add(18*time.Hour), "30", "0", "0", nil),
		// Otro día y otra unidad: fuera del agregado.
		txn("u-1", day.AddDate(0, 0, 1), "99", "1", "1", &eff1),
		txn("u-2", day.Add(6*time.Hour), "99", "1", "1", &eff1),
	}}
	uc := report.NewConsumptionSummaryUseCase(txnRepo, newFakeSummaryRepo(), newFakeUnitRepo(), testLogger())

	// La hora del día se normaliza al día calendario.
	summary, err := uc.RebuildForUnit(context.Background(), "u-1", day.Add(11*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, 3, summary.TransactionCount)
	assert.True(t, summary.TotalFuel.Equal(dec("150")))
	assert.True(t, summary.TotalHours.Equal(dec("20")))
	assert.True(t, summary.TotalKm.Equal(dec("40")))
	require.NotNil(t, summary.AvgEfficiency)
	assert.True(t, summary.AvgEfficiency.Equal(dec("6")), "promedio solo de las calculables")
	require.NotNil(t, summary.MinEfficiency)
	assert.True(t, summary.MinEfficiency.Equal(dec("5")))
	require.NotNil(t, summary.MaxEfficiency)
	assert.True(t, summary.MaxEfficiency.Equal(dec("7")))
}

func TestRebuildForUnit_DiaVacioEliminaElResumen(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	summaryRepo := newFakeSummaryRepo()
	require.NoError(t, summaryRepo.Upsert(&entity.UnitConsumptionSummary{
		UnitID: "u-1", Date: day, TransactionCount: 2,
	}))
	uc := report.NewConsumptionSummaryUseCase(&fakeTxnRepo{}, summaryRepo, newFakeUnitRepo(), testLogger())

	summary, err := uc.RebuildForUnit(context.Background(), "u-1", day)
	require.NoError(t, err)
	assert.Nil(t, summary, "sin transacciones el resumen no existe")

	stored, err := summaryRepo.Get("u-1", day)
	require.NoError(t, err)
	assert.Nil(t, stored, "el resumen obsoleto se elimina")
}

func TestRebuildDay_RecorreLasUnidadesActivas(t *testing.T) {
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	eff := dec("5")
	txnRepo := &fakeTxnRepo{txns: []*entity.FuelTransaction{
		txn("u-1", day.Add(6*time.Hour), "50", "10", "0", &eff),
		txn("u-2", day.Add(8*time.Hour), "30", "5", "0", &eff),
	}}
	unitRepo := newFakeUnitRepo()
	require.NoError(t, unitRepo.Create(&entity.Unit{ID: "u-1", IsActive: true}))
	require.NoError(t, unitRepo.Create(&entity.Unit{ID: "u-2", IsActive: true}))
	require.NoError(t, unitRepo.Create(&entity.Unit{ID: "u-3", IsActive: false}))
	summaryRepo := newFakeSummaryRepo()
	uc := report.NewConsumptionSummaryUseCase(txnRepo, summaryRepo, unitRepo, testLogger())

	require.NoError(t, uc.RebuildDay(context.Background(), day))

	s1, _ := summaryRepo.Get("u-1", day)
	s2, _ := summaryRepo.Get("u-2", day)
	s3, _ := summaryRepo.Get("u-3", day)
	assert.NotNil(t, s1)
	assert.NotNil(t, s2)
	assert.Nil(t, s3, "las unidades inactivas no se procesan")
}

func TestRateUnit(t *testing.T) {
	day := time.Now().UTC()
	lastEff := dec("8")
	avg := dec("10")
	txnRepo := &fakeTxnRepo{
		txns: []*entity.FuelTransaction{txn("u-1", day, "50", "10", "0", &lastEff)},
		avg:  &avg,
	}
	unitRepo := newFakeUnitRepo()
	require.NoError(t, unitRepo.Create(&entity.Unit{ID: "u-1", UnitTypeID: "ut-1", IsActive: true}))
	uc := report.NewConsumptionSummaryUseCase(txnRepo, newFakeSummaryRepo(), unitRepo, testLogger())

	// 8 vs promedio 10: -20% => EXCELLENT (consumir menos que el promedio es mejor).
	rating, err := uc.RateUnit(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, fuel.RatingExcellent, rating)

	// Sin promedio del tipo: NOT_RATED.
	txnRepo.avg = nil
	rating, err = uc.RateUnit(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, fuel.RatingNotRated, rating)

	// Unidad inexistente.
	_, err = uc.RateUnit(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
