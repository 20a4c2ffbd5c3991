package ledger_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/repository"
	"github.com/jhoicas/Combustible-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los motores del ledger. El TxRunner fake clona el
// estado antes de ejecutar y lo restaura si la función falla, imitando el
// rollback de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	containers map[entity.ContainerRef]*entity.FuelContainer
	transfers  map[string]*entity.FuelTransfer
	txns       map[string]*entity.FuelTransaction
	units      map[string]*entity.Unit
	checks     map[string]*entity.PhysicalStockCheck
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		containers: make(map[entity.ContainerRef]*entity.FuelContainer),
		transfers:  make(map[string]*entity.FuelTransfer),
		txns:       make(map[string]*entity.FuelTransaction),
		units:      make(map[string]*entity.Unit),
		checks:     make(map[string]*entity.PhysicalStockCheck),
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for k, v := range s.containers {
		cp := *v
		c.containers[k] = &cp
	}
	for k, v := range s.transfers {
		cp := *v
		c.transfers[k] = &cp
	}
	for k, v := range s.txns {
		cp := *v
		c.txns[k] = &cp
	}
	for k, v := range s.units {
		cp := *v
		c.units[k] = &cp
	}
	for k, v := range s.checks {
		cp := *v
		c.checks[k] = &cp
	}
	return c
}

func (s *fakeStore) putContainer(c *entity.FuelContainer) {
	cp := *c
	s.containers[c.Ref()] = &cp
}

func (s *fakeStore) putUnit(u *entity.Unit) {
	cp := *u
	s.units[u.ID] = &cp
}

func (s *fakeStore) containerLevel(ref entity.ContainerRef) decimal.Decimal {
	return s.containers[ref].CurrentLevel
}

type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.ContainerRepository,
	repository.FuelTransferRepository,
	repository.FuelTransactionRepository,
	repository.UnitRepository,
	repository.StockCheckRepository,
) error) error {
	snapshot := r.store.clone()
	err := fn(
		&fakeContainerRepo{store: r.store},
		&fakeTransferRepo{store: r.store},
		&fakeTxnRepo{store: r.store},
		&fakeUnitRepo{store: r.store},
		&fakeCheckRepo{store: r.store},
	)
	if err != nil {
		*r.store = *snapshot
	}
	return err
}

// ─── Contenedores ─────────────────────────────────────────────────────────────

type fakeContainerRepo struct {
	store *fakeStore
}

func (r *fakeContainerRepo) Get(ref entity.ContainerRef) (*entity.FuelContainer, error) {
	c, ok := r.store.containers[ref]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeContainerRepo) GetForUpdate(ref entity.ContainerRef) (*entity.FuelContainer, error) {
	return r.Get(ref)
}

func (r *fakeContainerRepo) UpdateLevel(ref entity.ContainerRef, level decimal.Decimal) error {
	c, ok := r.store.containers[ref]
	if !ok {
		return nil
	}
	c.CurrentLevel = level
	return nil
}

// ─── Transferencias ───────────────────────────────────────────────────────────

type fakeTransferRepo struct {
	store *fakeStore
}

func (r *fakeTransferRepo) Create(t *entity.FuelTransfer) error {
	cp := *t
	r.store.transfers[t.ID] = &cp
	return nil
}

func (r *fakeTransferRepo) GetByID(id string) (*entity.FuelTransfer, error) {
	t, ok := r.store.transfers[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTransferRepo) GetForUpdate(id string) (*entity.FuelTransfer, error) {
	return r.GetByID(id)
}

func (r *fakeTransferRepo) Update(t *entity.FuelTransfer) error {
	cp := *t
	r.store.transfers[t.ID] = &cp
	return nil
}

func (r *fakeTransferRepo) Delete(id string) error {
	delete(r.store.transfers, id)
	return nil
}

func (r *fakeTransferRepo) List(from, to *time.Time, limit, offset int) ([]*entity.FuelTransfer, error) {
	var out []*entity.FuelTransfer
	for _, t := range r.store.transfers {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransferredAt.After(out[j].TransferredAt) })
	return out, nil
}

func (r *fakeTransferRepo) ListByStorage(storageID string, from, to *time.Time, limit, offset int) ([]*entity.FuelTransfer, error) {
	all, _ := r.List(from, to, limit, offset)
	var out []*entity.FuelTransfer
	for _, t := range all {
		if t.StorageID == storageID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTransferRepo) ListByTruck(truckID string, from, to *time.Time, limit, offset int) ([]*entity.FuelTransfer, error) {
	all, _ := r.List(from, to, limit, offset)
	var out []*entity.FuelTransfer
	for _, t := range all {
		if t.TruckID == truckID {
			out = append(out, t)
		}
	}
	return out, nil
}

// ─── Transacciones (despachos) ────────────────────────────────────────────────

type fakeTxnRepo struct {
	store *fakeStore
}

func (r *fakeTxnRepo) Create(t *entity.FuelTransaction) error {
	cp := *t
	r.store.txns[t.ID] = &cp
	return nil
}

func (r *fakeTxnRepo) GetByID(id string) (*entity.FuelTransaction, error) {
	t, ok := r.store.txns[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTxnRepo) GetForUpdate(id string) (*entity.FuelTransaction, error) {
	return r.GetByID(id)
}

func (r *fakeTxnRepo) Delete(id string) error {
	delete(r.store.txns, id)
	return nil
}

func (r *fakeTxnRepo) GetLastByUnit(unitID string) (*entity.FuelTransaction, error) {
	var last *entity.FuelTransaction
	for _, t := range r.store.txns {
		if t.UnitID != unitID {
			continue
		}
		if last == nil || t.DispensedAt.After(last.DispensedAt) {
			cp := *t
			last = &cp
		}
	}
	return last, nil
}

func (r *fakeTxnRepo) ListByUnit(unitID string, from, to *time.Time, limit, offset int) ([]*entity.FuelTransaction, error) {
	var out []*entity.FuelTransaction
	for _, t := range r.store.txns {
		if t.UnitID == unitID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DispensedAt.After(out[j].DispensedAt) })
	return out, nil
}

func (r *fakeTxnRepo) ListBySource(source entity.ContainerRef, from, to *time.Time, limit, offset int) ([]*entity.FuelTransaction, error) {
	var out []*entity.FuelTransaction
	for _, t := range r.store.txns {
		if t.Source == source {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTxnRepo) ListByUnitAndDay(unitID string, day time.Time) ([]*entity.FuelTransaction, error) {
	next := day.AddDate(0, 0, 1)
	var out []*entity.FuelTransaction
	for _, t := range r.store.txns {
		if t.UnitID == unitID && !t.DispensedAt.Before(day) && t.DispensedAt.Before(next) {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTxnRepo) AvgCombinedByUnitType(unitTypeID string, since time.Time) (*decimal.Decimal, error) {
	return nil, nil
}

// ─── Unidades ─────────────────────────────────────────────────────────────────

type fakeUnitRepo struct {
	store *fakeStore
}

func (r *fakeUnitRepo) Create(u *entity.Unit) error {
	cp := *u
	r.store.units[u.ID] = &cp
	return nil
}

func (r *fakeUnitRepo) GetByID(id string) (*entity.Unit, error) {
	u, ok := r.store.units[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUnitRepo) GetForUpdate(id string) (*entity.Unit, error) {
	return r.GetByID(id)
}

func (r *fakeUnitRepo) List(limit, offset int) ([]*entity.Unit, error) {
	var out []*entity.Unit
	for _, u := range r.store.units {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUnitRepo) ListActive() ([]*entity.Unit, error) {
	var out []*entity.Unit
	for _, u := range r.store.units {
		if u.IsActive {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUnitRepo) Update(u *entity.Unit) error {
	cp := *u
	r.store.units[u.ID] = &cp
	return nil
}

func (r *fakeUnitRepo) UpdateMeters(id string, hourMeter, odometer decimal.Decimal) error {
	u, ok := r.store.units[id]
	if !ok {
		return nil
	}
	u.CurrentHourMeter = hourMeter
	u.CurrentOdometer = odometer
	return nil
}

// ─── Chequeos físicos ─────────────────────────────────────────────────────────

type fakeCheckRepo struct {
	store *fakeStore
}

func (r *fakeCheckRepo) Create(c *entity.PhysicalStockCheck) error {
	cp := *c
	r.store.checks[c.ID] = &cp
	return nil
}

func (r *fakeCheckRepo) GetByID(id string) (*entity.PhysicalStockCheck, error) {
	c, ok := r.store.checks[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCheckRepo) GetForUpdate(id string) (*entity.PhysicalStockCheck, error) {
	return r.GetByID(id)
}

func (r *fakeCheckRepo) Update(c *entity.PhysicalStockCheck) error {
	cp := *c
	r.store.checks[c.ID] = &cp
	return nil
}

func (r *fakeCheckRepo) ListByContainer(ref entity.ContainerRef, limit, offset int) ([]*entity.PhysicalStockCheck, error) {
	var out []*entity.PhysicalStockCheck
	for _, c := range r.store.checks {
		if c.Container == ref {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCheckRepo) ListBetween(from, to time.Time) ([]*entity.PhysicalStockCheck, error) {
	var out []*entity.PhysicalStockCheck
	for _, c := range r.store.checks {
		if !c.CheckedAt.Before(from) && c.CheckedAt.Before(to) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ─── Tipos de unidad (fuera de tx) ────────────────────────────────────────────

type fakeUnitTypeRepo struct {
	types map[string]*entity.UnitType
}

func newFakeUnitTypeRepo() *fakeUnitTypeRepo {
	return &fakeUnitTypeRepo{types: make(map[string]*entity.UnitType)}
}

func (r *fakeUnitTypeRepo) Create(t *entity.UnitType) error {
	cp := *t
	r.types[t.ID] = &cp
	return nil
}

func (r *fakeUnitTypeRepo) GetByID(id string) (*entity.UnitType, error) {
	t, ok := r.types[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeUnitTypeRepo) List() ([]*entity.UnitType, error) {
	var out []*entity.UnitType
	for _, t := range r.types {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUnitTypeRepo) Update(t *entity.UnitType) error {
	cp := *t
	r.types[t.ID] = &cp
	return nil
}

// ─── Ayudantes comunes ────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// testLogger logger silenciado para no ensuciar la salida de los tests.
func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newStorage(id, code, capacity, level string) *entity.FuelContainer {
	return &entity.FuelContainer{
		ID:           id,
		Kind:         entity.ContainerKindStorage,
		Code:         code,
		FuelType:     entity.FuelTypeDiesel,
		Capacity:     dec(capacity),
		CurrentLevel: dec(level),
		IsActive:     true,
	}
}

func newTruck(id, code, capacity, level string) *entity.FuelContainer {
	return &entity.FuelContainer{
		ID:           id,
		Kind:         entity.ContainerKindTruck,
		Code:         code,
		FuelType:     entity.FuelTypeDiesel,
		Capacity:     dec(capacity),
		CurrentLevel: dec(level),
		IsActive:     true,
	}
}

func newUnit(id, code, hourMeter, odometer string) *entity.Unit {
	return &entity.Unit{
		ID:               id,
		Code:             code,
		UnitTypeID:       "ut-1",
		CurrentHourMeter: dec(hourMeter),
		CurrentOdometer:  dec(odometer),
		IsActive:         true,
	}
}
