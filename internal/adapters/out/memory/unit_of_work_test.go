package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"logistics/internal/adapters/out/memory"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/event"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	store   *memory.Store
	factory ports.UnitOfWorkFactory
	now     time.Time
}

func (s *UnitOfWorkTestSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.store = memory.NewStore(memory.WithClock(func() time.Time { return s.now }))
	s.factory = memory.NewUnitOfWorkFactory(s.store)
}

func (s *UnitOfWorkTestSuite) newDriver(id string) *driver.Driver {
	d, err := driver.NewDriver(id, "Driver "+id, "")
	s.Require().NoError(err)
	return d
}

func (s *UnitOfWorkTestSuite) newOrder(id string, driverID string) *order.Order {
	o, err := order.NewOrder(id, &driverID, s.now)
	s.Require().NoError(err)
	return o
}

// seed commits drivers and orders in one unit of work.
func (s *UnitOfWorkTestSuite) seed(drivers []*driver.Driver, orders []*order.Order) {
	ctx := s.T().Context()
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	for _, d := range drivers {
		s.Require().NoError(uow.DriverRepository().Add(ctx, d))
	}
	for _, o := range orders {
		s.Require().NoError(uow.OrderRepository().Add(ctx, o))
	}
	s.Require().NoError(uow.Commit(ctx))
}

func (s *UnitOfWorkTestSuite) TestFactory_CreatesSeparateInstances() {
	uow1 := s.factory.Create()
	uow2 := s.factory.Create()

	s.NotSame(uow1, uow2)
	s.NotNil(uow1.DriverRepository())
	s.NotNil(uow1.OrderRepository())
	s.NotNil(uow1.EventRepository())
}

func (s *UnitOfWorkTestSuite) TestTransactionLifecycle() {
	ctx := s.T().Context()
	uow := s.factory.Create()

	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Begin(ctx), "Begin on an active unit of work is a no-op")
	s.Require().NoError(uow.Commit(ctx))

	s.Require().ErrorIs(uow.Commit(ctx), memory.ErrTransactionNotStarted)
	s.Require().NoError(uow.Rollback(ctx), "Rollback without a transaction is a no-op")

	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Rollback(ctx))
}

func (s *UnitOfWorkTestSuite) TestRepositoriesRequireActiveTransaction() {
	ctx := s.T().Context()
	uow := s.factory.Create()

	_, err := uow.DriverRepository().Get(ctx, "DRV-001")
	s.Require().ErrorIs(err, memory.ErrTransactionNotStarted)

	err = uow.OrderRepository().Add(ctx, s.newOrder("ORD-001", "DRV-001"))
	s.Require().ErrorIs(err, memory.ErrTransactionNotStarted)

	_, err = uow.EventRepository().IsProcessed(ctx, "evt-1")
	s.Require().ErrorIs(err, memory.ErrTransactionNotStarted)
}

func (s *UnitOfWorkTestSuite) TestDriverRepository_AddGetUpdate() {
	ctx := s.T().Context()
	s.seed([]*driver.Driver{s.newDriver("DRV-001")}, nil)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	repo := uow.DriverRepository()

	d, err := repo.Get(ctx, "DRV-001")
	s.Require().NoError(err)
	s.Equal(driver.Available, d.Status())

	d.MarkBusy()
	s.Require().NoError(repo.Update(ctx, d))

	reloaded, err := repo.Get(ctx, "DRV-001")
	s.Require().NoError(err)
	s.Equal(driver.Busy, reloaded.Status(), "staged update is visible inside the unit of work")
	s.NotSame(d, reloaded)
}

func (s *UnitOfWorkTestSuite) TestDriverRepository_Errors() {
	ctx := s.T().Context()
	s.seed([]*driver.Driver{s.newDriver("DRV-001")}, nil)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	repo := uow.DriverRepository()

	err := repo.Add(ctx, s.newDriver("DRV-001"))
	s.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)

	_, err = repo.Get(ctx, "DRV-404")
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)

	err = repo.Update(ctx, s.newDriver("DRV-404"))
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)

	err = repo.Add(ctx, &driver.Driver{})
	s.Require().ErrorIs(err, driver.ErrDriverIsNotConstructed)
}

func (s *UnitOfWorkTestSuite) TestGetAll_KeepsInsertionOrder() {
	ctx := s.T().Context()
	s.seed([]*driver.Driver{s.newDriver("DRV-003"), s.newDriver("DRV-001")}, nil)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	repo := uow.DriverRepository()

	s.Require().NoError(repo.Add(ctx, s.newDriver("DRV-002")))
	first, err := repo.Get(ctx, "DRV-003")
	s.Require().NoError(err)
	first.MarkBusy()
	s.Require().NoError(repo.Update(ctx, first))

	all, err := repo.GetAll(ctx)
	s.Require().NoError(err)

	ids := make([]string, 0, len(all))
	for _, d := range all {
		ids = append(ids, d.ID())
	}
	s.Equal([]string{"DRV-003", "DRV-001", "DRV-002"}, ids)
	s.Equal(driver.Busy, all[0].Status())
}

func (s *UnitOfWorkTestSuite) TestRollback_DiscardsStagedChanges() {
	ctx := s.T().Context()
	s.seed([]*driver.Driver{s.newDriver("DRV-001")}, []*order.Order{s.newOrder("ORD-001", "DRV-001")})

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	o, err := uow.OrderRepository().Get(ctx, "ORD-001")
	s.Require().NoError(err)
	s.Require().NoError(o.MarkDelayed())
	s.Require().NoError(uow.OrderRepository().Update(ctx, o))
	s.Require().NoError(uow.DriverRepository().Add(ctx, s.newDriver("DRV-002")))
	s.Require().NoError(uow.EventRepository().Record(ctx, s.record("evt-1", "ORD-001")))
	s.Require().NoError(uow.Rollback(ctx))

	snapshot, err := s.store.Snapshot(ctx)
	s.Require().NoError(err)
	s.Len(snapshot.Drivers, 1)
	s.Equal(order.Active, snapshot.Orders[0].Status())
	s.Empty(snapshot.ProcessedEvents)
	s.Empty(snapshot.History)
}

func (s *UnitOfWorkTestSuite) TestEventRepository_LedgerAndHistory() {
	ctx := s.T().Context()

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	repo := uow.EventRepository()

	processed, err := repo.IsProcessed(ctx, "evt-1")
	s.Require().NoError(err)
	s.False(processed)

	s.Require().NoError(repo.Record(ctx, s.record("evt-1", "ORD-001")))
	s.Require().ErrorIs(repo.Record(ctx, s.record("evt-1", "ORD-001")), errs.ErrObjectAlreadyExists)
	s.Require().ErrorIs(repo.Record(ctx, s.record(" ", "ORD-001")), errs.ErrValueIsRequired)

	processed, err = repo.IsProcessed(ctx, "evt-1")
	s.Require().NoError(err)
	s.True(processed, "staged record is visible inside the unit of work")
	s.Require().NoError(uow.Commit(ctx))

	uow = s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	repo = uow.EventRepository()

	s.Require().ErrorIs(repo.Record(ctx, s.record("evt-1", "ORD-002")), errs.ErrObjectAlreadyExists)
	s.Require().NoError(repo.Record(ctx, s.record("evt-2", "ORD-002")))

	history, err := repo.GetHistory(ctx)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal("evt-1", history[0].EventID)
	s.Equal("evt-2", history[1].EventID)

	count, err := repo.CountProcessed(ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *UnitOfWorkTestSuite) TestSnapshot_IsDeepCopy() {
	ctx := s.T().Context()
	s.seed([]*driver.Driver{s.newDriver("DRV-001")}, []*order.Order{s.newOrder("ORD-001", "DRV-001")})

	snapshot, err := s.store.Snapshot(ctx)
	s.Require().NoError(err)
	s.Equal(s.now, snapshot.TakenAt)

	snapshot.Drivers[0].MarkBusy()
	s.Require().NoError(snapshot.Orders[0].Cancel())

	again, err := s.store.Snapshot(ctx)
	s.Require().NoError(err)
	s.Equal(driver.Available, again.Drivers[0].Status())
	s.Equal(order.Active, again.Orders[0].Status())
}

func (s *UnitOfWorkTestSuite) TestWipe_ClearsEverything() {
	ctx := s.T().Context()
	s.seed([]*driver.Driver{s.newDriver("DRV-001")}, []*order.Order{s.newOrder("ORD-001", "DRV-001")})

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.EventRepository().Record(ctx, s.record("evt-1", "ORD-001")))
	s.Require().NoError(uow.Commit(ctx))

	s.Require().NoError(s.store.Wipe(ctx))

	snapshot, err := s.store.Snapshot(ctx)
	s.Require().NoError(err)
	s.Empty(snapshot.Drivers)
	s.Empty(snapshot.Orders)
	s.Empty(snapshot.ProcessedEvents)
	s.Empty(snapshot.History)

	// a wiped ledger admits the same event id again
	uow = s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.EventRepository().Record(ctx, s.record("evt-1", "ORD-001")))
	s.Require().NoError(uow.Commit(ctx))
}

func (s *UnitOfWorkTestSuite) TestBegin_BlocksUntilReleased() {
	ctx := s.T().Context()
	holder := s.factory.Create()
	s.Require().NoError(holder.Begin(ctx))

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := s.factory.Create().Begin(waitCtx)
	s.Require().ErrorIs(err, context.DeadlineExceeded)

	_, err = s.store.Snapshot(waitCtx)
	s.Require().ErrorIs(err, context.DeadlineExceeded)

	s.Require().NoError(holder.Commit(ctx))

	other := s.factory.Create()
	s.Require().NoError(other.Begin(ctx))
	s.Require().NoError(other.Rollback(ctx))
}

func (s *UnitOfWorkTestSuite) TestConcurrentUnitsOfWork_AreSerialized() {
	ctx := s.T().Context()
	s.seed(nil, []*order.Order{s.newOrder("ORD-001", "DRV-001")})

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		go func() {
			defer wg.Done()
			uow := s.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()

			_ = uow.EventRepository().Record(ctx, s.record(fmt.Sprintf("evt-%d", i), "ORD-001"))
			_ = uow.Commit(ctx)
		}()
	}
	wg.Wait()

	snapshot, err := s.store.Snapshot(ctx)
	s.Require().NoError(err)
	s.Len(snapshot.History, workers)
	s.Len(snapshot.ProcessedEvents, workers)
}

func (s *UnitOfWorkTestSuite) record(eventID string, orderID string) event.Record {
	return event.NewRecord(
		eventID, s.now, orderID, "DRV-001", "Traffic",
		0.2, event.RiskSourceRemote, event.ActionMaintainAssignment, event.OutcomeNone, order.Delayed,
	)
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
