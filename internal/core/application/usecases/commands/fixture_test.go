package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"logistics/internal/adapters/out/memory"
	"logistics/internal/core/application/risk"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockRiskPredictor struct{ mock.Mock }

func (m *MockRiskPredictor) Predict(ctx context.Context, req ports.RiskRequest) risk.Assessment {
	args := m.Called(ctx, req)
	return args.Get(0).(risk.Assessment)
}

type uowFactory struct{ inner *memory.UnitOfWorkFactory }

func (f uowFactory) Create() commands.UoW { return f.inner.Create() }

type driverUoWFactory struct{ inner *memory.UnitOfWorkFactory }

func (f driverUoWFactory) Create() commands.DriverUoW { return f.inner.Create() }

// fixture wires the command handlers to a real in-memory store.
type fixture struct {
	store     *memory.Store
	factory   uowFactory
	predictor *MockRiskPredictor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{
		store:     store,
		factory:   uowFactory{inner: memory.NewUnitOfWorkFactory(store)},
		predictor: new(MockRiskPredictor),
	}
}

func (f *fixture) addDriver(t *testing.T, id string) {
	t.Helper()
	cmd, err := commands.NewCreateDriverCommand(id, "Driver "+id, "", "")
	require.NoError(t, err)
	_, err = commands.NewCreateDriverCommandHandler(driverUoWFactory{inner: f.factory.inner}, discardLogger()).
		Handle(t.Context(), cmd)
	require.NoError(t, err)
}

func (f *fixture) addOrder(t *testing.T, id string, driverID string) {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(id, &driverID, "", 0, time.Time{})
	require.NoError(t, err)
	_, err = commands.NewCreateOrderCommandHandler(f.factory, func() time.Time { return fixedNow }, discardLogger()).
		Handle(t.Context(), cmd)
	require.NoError(t, err)
}

func (f *fixture) handler(
	t *testing.T,
	engineOpts []services.ReassignmentOption,
	opts ...commands.ProcessDelayEventOption,
) commands.ProcessDelayEventCommandHandler {
	t.Helper()
	engine, err := services.NewReassignmentEngine(services.DefaultMaxReassignments, engineOpts...)
	require.NoError(t, err)

	opts = append([]commands.ProcessDelayEventOption{
		commands.WithClock(func() time.Time { return fixedNow }),
		commands.WithLogger(discardLogger()),
	}, opts...)
	return commands.NewProcessDelayEventCommandHandler(f.factory, f.predictor, engine, opts...)
}

func (f *fixture) snapshot(t *testing.T) ports.Snapshot {
	t.Helper()
	s, err := f.store.Snapshot(t.Context())
	require.NoError(t, err)
	return s
}

func (f *fixture) order(t *testing.T, id string) *order.Order {
	t.Helper()
	for _, o := range f.snapshot(t).Orders {
		if o.ID() == id {
			return o
		}
	}
	t.Fatalf("order %s not in store", id)
	return nil
}

func (f *fixture) driver(t *testing.T, id string) *driver.Driver {
	t.Helper()
	for _, d := range f.snapshot(t).Drivers {
		if d.ID() == id {
			return d
		}
	}
	t.Fatalf("driver %s not in store", id)
	return nil
}

func delayEvent(t *testing.T, eventID, orderID, driverID, reason string) commands.ProcessDelayEventCommand {
	t.Helper()
	cmd, err := commands.NewProcessDelayEventCommand(eventID, orderID, driverID, reason)
	require.NoError(t, err)
	return cmd
}
