package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpadapter "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/memory"
	"logistics/internal/adapters/out/riskclient"
	"logistics/internal/core/application/risk"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/services"
	"logistics/internal/jobs"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	store      *memory.Store
	uowFactory *memory.UnitOfWorkFactory
	riskClient *riskclient.Client
	predictor  *risk.Predictor
	engine     services.ReassignmentEngine
}

func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	riskClient, err := riskclient.New(riskclient.Config{
		BaseURL:     config.MLServiceURL,
		Timeout:     config.RiskTimeout,
		MaxAttempts: config.RiskMaxAttempts,
		BackoffBase: config.RiskBackoffBase,
	}, riskclient.WithLogger(logger), riskclient.WithMetrics(m))
	if err != nil {
		return nil, err
	}

	engine, err := services.NewReassignmentEngine(config.MaxReassignments,
		services.WithPreviousDriverRelease(config.ReleasePreviousDriver))
	if err != nil {
		return nil, err
	}

	store := memory.NewStore()

	return &CompositionRoot{
		config:     config,
		logger:     logger,
		registry:   registry,
		metrics:    m,
		store:      store,
		uowFactory: memory.NewUnitOfWorkFactory(store),
		riskClient: riskClient,
		predictor: risk.NewPredictor(riskClient, services.NewFallbackRiskHeuristic(nil),
			risk.WithLogger(logger), risk.WithMetrics(m)),
		engine: engine,
	}, nil
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDriverCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.newUoWFactory(), time.Now, c.logger)
}

func (c *CompositionRoot) CreateProcessDelayEventCommandHandler() commands.ProcessDelayEventCommandHandler {
	policy := commands.ScoreWhileLocked
	if c.config.ScoreOutsideLock {
		policy = commands.ScoreBeforeLock
	}
	return commands.NewProcessDelayEventCommandHandler(c.newUoWFactory(), c.predictor, c.engine,
		commands.WithRiskThreshold(c.config.RiskThreshold),
		commands.WithScoringPolicy(policy),
		commands.WithLogger(c.logger),
		commands.WithMetrics(c.metrics),
	)
}

func (c *CompositionRoot) CreateResetSystemCommandHandler() commands.ResetSystemCommandHandler {
	return commands.NewResetSystemCommandHandler(c.store, c.logger)
}

func (c *CompositionRoot) CreateGetSystemStateQueryHandler() queries.GetSystemStateQueryHandler {
	return queries.NewGetSystemStateQueryHandler(c.store)
}

// NewHTTPHandler builds the echo instance with every route wired.
func (c *CompositionRoot) NewHTTPHandler() (*echo.Echo, error) {
	server := httpadapter.NewServer(
		httpadapter.Commands{
			CreateDriver:      c.CreateCreateDriverCommandHandler(),
			CreateOrder:       c.CreateCreateOrderCommandHandler(),
			ProcessDelayEvent: c.CreateProcessDelayEventCommandHandler(),
			ResetSystem:       c.CreateResetSystemCommandHandler(),
		},
		httpadapter.Queries{
			GetDrivers:     queries.NewGetDriversQueryHandler(c.store),
			GetDriver:      queries.NewGetDriverQueryHandler(c.store),
			GetOrders:      queries.NewGetOrdersQueryHandler(c.store),
			GetOrder:       queries.NewGetOrderQueryHandler(c.store),
			GetSystemState: c.CreateGetSystemStateQueryHandler(),
			GetHealth:      queries.NewGetHealthQueryHandler(c.store),
		},
		c.logger,
	)
	return httpadapter.NewRouter(server, c.registry, c.logger)
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewStateReportJob(c.CreateGetSystemStateQueryHandler(), c.metrics, c.config.StateReportSchedule, c.logger),
		jobs.NewRiskProbeJob(c.riskClient, c.metrics, c.config.RiskProbeSchedule, c.logger),
	)
}

type demoDriver struct {
	id   string
	name string
}

type demoOrder struct {
	id       string
	driverID string
}

var (
	demoDrivers = []demoDriver{
		{"DRV-001", "Alice Johnson"},
		{"DRV-002", "Bob Chen"},
		{"DRV-003", "Carol Martinez"},
	}
	demoOrders = []demoOrder{
		{"ORD-001", "DRV-001"},
		{"ORD-002", "DRV-002"},
	}
)

// SeedDemoData loads the demo fleet through the regular create commands, so
// drivers of seeded orders end up BUSY. Entities that already exist are kept.
func (c *CompositionRoot) SeedDemoData(ctx context.Context) error {
	createDriver := c.CreateCreateDriverCommandHandler()
	for _, d := range demoDrivers {
		cmd, err := commands.NewCreateDriverCommand(d.id, d.name, "", "")
		if err != nil {
			return err
		}
		if _, err = createDriver.Handle(ctx, cmd); err != nil && !errors.Is(err, errs.ErrObjectAlreadyExists) {
			return fmt.Errorf("seed driver %s: %w", d.id, err)
		}
	}

	createOrder := c.CreateCreateOrderCommandHandler()
	for _, o := range demoOrders {
		driverID := o.driverID
		cmd, err := commands.NewCreateOrderCommand(o.id, &driverID, "", 0, time.Time{})
		if err != nil {
			return err
		}
		if _, err = createOrder.Handle(ctx, cmd); err != nil && !errors.Is(err, errs.ErrObjectAlreadyExists) {
			return fmt.Errorf("seed order %s: %w", o.id, err)
		}
	}

	c.logger.InfoContext(ctx, "demo data seeded", "drivers", len(demoDrivers), "orders", len(demoOrders))
	return nil
}

func (c *CompositionRoot) newUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
