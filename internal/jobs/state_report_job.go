package jobs

import (
	"context"
	"log/slog"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// StateReportJob publishes fleet gauges from a store snapshot.
type StateReportJob struct {
	handler  queries.GetSystemStateQueryHandler
	metrics  *metrics.Metrics
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewStateReportJob(
	handler queries.GetSystemStateQueryHandler,
	m *metrics.Metrics,
	schedule string,
	logger *slog.Logger,
) *StateReportJob {
	return &StateReportJob{
		handler:  handler,
		metrics:  m,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "state_report_job"),
	}
}

// Run takes one snapshot and updates the gauges.
func (j *StateReportJob) Run(ctx context.Context) error {
	state, err := j.handler.Handle(ctx, queries.NewGetSystemStateQuery())
	if err != nil {
		return err
	}

	drivers := make(map[string]int)
	for _, d := range state.Drivers {
		drivers[d.Status]++
	}
	orders := make(map[string]int)
	for _, o := range state.Orders {
		orders[o.Status]++
	}
	j.metrics.SetFleet(drivers, orders, len(state.ProcessedEvents))

	j.logger.DebugContext(ctx, "state reported",
		"drivers", len(state.Drivers),
		"orders", len(state.Orders),
		"processed_events", len(state.ProcessedEvents),
	)
	return nil
}

func (j *StateReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.tick)
	if err != nil {
		return err
	}

	j.tick()
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "State report job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running tick to finish.
func (j *StateReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "State report job stopped")
}

func (j *StateReportJob) tick() {
	ctx := context.Background()
	if err := j.Run(ctx); err != nil {
		j.logger.ErrorContext(ctx, "State report job failed", "error", err)
	}
}
