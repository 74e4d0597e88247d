package jobs

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/ports"
	"logistics/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const probeTimeout = 5 * time.Second

// RiskProbeJob reports whether the remote risk scorer is reachable. It does
// not influence scoring: the predictor always tries the remote path first.
type RiskProbeJob struct {
	prober   ports.RiskProber
	metrics  *metrics.Metrics
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	lastUp *bool
}

func NewRiskProbeJob(prober ports.RiskProber, m *metrics.Metrics, schedule string, logger *slog.Logger) *RiskProbeJob {
	return &RiskProbeJob{
		prober:   prober,
		metrics:  m,
		schedule: schedule,
		// Overlapping probes are skipped.
		cron: cron.New(cron.WithSeconds(), cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		logger: logger.With("component", "risk_probe_job"),
	}
}

// Run probes once and reports whether the scorer answered.
func (j *RiskProbeJob) Run(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := j.prober.Ping(ctx)
	up := err == nil
	j.metrics.SetRiskServiceUp(up)

	if j.lastUp == nil || *j.lastUp != up {
		if up {
			j.logger.InfoContext(ctx, "risk service reachable")
		} else {
			j.logger.WarnContext(ctx, "risk service unreachable, scoring will use the fallback", "error", err)
		}
	}
	j.lastUp = &up
	return up
}

func (j *RiskProbeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Risk probe job started", "schedule", j.schedule)
	return nil
}

func (j *RiskProbeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Risk probe job stopped")
}
