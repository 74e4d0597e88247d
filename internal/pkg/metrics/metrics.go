// Package metrics holds the Prometheus collectors of the delay pipeline.
//
// A nil *Metrics is valid and records nothing, so components can take an
// optional metrics dependency without branching.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "logistics"

// Event results recorded by ObserveEvent.
const (
	ResultProcessed = "processed"
	ResultIgnored   = "ignored"
	ResultRejected  = "rejected"
	ResultFailed    = "failed"
)

// Remote scorer attempt outcomes recorded by ObserveRemoteAttempt.
const (
	AttemptSuccess   = "success"
	AttemptRetryable = "retryable"
	AttemptPermanent = "permanent"
)

type Metrics struct {
	EventsTotal             *prometheus.CounterVec
	DecisionsTotal          *prometheus.CounterVec
	ReassignmentsTotal      *prometheus.CounterVec
	EventProcessingDuration prometheus.Histogram

	RiskScore               prometheus.Histogram
	RiskPredictionsTotal    *prometheus.CounterVec
	RiskRemoteAttemptsTotal *prometheus.CounterVec
	RiskServiceUp           prometheus.Gauge

	Drivers         *prometheus.GaugeVec
	Orders          *prometheus.GaugeVec
	ProcessedEvents prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "delay_events_total",
				Help:      "Total number of delay events received, by result",
			},
			[]string{"result"},
		),
		DecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decisions_total",
				Help:      "Total number of decisions taken for admitted delay events, by action",
			},
			[]string{"action"},
		),
		ReassignmentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reassignments_total",
				Help:      "Total number of reassignment attempts, by outcome",
			},
			[]string{"outcome"},
		),
		EventProcessingDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "delay_event_processing_duration_seconds",
				Help:      "Duration of delay event processing, including time spent waiting for the store",
				Buckets:   prometheus.DefBuckets,
			},
		),
		RiskScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "risk_score",
				Help:      "Distribution of risk scores used by the decision gate",
				Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
			},
		),
		RiskPredictionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "risk_predictions_total",
				Help:      "Total number of risk predictions, by source",
			},
			[]string{"source"},
		),
		RiskRemoteAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "risk_remote_attempts_total",
				Help:      "Total number of calls to the remote risk scorer, by outcome",
			},
			[]string{"outcome"},
		),
		RiskServiceUp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "risk_service_up",
				Help:      "Whether the last probe of the remote risk scorer succeeded",
			},
		),
		Drivers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "drivers",
				Help:      "Number of drivers, by status",
			},
			[]string{"status"},
		),
		Orders: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "orders",
				Help:      "Number of orders, by status",
			},
			[]string{"status"},
		),
		ProcessedEvents: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "processed_events",
				Help:      "Size of the processed-event ledger",
			},
		),
	}

	reg.MustRegister(
		m.EventsTotal,
		m.DecisionsTotal,
		m.ReassignmentsTotal,
		m.EventProcessingDuration,
		m.RiskScore,
		m.RiskPredictionsTotal,
		m.RiskRemoteAttemptsTotal,
		m.RiskServiceUp,
		m.Drivers,
		m.Orders,
		m.ProcessedEvents,
	)

	return m
}

func (m *Metrics) ObserveEvent(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.EventsTotal.WithLabelValues(result).Inc()
	m.EventProcessingDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveDecision(action string, outcome string) {
	if m == nil {
		return
	}
	m.DecisionsTotal.WithLabelValues(action).Inc()
	if outcome != "" {
		m.ReassignmentsTotal.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObserveRiskPrediction(source string, score float64) {
	if m == nil {
		return
	}
	m.RiskPredictionsTotal.WithLabelValues(source).Inc()
	m.RiskScore.Observe(score)
}

func (m *Metrics) ObserveRemoteAttempt(outcome string) {
	if m == nil {
		return
	}
	m.RiskRemoteAttemptsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetRiskServiceUp(up bool) {
	if m == nil {
		return
	}
	if up {
		m.RiskServiceUp.Set(1)
		return
	}
	m.RiskServiceUp.Set(0)
}

// SetFleet replaces the driver and order gauges with the given counts.
// Statuses missing from the maps are reset to zero.
func (m *Metrics) SetFleet(drivers map[string]int, orders map[string]int, processedEvents int) {
	if m == nil {
		return
	}
	m.Drivers.Reset()
	for status, n := range drivers {
		m.Drivers.WithLabelValues(status).Set(float64(n))
	}
	m.Orders.Reset()
	for status, n := range orders {
		m.Orders.WithLabelValues(status).Set(float64(n))
	}
	m.ProcessedEvents.Set(float64(processedEvents))
}
