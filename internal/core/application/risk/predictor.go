// Package risk provides the Risk Predictor: a risk score in [0, 1] for a
// delay event, preferring the remote scorer and falling back to the local
// heuristic whenever the remote path fails. Predict never fails.
package risk

import (
	"context"
	"log/slog"
	"math"

	"logistics/internal/core/domain/model/event"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/metrics"
)

// Assessment is a risk score together with where it came from.
type Assessment struct {
	Score  float64
	Source event.RiskSource
}

type Predictor struct {
	remote   ports.RiskScorer
	fallback services.FallbackRiskHeuristic
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Predictor)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Predictor) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Predictor) {
		p.metrics = m
	}
}

// NewPredictor builds a predictor. A nil remote scorer means every
// prediction uses the fallback heuristic.
func NewPredictor(remote ports.RiskScorer, fallback services.FallbackRiskHeuristic, opts ...Option) *Predictor {
	p := &Predictor{
		remote:   remote,
		fallback: fallback,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "risk_predictor")
	return p
}

func (p *Predictor) Predict(ctx context.Context, req ports.RiskRequest) Assessment {
	assessment := p.predict(ctx, req)
	p.metrics.ObserveRiskPrediction(assessment.Source.String(), assessment.Score)
	return assessment
}

func (p *Predictor) predict(ctx context.Context, req ports.RiskRequest) Assessment {
	if p.remote != nil {
		score, err := p.remote.Score(ctx, req)
		switch {
		case err != nil:
			p.logger.WarnContext(ctx, "risk prediction failed, using fallback",
				"order_id", req.OrderID, "error", err)
		case math.IsNaN(score) || math.IsInf(score, 0):
			p.logger.WarnContext(ctx, "risk scorer returned a non-finite score, using fallback",
				"order_id", req.OrderID, "score", score)
		default:
			if score < 0 || score > 1 {
				p.logger.WarnContext(ctx, "risk scorer returned a score outside [0, 1], clamping",
					"order_id", req.OrderID, "score", score)
			}
			return Assessment{Score: Clamp(score), Source: event.RiskSourceRemote}
		}
	}

	return Assessment{
		Score:  Clamp(p.fallback.Score(req.Reason)),
		Source: event.RiskSourceFallback,
	}
}

// Clamp bounds score to [0, 1].
func Clamp(score float64) float64 {
	return min(max(score, 0), 1)
}
