package risk_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"logistics/internal/core/application/risk"
	"logistics/internal/core/domain/model/event"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRiskScorer struct{ mock.Mock }

func (m *MockRiskScorer) Score(ctx context.Context, req ports.RiskRequest) (float64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(float64), args.Error(1)
}

type fixedNoise float64

func (n fixedNoise) Float64() float64 { return float64(n) }

func TestPredictor_Predict(t *testing.T) {
	req := ports.RiskRequest{OrderID: "ORD-001", DriverID: "DRV-001", Reason: strings.Repeat("a", 50)}
	fallback := services.NewFallbackRiskHeuristic(fixedNoise(0))

	tests := []struct {
		name           string
		remoteScore    float64
		remoteErr      error
		expectedScore  float64
		expectedSource event.RiskSource
	}{
		{"remote_success", 0.82, nil, 0.82, event.RiskSourceRemote},
		{"remote_zero", 0, nil, 0, event.RiskSourceRemote},
		{"remote_above_range_is_clamped", 1.7, nil, 1, event.RiskSourceRemote},
		{"remote_below_range_is_clamped", -0.4, nil, 0, event.RiskSourceRemote},
		{"remote_nan_falls_back", math.NaN(), nil, 0.5, event.RiskSourceFallback},
		{"remote_inf_falls_back", math.Inf(1), nil, 0.5, event.RiskSourceFallback},
		{"remote_error_falls_back", 0, errors.New("connection refused"), 0.5, event.RiskSourceFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			scorer := new(MockRiskScorer)
			scorer.On("Score", ctx, req).Return(tt.remoteScore, tt.remoteErr).Once()

			got := risk.NewPredictor(scorer, fallback).Predict(ctx, req)

			assert.InDelta(t, tt.expectedScore, got.Score, 1e-9)
			assert.Equal(t, tt.expectedSource, got.Source)
			scorer.AssertExpectations(t)
		})
	}
}

func TestPredictor_WithoutRemoteUsesFallback(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	p := risk.NewPredictor(nil, services.NewFallbackRiskHeuristic(fixedNoise(1)), risk.WithMetrics(m))

	got := p.Predict(t.Context(), ports.RiskRequest{Reason: strings.Repeat("z", 100)})

	assert.InDelta(t, 1.0, got.Score, 1e-9)
	assert.Equal(t, event.RiskSourceFallback, got.Source)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RiskPredictionsTotal.WithLabelValues("fallback")), 0)
}

func TestPredictor_ScoreAlwaysInRange(t *testing.T) {
	scorer := new(MockRiskScorer)
	scorer.On("Score", mock.Anything, mock.Anything).Return(0.0, errors.New("down"))
	p := risk.NewPredictor(scorer, services.NewFallbackRiskHeuristic(nil))

	for i := range 200 {
		got := p.Predict(t.Context(), ports.RiskRequest{Reason: strings.Repeat("r", i)})
		assert.GreaterOrEqual(t, got.Score, 0.0)
		assert.LessOrEqual(t, got.Score, 1.0)
	}
}

func TestClamp(t *testing.T) {
	assert.InDelta(t, 0.0, risk.Clamp(-3), 0)
	assert.InDelta(t, 0.7, risk.Clamp(0.7), 0)
	assert.InDelta(t, 1.0, risk.Clamp(42), 0)
}
