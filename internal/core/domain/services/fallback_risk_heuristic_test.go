package services_test

import (
	"strings"
	"testing"

	"logistics/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

type fixedNoise float64

func (n fixedNoise) Float64() float64 { return float64(n) }

func TestFallbackRiskHeuristic_Score(t *testing.T) {
	tests := []struct {
		name     string
		reason   string
		noise    float64
		expected float64
	}{
		{"length_50_no_noise", strings.Repeat("a", 50), 0, 0.5},
		{"empty_reason_full_noise", "", 1, 0.3},
		{"length_41_no_noise", strings.Repeat("x", 41), 0, 0.41},
		{"length_100_full_noise_is_clamped", strings.Repeat("b", 100), 1, 1.0},
		{"long_reason_is_clamped", strings.Repeat("c", 250), 0, 1.0},
		{"counts_characters_not_bytes", strings.Repeat("é", 10), 0, 0.1},
		{"noise_above_one_is_bounded", "", 5, 0.3},
		{"negative_noise_is_bounded", "", -2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := services.NewFallbackRiskHeuristic(fixedNoise(tt.noise))

			assert.InDelta(t, tt.expected, h.Score(tt.reason), 1e-9)
		})
	}
}

func TestFallbackRiskHeuristic_DefaultNoiseStaysInRange(t *testing.T) {
	h := services.NewFallbackRiskHeuristic(nil)
	reason := strings.Repeat("r", 20)

	for range 1000 {
		score := h.Score(reason)
		assert.GreaterOrEqual(t, score, 0.2)
		assert.LessOrEqual(t, score, 0.5)
	}
}

func TestFallbackRiskHeuristic_ZeroValueUsesDefaultNoise(t *testing.T) {
	var h services.FallbackRiskHeuristic

	score := h.Score("")

	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, services.FallbackNoiseSpan)
}
