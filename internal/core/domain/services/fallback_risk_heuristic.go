package services

import (
	"math/rand/v2"
	"unicode/utf8"
)

const (
	// FallbackNoiseSpan is the width of the uniform noise added to the
	// length-based estimate.
	FallbackNoiseSpan = 0.3

	fallbackReasonScale = 100.0
)

// NoiseSource yields values uniformly distributed in [0, 1).
type NoiseSource interface {
	Float64() float64
}

type globalNoise struct{}

// Float64 uses the top-level math/rand/v2 generator, which is safe for
// concurrent use.
func (globalNoise) Float64() float64 {
	return rand.Float64()
}

// FallbackRiskHeuristic estimates risk locally as
// min(1, runes(reason)/100 + 0.3*noise).
type FallbackRiskHeuristic struct {
	noise NoiseSource
}

// NewFallbackRiskHeuristic builds a heuristic drawing from noise. A nil noise
// source uses the process-wide random generator.
func NewFallbackRiskHeuristic(noise NoiseSource) FallbackRiskHeuristic {
	if noise == nil {
		noise = globalNoise{}
	}
	return FallbackRiskHeuristic{noise: noise}
}

func (h FallbackRiskHeuristic) Score(reason string) float64 {
	noise := h.noise
	if noise == nil {
		noise = globalNoise{}
	}

	u := min(max(noise.Float64(), 0), 1)
	score := float64(utf8.RuneCountInString(reason))/fallbackReasonScale + FallbackNoiseSpan*u

	return min(score, 1.0)
}
