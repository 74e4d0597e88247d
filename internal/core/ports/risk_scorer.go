package ports

import (
	"context"
)

// RiskRequest is the payload sent to the remote risk scorer.
type RiskRequest struct {
	OrderID  string
	DriverID string
	Reason   string
}

// RiskScorer obtains a risk score from a remote predictor. Implementations
// own their retry policy and return an error only once it is exhausted or
// the failure is not worth retrying.
type RiskScorer interface {
	Score(ctx context.Context, req RiskRequest) (float64, error)
}

// RiskProber checks whether the remote predictor is reachable.
type RiskProber interface {
	Ping(ctx context.Context) error
}
