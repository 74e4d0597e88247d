package event

import (
	"time"

	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// Record is one entry of the append-only event history. Records are values:
// once appended they are never mutated.
type Record struct {
	ID          uuid.UUID
	EventID     string
	Timestamp   time.Time
	OrderID     string
	DriverID    string
	Reason      string
	RiskScore   float64
	RiskSource  RiskSource
	Action      Action
	Outcome     ReassignmentOutcome
	OrderStatus order.Status
}

// NewRecord stamps a decision with a fresh identifier.
func NewRecord(
	eventID string,
	timestamp time.Time,
	orderID string,
	driverID string,
	reason string,
	riskScore float64,
	riskSource RiskSource,
	action Action,
	outcome ReassignmentOutcome,
	orderStatus order.Status,
) Record {
	return Record{
		ID:          uuid.New(),
		EventID:     eventID,
		Timestamp:   timestamp.UTC(),
		OrderID:     orderID,
		DriverID:    driverID,
		Reason:      reason,
		RiskScore:   riskScore,
		RiskSource:  riskSource,
		Action:      action,
		Outcome:     outcome,
		OrderStatus: orderStatus,
	}
}
