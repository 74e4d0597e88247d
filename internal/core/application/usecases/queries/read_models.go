// Package queries contains read operations for retrieving system state.
// Every query reads one consistent snapshot of the store and maps it into
// read models, so a response never mixes state from before and after an
// event.
package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/event"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
)

// StateReader is the read side of ports.StateStore.
type StateReader interface {
	Snapshot(ctx context.Context) (ports.Snapshot, error)
}

type DriverResponse struct {
	ID       string
	Name     string
	Status   string
	Location string
}

type OrderResponse struct {
	ID               string
	Status           string
	AssignedDriverID *string
	ReassignCount    int
	CreatedAt        time.Time
}

// EventRecordResponse is one entry of the event history.
type EventRecordResponse struct {
	EventID             string
	Timestamp           time.Time
	OrderID             string
	DriverID            string
	Reason              string
	RiskScore           float64
	RiskSource          string
	ActionTaken         string
	ReassignmentOutcome string
	OrderStatus         string
}

func toDriverResponse(d *driver.Driver) DriverResponse {
	return DriverResponse{
		ID:       d.ID(),
		Name:     d.Name(),
		Status:   d.Status().String(),
		Location: d.Location(),
	}
}

func toOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID(),
		Status:           o.Status().String(),
		AssignedDriverID: o.AssignedDriver(),
		ReassignCount:    o.ReassignCount(),
		CreatedAt:        o.CreatedAt(),
	}
}

func toEventRecordResponse(r event.Record) EventRecordResponse {
	return EventRecordResponse{
		EventID:             r.EventID,
		Timestamp:           r.Timestamp,
		OrderID:             r.OrderID,
		DriverID:            r.DriverID,
		Reason:              r.Reason,
		RiskScore:           r.RiskScore,
		RiskSource:          r.RiskSource.String(),
		ActionTaken:         r.Action.String(),
		ReassignmentOutcome: r.Outcome.String(),
		OrderStatus:         r.OrderStatus.String(),
	}
}

func toDriverResponses(drivers []*driver.Driver) []DriverResponse {
	out := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, toDriverResponse(d))
	}
	return out
}

func toOrderResponses(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}
