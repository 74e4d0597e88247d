package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/event"
	"logistics/internal/core/domain/model/order"
)

// Snapshot is a consistent point-in-time copy of the whole store.
// Mutating it never affects the store.
type Snapshot struct {
	Drivers         []*driver.Driver
	Orders          []*order.Order
	ProcessedEvents []string
	History         []event.Record
	TakenAt         time.Time
}

// StateStore exposes whole-store operations. Both take the same exclusion
// domain as UnitOfWork, so they never observe or interrupt a half-applied
// event.
type StateStore interface {
	Snapshot(ctx context.Context) (Snapshot, error)

	// Wipe clears drivers, orders, the ledger and the history atomically.
	Wipe(ctx context.Context) error
}
