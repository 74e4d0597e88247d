package ports

import (
	"context"

	"logistics/internal/core/domain/model/event"
)

// EventRepository covers the processed-event ledger and the event history.
// The two are written together so that an event id is in the ledger exactly
// when its history record exists.
type EventRepository interface {
	// IsProcessed reports whether eventID is already in the ledger.
	IsProcessed(ctx context.Context, eventID string) (bool, error)

	// Record adds record.EventID to the ledger and appends record to the
	// history. Fails with errs.ErrObjectAlreadyExists for a known event id.
	Record(ctx context.Context, record event.Record) error

	// GetHistory returns the history in admission order.
	GetHistory(ctx context.Context) ([]event.Record, error)

	// CountProcessed returns the ledger size.
	CountProcessed(ctx context.Context) (int, error)
}
