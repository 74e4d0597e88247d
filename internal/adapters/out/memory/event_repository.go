package memory

import (
	"context"
	"slices"
	"strings"

	"logistics/internal/core/domain/model/event"
	"logistics/internal/pkg/errs"
)

// EventRepository reads and stages ledger entries and history records inside
// a UnitOfWork.
type EventRepository struct {
	uow *UnitOfWork
}

func (r *EventRepository) IsProcessed(_ context.Context, eventID string) (bool, error) {
	changes, err := r.uow.active()
	if err != nil {
		return false, err
	}
	return r.isProcessed(changes, eventID), nil
}

func (r *EventRepository) Record(_ context.Context, record event.Record) error {
	changes, err := r.uow.active()
	if err != nil {
		return err
	}
	if strings.TrimSpace(record.EventID) == "" {
		return errs.NewValueIsRequiredError("event_id")
	}
	if r.isProcessed(changes, record.EventID) {
		return errs.NewObjectAlreadyExistsError("event", record.EventID)
	}

	changes.records = append(changes.records, record)
	return nil
}

func (r *EventRepository) GetHistory(_ context.Context) ([]event.Record, error) {
	changes, err := r.uow.active()
	if err != nil {
		return nil, err
	}
	return slices.Concat(r.uow.store.history, changes.records), nil
}

func (r *EventRepository) CountProcessed(_ context.Context) (int, error) {
	changes, err := r.uow.active()
	if err != nil {
		return 0, err
	}
	return r.uow.store.ledger.len() + len(changes.records), nil
}

func (r *EventRepository) isProcessed(changes *changeSet, eventID string) bool {
	if r.uow.store.ledger.has(eventID) {
		return true
	}
	return slices.ContainsFunc(changes.records, func(rec event.Record) bool {
		return rec.EventID == eventID
	})
}
