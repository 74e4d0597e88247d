package memory

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/event"
	"logistics/internal/core/ports"
)

var ErrTransactionNotStarted = errors.New("unit of work has no active transaction")

// changeSet holds writes staged by one unit of work.
type changeSet struct {
	drivers table[driverDTO]
	orders  table[orderDTO]
	records []event.Record
}

func newChangeSet() *changeSet {
	return &changeSet{
		drivers: newTable[driverDTO](),
		orders:  newTable[orderDTO](),
	}
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

var _ ports.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create returns a fresh, not yet begun unit of work.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork is a transaction over the Store. It is not safe for use by
// several goroutines; each goroutine creates its own.
type UnitOfWork struct {
	store   *Store
	changes *changeSet
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// Begin acquires the store's exclusion domain. Calling Begin on an active
// unit of work is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.changes != nil {
		return nil
	}

	if err := uow.store.lock(ctx); err != nil {
		return err
	}

	uow.changes = newChangeSet()
	return nil
}

// Commit applies staged writes and releases the exclusion domain.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.changes == nil {
		return ErrTransactionNotStarted
	}

	uow.store.apply(uow.changes)
	uow.changes = nil
	uow.store.unlock()
	return nil
}

// Rollback discards staged writes and releases the exclusion domain. It is a
// no-op when nothing is active, so it can be deferred right after Begin.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.changes == nil {
		return nil
	}

	uow.changes = nil
	uow.store.unlock()
	return nil
}

func (uow *UnitOfWork) DriverRepository() ports.DriverRepository {
	return &DriverRepository{uow: uow}
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

func (uow *UnitOfWork) EventRepository() ports.EventRepository {
	return &EventRepository{uow: uow}
}

// active returns the staged change set or ErrTransactionNotStarted.
func (uow *UnitOfWork) active() (*changeSet, error) {
	if uow.changes == nil {
		return nil, ErrTransactionNotStarted
	}
	return uow.changes, nil
}
