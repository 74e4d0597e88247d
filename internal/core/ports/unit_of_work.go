package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork per command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the critical-section boundary of the entity store.
//
// Begin acquires the store's single exclusion domain, which covers drivers,
// orders, the ledger and the history together. Everything done through the
// repositories until Commit or Rollback is applied atomically or not at all.
// Callers must always end a begun unit of work with Commit or Rollback.
type UnitOfWork interface {
	// Begin acquires the store lock. Blocks behind any other unit of work.
	Begin(ctx context.Context) error

	// Commit applies staged changes and releases the lock.
	Commit(ctx context.Context) error

	// Rollback discards staged changes and releases the lock. Calling it
	// after Commit is a no-op.
	Rollback(ctx context.Context) error

	DriverRepository() DriverRepository

	OrderRepository() OrderRepository

	EventRepository() EventRepository
}
