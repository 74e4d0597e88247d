// Package commands contains the operations that modify the entity store.
// Every command follows the same pattern: a guarded command value validated
// at construction, and a handler running inside one unit of work.
package commands

import (
	"context"

	"logistics/internal/core/application/risk"
	"logistics/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles the unit of work lifecycle. For the in-memory store,
	// Begin acquires the store's exclusion domain.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	EventRepoFactory interface {
		EventRepository() ports.EventRepository
	}

	// DriverUoW manages transactions for driver-only operations.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// UoW spans drivers, orders, the ledger and the history.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   eventRepo := uow.EventRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DriverRepoFactory
		OrderRepoFactory
		EventRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// RiskPredictor scores a delay event. It never fails.
type RiskPredictor interface {
	Predict(ctx context.Context, req ports.RiskRequest) risk.Assessment
}

// StateWiper clears the whole store.
type StateWiper interface {
	Wipe(ctx context.Context) error
}
