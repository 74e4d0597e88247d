// Package ports defines the contracts between the delay pipeline and its
// infrastructure: the entity store behind a unit of work, and the remote risk
// scorer.
package ports

import (
	"context"

	"logistics/internal/core/domain/model/driver"
)

// DriverRepository defines the storage contract for driver aggregates.
type DriverRepository interface {
	// Add stores a new driver. Fails with errs.ErrObjectAlreadyExists when the
	// id is taken.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver.
	// Fails with errs.ErrObjectNotFound when the driver is unknown.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get returns the driver with id, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id string) (*driver.Driver, error)

	// GetAll returns every driver in a stable order (insertion order). The
	// reassignment engine relies on that order for its tie-break.
	GetAll(ctx context.Context) ([]*driver.Driver, error)
}
