package ports

import (
	"context"

	"logistics/internal/core/domain/model/order"
)

// OrderRepository defines the storage contract for order aggregates.
type OrderRepository interface {
	// Add stores a new order. Fails with errs.ErrObjectAlreadyExists when the
	// id is taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with id, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id string) (*order.Order, error)

	// GetAll returns every order in insertion order.
	GetAll(ctx context.Context) ([]*order.Order, error)
}
