package memory

import (
	"context"
	"strings"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// OrderRepository reads and stages orders inside a UnitOfWork.
type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	changes, err := r.uow.active()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if r.uow.store.orders.has(id) || changes.orders.has(id) {
		return errs.NewObjectAlreadyExistsError("order", id)
	}

	changes.orders.put(id, orderFromDomain(aggregate))
	return nil
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	changes, err := r.uow.active()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if !r.uow.store.orders.has(id) && !changes.orders.has(id) {
		return errs.NewObjectNotFoundError("order", id)
	}

	changes.orders.put(id, orderFromDomain(aggregate))
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id string) (*order.Order, error) {
	changes, err := r.uow.active()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, errs.NewValueIsRequiredError("order_id")
	}

	if dto, ok := changes.orders.get(id); ok {
		return orderToDomain(dto)
	}
	if dto, ok := r.uow.store.orders.get(id); ok {
		return orderToDomain(dto)
	}
	return nil, errs.NewObjectNotFoundError("order", id)
}

func (r *OrderRepository) GetAll(_ context.Context) ([]*order.Order, error) {
	changes, err := r.uow.active()
	if err != nil {
		return nil, err
	}
	return ordersToDomain(merge(&r.uow.store.orders, &changes.orders))
}
