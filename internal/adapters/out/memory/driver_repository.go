package memory

import (
	"context"
	"strings"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/pkg/errs"
)

// DriverRepository reads and stages drivers inside a UnitOfWork.
type DriverRepository struct {
	uow *UnitOfWork
}

func (r *DriverRepository) Add(_ context.Context, aggregate *driver.Driver) error {
	changes, err := r.uow.active()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if r.uow.store.drivers.has(id) || changes.drivers.has(id) {
		return errs.NewObjectAlreadyExistsError("driver", id)
	}

	changes.drivers.put(id, driverFromDomain(aggregate))
	return nil
}

func (r *DriverRepository) Update(_ context.Context, aggregate *driver.Driver) error {
	changes, err := r.uow.active()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if !r.uow.store.drivers.has(id) && !changes.drivers.has(id) {
		return errs.NewObjectNotFoundError("driver", id)
	}

	changes.drivers.put(id, driverFromDomain(aggregate))
	return nil
}

func (r *DriverRepository) Get(_ context.Context, id string) (*driver.Driver, error) {
	changes, err := r.uow.active()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, errs.NewValueIsRequiredError("driver_id")
	}

	if dto, ok := changes.drivers.get(id); ok {
		return driverToDomain(dto)
	}
	if dto, ok := r.uow.store.drivers.get(id); ok {
		return driverToDomain(dto)
	}
	return nil, errs.NewObjectNotFoundError("driver", id)
}

func (r *DriverRepository) GetAll(_ context.Context) ([]*driver.Driver, error) {
	changes, err := r.uow.active()
	if err != nil {
		return nil, err
	}
	return driversToDomain(merge(&r.uow.store.drivers, &changes.drivers))
}
