package memory

import (
	"time"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/order"
)

// driverDTO is the stored shape of a driver. Aggregates never leave the store
// by reference; every read restores a fresh aggregate from its DTO.
type driverDTO struct {
	ID       string
	Name     string
	Status   driver.Status
	Location string
}

type orderDTO struct {
	ID               string
	Status           order.Status
	AssignedDriverID *string
	ReassignCount    int
	CreatedAt        time.Time
}

func driverFromDomain(d *driver.Driver) driverDTO {
	return driverDTO{
		ID:       d.ID(),
		Name:     d.Name(),
		Status:   d.Status(),
		Location: d.Location(),
	}
}

func driverToDomain(dto driverDTO) (*driver.Driver, error) {
	return driver.RestoreDriver(dto.ID, dto.Name, dto.Status, dto.Location)
}

func orderFromDomain(o *order.Order) orderDTO {
	return orderDTO{
		ID:               o.ID(),
		Status:           o.Status(),
		AssignedDriverID: o.AssignedDriver(),
		ReassignCount:    o.ReassignCount(),
		CreatedAt:        o.CreatedAt(),
	}
}

func orderToDomain(dto orderDTO) (*order.Order, error) {
	return order.RestoreOrder(dto.ID, dto.Status, dto.AssignedDriverID, dto.ReassignCount, dto.CreatedAt)
}

func driversToDomain(dtos []driverDTO) ([]*driver.Driver, error) {
	out := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := driverToDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func ordersToDomain(dtos []orderDTO) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := orderToDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
