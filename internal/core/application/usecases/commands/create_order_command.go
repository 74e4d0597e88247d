package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers an order, optionally assigned to a driver.
//
// Example:
//
//	driverID := "DRV-001"
//	cmd, err := NewCreateOrderCommand("ORD-001", &driverID, "", 0, time.Time{})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          string
	status           order.Status
	assignedDriverID *string
	reassignCount    int
	createdAt        time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order data. An empty status means
// ACTIVE; a zero createdAt is stamped by the handler.
func NewCreateOrderCommand(
	orderID string,
	assignedDriverID *string,
	status string,
	reassignCount int,
	createdAt time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID(&cmd.orderID, "id", orderID),
		cmd.setStatus(status),
		cmd.setAssignedDriver(assignedDriverID),
		cmd.setReassignCount(reassignCount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() string {
	return c.orderID
}

func (c CreateOrderCommand) Status() order.Status {
	return c.status
}

// AssignedDriverID returns a copy of the requested driver id, or nil.
func (c CreateOrderCommand) AssignedDriverID() *string {
	if c.assignedDriverID == nil {
		return nil
	}
	id := *c.assignedDriverID
	return &id
}

func (c CreateOrderCommand) ReassignCount() int {
	return c.reassignCount
}

func (c CreateOrderCommand) CreatedAt() time.Time {
	return c.createdAt
}

func (c *CreateOrderCommand) setStatus(raw string) error {
	if strings.TrimSpace(raw) == "" {
		c.status = order.Active
		return nil
	}
	status, err := order.ParseStatus(raw)
	if err != nil {
		return err
	}
	c.status = status
	return nil
}

// setAssignedDriver treats an empty id like no assignment.
func (c *CreateOrderCommand) setAssignedDriver(driverID *string) error {
	if driverID == nil || *driverID == "" {
		return nil
	}
	if strings.TrimSpace(*driverID) == "" {
		return errs.NewValueIsInvalidErrorWithCause("assigned_driver_id", errors.New("must not be blank"))
	}
	id := *driverID
	c.assignedDriverID = &id
	return nil
}

func (c *CreateOrderCommand) setReassignCount(count int) error {
	if count < 0 {
		return errs.NewValueIsInvalidErrorWithCause("reassign_count", fmt.Errorf("%d is negative", count))
	}
	c.reassignCount = count
	return nil
}
