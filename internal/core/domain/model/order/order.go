package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root tracking a delivery and its driver assignment.
//
// Order follows these invariants:
//   - id is non-blank and immutable
//   - reassignCount is never negative and never exceeds the ceiling given to Reassign
//   - once Cancelled, neither status nor assigned driver changes
type Order struct {
	id               string
	status           Status
	assignedDriverID *string
	reassignCount    int
	createdAt        time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an Active order, optionally assigned to a driver.
func NewOrder(id string, assignedDriverID *string, createdAt time.Time) (*Order, error) {
	return RestoreOrder(id, Active, assignedDriverID, 0, createdAt)
}

// RestoreOrder rebuilds an order with its full state, for stores and for
// callers creating orders in a non-initial status.
func RestoreOrder(
	id string,
	status Status,
	assignedDriverID *string,
	reassignCount int,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setStatus(status),
		o.setAssignedDriver(assignedDriverID),
		o.setReassignCount(reassignCount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() string {
	return o.id
}

func (o *Order) Status() Status {
	return o.status
}

// AssignedDriver returns a copy of the assigned driver identifier, or nil.
func (o *Order) AssignedDriver() *string {
	if o.assignedDriverID == nil {
		return nil
	}
	id := *o.assignedDriverID
	return &id
}

func (o *Order) ReassignCount() int {
	return o.reassignCount
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) IsCancelled() bool {
	return o.status == Cancelled
}

// MarkDelayed records that a delay event was admitted for this order.
func (o *Order) MarkDelayed() error {
	newStatus, err := o.status.Delay()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Cancel moves the order to its terminal status.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// HasReachedReassignmentLimit reports whether another reassignment would
// exceed ceiling.
func (o *Order) HasReachedReassignmentLimit(ceiling int) bool {
	return o.reassignCount >= ceiling
}

// Reassign swaps the assigned driver and increments the reassignment counter.
// The status is left unchanged.
func (o *Order) Reassign(driverID string, ceiling int) error {
	if strings.TrimSpace(driverID) == "" {
		return errs.NewValueIsRequiredError("driver_id")
	}

	if err := o.status.ValidateReassign(); err != nil {
		return err
	}

	if o.HasReachedReassignmentLimit(ceiling) {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"reassign_count", o.reassignCount+1, 0, ceiling,
			fmt.Errorf("order %s already reassigned %d times", o.id, o.reassignCount),
		)
	}

	o.assignedDriverID = &driverID
	o.reassignCount++
	return nil
}

func (o *Order) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("id")
	}
	o.id = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setAssignedDriver(driverID *string) error {
	if driverID == nil {
		return nil
	}
	if strings.TrimSpace(*driverID) == "" {
		return errs.NewValueIsInvalidErrorWithCause("assigned_driver_id", errors.New("must not be blank"))
	}
	id := *driverID
	o.assignedDriverID = &id
	return nil
}

func (o *Order) setReassignCount(count int) error {
	if count < 0 {
		return errs.NewValueIsInvalidErrorWithCause("reassign_count", fmt.Errorf("%d is negative", count))
	}
	o.reassignCount = count
	return nil
}
