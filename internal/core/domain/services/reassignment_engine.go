package services

import (
	"errors"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/event"
	"logistics/internal/core/domain/model/order"
)

// DefaultMaxReassignments is the number of successful reassignments an order
// may absorb before the next qualifying delay cancels it.
const DefaultMaxReassignments = 2

var ErrInvalidMaxReassignments = errors.New("max reassignments must not be negative")

// ReassignmentResult describes what Reassign did.
//
// Assigned is the driver that took over the order (set only for
// OutcomeReassigned). Released is the previously assigned driver returned to
// the pool, set only when previous-driver release is enabled.
type ReassignmentResult struct {
	Outcome  event.ReassignmentOutcome
	Assigned *driver.Driver
	Released *driver.Driver
}

// ReassignmentEngine finds replacement drivers and enforces the reassignment
// ceiling.
//
// Business rules:
//   - an order that already reached the ceiling is cancelled (EXHAUSTED)
//     before any driver search
//   - the replacement is the first AVAILABLE driver, in the order the drivers
//     are given, whose id differs from the excluded one
//   - only successful reassignments count toward the ceiling
//   - the previous driver stays BUSY unless release is enabled
type ReassignmentEngine struct {
	maxReassignments      int
	releasePreviousDriver bool
}

// ReassignmentOption tunes a ReassignmentEngine.
type ReassignmentOption func(*ReassignmentEngine)

// WithPreviousDriverRelease returns the replaced driver to AVAILABLE when a
// reassignment succeeds.
func WithPreviousDriverRelease(enabled bool) ReassignmentOption {
	return func(e *ReassignmentEngine) {
		e.releasePreviousDriver = enabled
	}
}

func NewReassignmentEngine(maxReassignments int, opts ...ReassignmentOption) (ReassignmentEngine, error) {
	if maxReassignments < 0 {
		return ReassignmentEngine{}, ErrInvalidMaxReassignments
	}

	e := ReassignmentEngine{maxReassignments: maxReassignments}
	for _, opt := range opts {
		opt(&e)
	}
	return e, nil
}

func (e ReassignmentEngine) MaxReassignments() int {
	return e.maxReassignments
}

func (e ReassignmentEngine) ReleasesPreviousDriver() bool {
	return e.releasePreviousDriver
}

// FindAvailable returns the first available driver other than excludeID, or
// nil when there is none.
func (e ReassignmentEngine) FindAvailable(drivers []*driver.Driver, excludeID string) *driver.Driver {
	for _, d := range drivers {
		if d == nil || d.ID() == excludeID {
			continue
		}
		if d.IsAvailable() {
			return d
		}
	}
	return nil
}

// Reassign moves o away from currentDriverID.
//
// The order is mutated in place (driver, counter, or status) and so is the
// driver that takes it over; persisting them is up to the caller.
func (e ReassignmentEngine) Reassign(
	o *order.Order,
	currentDriverID string,
	drivers []*driver.Driver,
) (ReassignmentResult, error) {
	if err := o.Validate(); err != nil {
		return ReassignmentResult{}, err
	}

	if o.HasReachedReassignmentLimit(e.maxReassignments) {
		if err := o.Cancel(); err != nil {
			return ReassignmentResult{}, err
		}
		return ReassignmentResult{Outcome: event.OutcomeExhausted}, nil
	}

	candidate := e.FindAvailable(drivers, currentDriverID)
	if candidate == nil {
		return ReassignmentResult{Outcome: event.OutcomeNoDriverAvailable}, nil
	}

	previousID := o.AssignedDriver()
	if err := o.Reassign(candidate.ID(), e.maxReassignments); err != nil {
		return ReassignmentResult{}, err
	}
	candidate.MarkBusy()

	result := ReassignmentResult{
		Outcome:  event.OutcomeReassigned,
		Assigned: candidate,
	}

	if e.releasePreviousDriver && previousID != nil && *previousID != candidate.ID() {
		for _, d := range drivers {
			if d != nil && d.ID() == *previousID {
				d.Release()
				result.Released = d
				break
			}
		}
	}

	return result, nil
}
