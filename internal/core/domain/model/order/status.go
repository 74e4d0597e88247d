package order

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status represents the lifecycle state of an order in the delay pipeline.
//
// State transitions:
//
//	Active ──Delay──> Delayed ──Cancel──> Cancelled
//	                   │   ^
//	                   └───┘
//	        (further delays and reassignments)
//
// Active may also be cancelled directly; nothing leaves Cancelled.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Active is the initial status of a created order.
	Active

	// Delayed marks an order that received at least one delay event.
	Delayed

	// Cancelled is terminal; it is reached when the reassignment ceiling is hit.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Active:    "ACTIVE",
		Delayed:   "DELAYED",
		Cancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Active:    "ACTIVE",
		Delayed:   "DELAYED",
		Cancelled: "CANCELLED",
	}
}

// ParseStatus converts the wire representation into a Status (case-insensitive).
func ParseStatus(raw string) (Status, error) {
	needle := strings.ToUpper(strings.TrimSpace(raw))
	for status, str := range getValidStatusStrings() {
		if str == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid order status", raw),
	)
}

// Validate checks if the Status value is Active, Delayed or Cancelled.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String implements fmt.Stringer and is safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further pipeline transition is allowed.
func (s Status) IsTerminal() bool {
	return s == Cancelled
}

// Delay transitions the status to Delayed.
//
// Valid transitions:
//   - Active -> Delayed
//   - Delayed -> Delayed
func (s Status) Delay() (Status, error) {
	if s != Active && s != Delayed {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to delay", s),
		)
	}
	return Delayed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Active -> Cancelled
//   - Delayed -> Cancelled
func (s Status) Cancel() (Status, error) {
	if s != Active && s != Delayed {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to cancel", s),
		)
	}
	return Cancelled, nil
}

// ValidateReassign checks that a driver swap is allowed from the current status.
func (s Status) ValidateReassign() error {
	if s != Active && s != Delayed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to reassign", s),
		)
	}
	return nil
}
