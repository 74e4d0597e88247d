package driver

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status represents whether a driver can take a new order.
//
// State transitions:
//
//	Available ──MarkBusy──> Busy
//	    ^                    │
//	    └──────Release───────┘
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Available drivers may be picked by the reassignment engine.
	Available

	// Busy drivers are carrying an order (or were left busy by a reassignment).
	Busy
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Available: "AVAILABLE",
		Busy:      "BUSY",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Available: "AVAILABLE",
		Busy:      "BUSY",
	}
}

// ParseStatus converts the wire representation ("AVAILABLE", "BUSY") into a Status.
// Matching is case-insensitive.
func ParseStatus(raw string) (Status, error) {
	needle := strings.ToUpper(strings.TrimSpace(raw))
	for status, str := range getValidStatusStrings() {
		if str == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid driver status", raw),
	)
}

// Validate checks if the Status value is one of Available or Busy.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid driver status", s))
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
