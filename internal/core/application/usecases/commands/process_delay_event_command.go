package commands

import (
	"errors"
	"strings"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrProcessDelayEventCommandIsNotConstructed = errors.New(
	"ProcessDelayEventCommand must be created via NewProcessDelayEventCommand constructor",
)

// ProcessDelayEventCommand reports that a driver is late on an order.
// The event id is used only for idempotency.
//
// Example:
//
//	cmd, err := NewProcessDelayEventCommand("evt-42", "ORD-001", "DRV-001", "Heavy traffic")
//	if err != nil {
//	    return fmt.Errorf("invalid delay event: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type ProcessDelayEventCommand struct {
	eventID  string
	orderID  string
	driverID string
	reason   string

	guard guard.ConstructorGuard
}

// NewProcessDelayEventCommand validates that every identifier is non-empty
// after trimming. Identifiers are kept exactly as given. The reason is free
// text and may be empty.
func NewProcessDelayEventCommand(
	eventID string,
	orderID string,
	driverID string,
	reason string,
) (ProcessDelayEventCommand, error) {
	cmd := ProcessDelayEventCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID(&cmd.eventID, "event_id", eventID),
		requireID(&cmd.orderID, "order_id", orderID),
		requireID(&cmd.driverID, "driver_id", driverID),
	); err != nil {
		return ProcessDelayEventCommand{}, err
	}

	return cmd, nil
}

func (c ProcessDelayEventCommand) Validate() error {
	return c.guard.Validate(ErrProcessDelayEventCommandIsNotConstructed)
}

func (c ProcessDelayEventCommand) EventID() string {
	return c.eventID
}

func (c ProcessDelayEventCommand) OrderID() string {
	return c.orderID
}

func (c ProcessDelayEventCommand) DriverID() string {
	return c.driverID
}

func (c ProcessDelayEventCommand) Reason() string {
	return c.reason
}

func requireID(dst *string, paramName string, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	*dst = value
	return nil
}
