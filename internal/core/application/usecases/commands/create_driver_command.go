package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// CreateDriverCommand registers a driver. An empty status means AVAILABLE and
// an empty location means driver.DefaultLocation.
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID string
	name     string
	status   driver.Status
	location string

	guard guard.ConstructorGuard
}

func NewCreateDriverCommand(driverID string, name string, status string, location string) (CreateDriverCommand, error) {
	cmd := CreateDriverCommand{
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID(&cmd.driverID, "id", driverID),
		cmd.setName(name),
		cmd.setStatus(status),
	); err != nil {
		return CreateDriverCommand{}, err
	}

	return cmd, nil
}

func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

func (c CreateDriverCommand) DriverID() string {
	return c.driverID
}

func (c CreateDriverCommand) Name() string {
	return c.name
}

func (c CreateDriverCommand) Status() driver.Status {
	return c.status
}

func (c CreateDriverCommand) Location() string {
	return c.location
}

func (c *CreateDriverCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateDriverCommand) setStatus(raw string) error {
	if strings.TrimSpace(raw) == "" {
		c.status = driver.Available
		return nil
	}
	status, err := driver.ParseStatus(raw)
	if err != nil {
		return err
	}
	c.status = status
	return nil
}
