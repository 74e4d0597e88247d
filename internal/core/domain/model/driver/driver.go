package driver

import (
	"errors"
	"strings"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// DefaultLocation is where drivers start when no location is supplied.
const DefaultLocation = "HUB-01"

var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver")

// Driver is the aggregate describing a delivery driver.
//
// Invariants:
//   - id is non-blank and never changes
//   - name is non-blank
//   - status is Available or Busy
type Driver struct {
	id       string
	name     string
	status   Status
	location string

	guard guard.ConstructorGuard
}

// NewDriver creates an Available driver. An empty location falls back to
// DefaultLocation.
func NewDriver(id string, name string, location string) (*Driver, error) {
	return RestoreDriver(id, name, Available, location)
}

// RestoreDriver rebuilds a driver with an explicit status, for stores and for
// callers creating drivers that are already busy.
func RestoreDriver(id string, name string, status Status, location string) (*Driver, error) {
	d := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}
	d.setLocation(location)

	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id == other.id
}

func (d *Driver) ID() string {
	return d.id
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) Status() Status {
	return d.status
}

func (d *Driver) Location() string {
	return d.location
}

// IsAvailable reports whether the driver can be picked for an order.
func (d *Driver) IsAvailable() bool {
	return d.status == Available
}

// MarkBusy flags the driver as carrying an order. Marking an already busy
// driver is a no-op, matching order creation against a busy driver.
func (d *Driver) MarkBusy() {
	d.status = Busy
}

// Release returns the driver to the available pool.
func (d *Driver) Release() {
	d.status = Available
}

func (d *Driver) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("id")
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}

func (d *Driver) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Driver) setLocation(location string) {
	if strings.TrimSpace(location) == "" {
		location = DefaultLocation
	}
	d.location = location
}
