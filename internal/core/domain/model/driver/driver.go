package driver

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// maxFieldLength matches the varchar(255) columns of the drivers table.
const maxFieldLength = 255

var (
	// ErrDriverIsNotConstructed is returned when a Driver was not created through
	// NewDriver or RestoreDriver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

	// ErrDriverIsNotAvailable is returned by Occupy when the driver already
	// works a route.
	ErrDriverIsNotAvailable = errors.New("driver is not available")
)

// ID is the caller supplied identity of a driver. It is globally unique and
// never changes.
type ID string

// NewID validates a raw driver identity. The value is kept verbatim; only a
// blank identity is rejected.
func NewID(raw string) (ID, error) {
	if err := requireText("id", raw); err != nil {
		return "", err
	}
	return ID(raw), nil
}

func (id ID) String() string {
	return string(id)
}

// Driver is the aggregate root for a person who can be matched to routes.
//
// Invariants:
//   - id, name and license type are non-blank
//   - availability only ever flips from true to false, through Occupy
//   - registrationSeq is zero until the driver is persisted; afterwards it
//     orders drivers by registration time
type Driver struct {
	id              ID
	name            string
	licenseType     string
	available       bool
	registrationSeq int64

	guard guard.ConstructorGuard
}

// NewDriver creates a driver that has not been persisted yet.
//
// Example:
//
//	id, _ := driver.NewID("d1")
//	d, err := driver.NewDriver(id, "Ann", "C", true)
func NewDriver(id ID, name, licenseType string, available bool) (*Driver, error) {
	if err := errors.Join(
		requireText("id", string(id)),
		requireText("name", name),
		requireText("license type", licenseType),
	); err != nil {
		return nil, err
	}

	return &Driver{
		id:          id,
		name:        name,
		licenseType: licenseType,
		available:   available,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreDriver rebuilds a persisted driver, including its registration
// sequence.
func RestoreDriver(id ID, name, licenseType string, available bool, registrationSeq int64) (*Driver, error) {
	d, err := NewDriver(id, name, licenseType, available)
	if err != nil {
		return nil, err
	}
	if registrationSeq <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("registration sequence", registrationSeq, 1, "max int64")
	}

	d.registrationSeq = registrationSeq
	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() ID {
	return d.id
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) LicenseType() string {
	return d.licenseType
}

// IsAvailable reports whether the driver may take a new route.
func (d *Driver) IsAvailable() bool {
	return d.available
}

// RegistrationSeq is the storage assigned registration order, zero for a
// driver that has not been persisted.
func (d *Driver) RegistrationSeq() int64 {
	return d.registrationSeq
}

// Occupy marks the driver as busy with a route. A driver works one route at a
// time, so occupying a busy driver fails and leaves it untouched.
func (d *Driver) Occupy() error {
	if !d.available {
		return ErrDriverIsNotAvailable
	}
	d.available = false
	return nil
}

func requireText(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	if len(value) > maxFieldLength {
		return errs.NewValueIsOutOfRangeError(param+" length", len(value), 1, maxFieldLength)
	}
	return nil
}
