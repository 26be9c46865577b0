package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// CreateDriverCommand registers a driver under a caller supplied identity.
//
// Example:
//
//	cmd, err := NewCreateDriverCommand("d1", "Ann", "C", true)
//	if err != nil {
//	    return err
//	}
//	d, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrDuplicateKey) {
//	    // identity already taken
//	}
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	id          driver.ID
	name        string
	licenseType string
	available   bool

	guard guard.ConstructorGuard
}

func NewCreateDriverCommand(id, name, licenseType string, available bool) (CreateDriverCommand, error) {
	cmd := CreateDriverCommand{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setID(id),
		cmd.setName(name),
		cmd.setLicenseType(licenseType),
	); err != nil {
		return CreateDriverCommand{}, err
	}

	return cmd, nil
}

func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

func (c CreateDriverCommand) ID() driver.ID {
	return c.id
}

func (c CreateDriverCommand) Name() string {
	return c.name
}

func (c CreateDriverCommand) LicenseType() string {
	return c.licenseType
}

func (c CreateDriverCommand) Available() bool {
	return c.available
}

func (c *CreateDriverCommand) setID(id string) error {
	driverID, err := driver.NewID(id)
	if err != nil {
		return err
	}
	c.id = driverID
	return nil
}

func (c *CreateDriverCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateDriverCommand) setLicenseType(licenseType string) error {
	if licenseType == "" {
		return errs.NewValueIsRequiredError("license type")
	}
	c.licenseType = licenseType
	return nil
}
