package commands

import (
	"errors"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/errs"
	"parcelgo/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand represents a request to register a courier in the
// fleet.
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID    kernel.UUID
	name         string
	vehiclePlate string
	location     *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a new courier.
// Location is optional; a courier without one is skipped during planning
// until it reports a position.
func NewCreateCourierCommand(
	courierID kernel.UUID,
	name string,
	vehiclePlate string,
	location *kernel.GeoPoint,
) (CreateCourierCommand, error) {
	cmd := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setName(name),
		cmd.setVehiclePlate(vehiclePlate),
		cmd.setLocation(location),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the identifier for the new courier.
func (c CreateCourierCommand) CourierID() kernel.UUID { return c.courierID }

// Name returns the courier's display name.
func (c CreateCourierCommand) Name() string { return c.name }

// VehiclePlate returns the courier's vehicle registration plate.
func (c CreateCourierCommand) VehiclePlate() string { return c.vehiclePlate }

// Location returns the courier's starting position, nil when unknown.
func (c CreateCourierCommand) Location() *kernel.GeoPoint { return c.location }

func (c *CreateCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateCourierCommand) setVehiclePlate(vehiclePlate string) error {
	if vehiclePlate == "" {
		return errs.NewValueIsRequiredError("vehiclePlate")
	}
	c.vehiclePlate = vehiclePlate
	return nil
}

func (c *CreateCourierCommand) setLocation(location *kernel.GeoPoint) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
		l := *location
		c.location = &l
	}
	return nil
}
