package courier

import (
	"errors"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/errs"
	"parcelgo/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrVehiclePlateIsRequired is returned when attempting to create a courier without a vehicle plate.
	ErrVehiclePlateIsRequired = errs.NewValueIsRequiredError("vehiclePlate")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")
)

// Courier represents a delivery courier available for order assignment.
// It is an aggregate root that manages courier identity and last known
// position.
//
// Business rules:
//   - Courier must have a valid UUID, non-empty name, and non-empty vehicle plate
//   - Position is optional; a courier without a reported position is skipped
//     during assignment planning
//   - Availability toggles when the courier is bound to or released from an order
type Courier struct {
	id           kernel.UUID
	name         string
	vehiclePlate string
	location     *kernel.GeoPoint
	available    bool

	guard guard.ConstructorGuard
}

// NewCourier creates a new available Courier. Location may be nil when the
// courier has not reported a position yet.
func NewCourier(id kernel.UUID, name, vehiclePlate string, location *kernel.GeoPoint) (*Courier, error) {
	c := &Courier{
		available: true,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setVehiclePlate(vehiclePlate),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// including its availability.
func RestoreCourier(id kernel.UUID, name, vehiclePlate string, location *kernel.GeoPoint, available bool) (*Courier, error) {
	c, err := NewCourier(id, name, vehiclePlate, location)
	if err != nil {
		return nil, err
	}

	c.available = available
	return c, nil
}

// Validate ensures the Courier instance was properly constructed through a
// factory function.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// VehiclePlate returns the courier's vehicle registration plate.
func (c *Courier) VehiclePlate() string { return c.vehiclePlate }

// Location returns the courier's last reported position, nil when unknown.
func (c *Courier) Location() *kernel.GeoPoint { return c.location }

// HasLocation reports whether the courier has a known position.
func (c *Courier) HasLocation() bool { return c.location != nil }

// IsAvailable reports whether the courier can take a new order.
func (c *Courier) IsAvailable() bool { return c.available }

// ReportLocation updates the courier's last known position.
func (c *Courier) ReportLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = &location
	return nil
}

// MarkBusy marks the courier as bound to an order.
func (c *Courier) MarkBusy() {
	c.available = false
}

// MarkAvailable marks the courier as free for assignment.
func (c *Courier) MarkAvailable() {
	c.available = true
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setVehiclePlate(vehiclePlate string) error {
	if vehiclePlate == "" {
		return ErrVehiclePlateIsRequired
	}
	c.vehiclePlate = vehiclePlate
	return nil
}

func (c *Courier) setLocation(location *kernel.GeoPoint) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
		l := *location
		c.location = &l
	}
	return nil
}
