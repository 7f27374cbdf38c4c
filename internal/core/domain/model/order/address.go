package order

import (
	"errors"

	"parcelgo/internal/core/domain/model/kernel"
	"parcelgo/internal/pkg/errs"
	"parcelgo/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is an immutable value object describing one end of a delivery:
// contact details, the free-text address lines, and optionally the resolved
// geographic point. Only the first address line is mandatory; the point is
// filled by the geocoding collaborator when available, and operations that
// need distances reject addresses without one.
type Address struct { //nolint:recvcheck //using for validation
	name   string
	phone  string
	addr1  string
	addr2  string
	city   string
	state  string
	postal string
	point  *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewAddress creates an Address. addr1 must be non-empty; every other field is
// optional. A non-nil point must be a properly constructed GeoPoint.
func NewAddress(
	name, phone, addr1, addr2, city, state, postal string,
	point *kernel.GeoPoint,
) (Address, error) {
	a := Address{
		name:   name,
		phone:  phone,
		addr2:  addr2,
		city:   city,
		state:  state,
		postal: postal,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(a.setAddr1(addr1), a.setPoint(point)); err != nil {
		return Address{}, err
	}

	return a, nil
}

// Validate checks that the Address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Name returns the contact name.
func (a Address) Name() string { return a.name }

// Phone returns the contact phone number.
func (a Address) Phone() string { return a.phone }

// Addr1 returns the first address line.
func (a Address) Addr1() string { return a.addr1 }

// Addr2 returns the second address line.
func (a Address) Addr2() string { return a.addr2 }

// City returns the city.
func (a Address) City() string { return a.city }

// State returns the state or region.
func (a Address) State() string { return a.state }

// Postal returns the postal code.
func (a Address) Postal() string { return a.postal }

// Point returns the resolved geographic point, or nil when the address has
// not been geocoded.
func (a Address) Point() *kernel.GeoPoint { return a.point }

// HasPoint reports whether the address carries resolved coordinates.
func (a Address) HasPoint() bool { return a.point != nil }

// WithPoint returns a copy of the address carrying the resolved coordinates.
// Used after geocoding; the postal fields stay untouched.
func (a Address) WithPoint(point kernel.GeoPoint) (Address, error) {
	if err := a.Validate(); err != nil {
		return Address{}, err
	}
	if err := point.Validate(); err != nil {
		return Address{}, err
	}

	enriched := a
	enriched.point = &point
	return enriched, nil
}

func (a *Address) setAddr1(addr1 string) error {
	if addr1 == "" {
		return errs.NewValueIsRequiredError("addr1")
	}

	a.addr1 = addr1
	return nil
}

func (a *Address) setPoint(point *kernel.GeoPoint) error {
	if point != nil {
		if err := point.Validate(); err != nil {
			return err
		}
		p := *point
		a.point = &p
	}
	return nil
}
