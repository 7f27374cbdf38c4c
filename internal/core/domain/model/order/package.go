package order

import (
	"errors"
	"fmt"

	"parcelgo/internal/pkg/errs"
	"parcelgo/internal/pkg/guard"
)

// ErrPackageIsNotConstructed is returned when attempting to use an improperly
// initialized Package. Packages must be created via NewPackage.
var ErrPackageIsNotConstructed = errs.NewValueIsRequiredError(
	"package must be created via NewPackage constructor")

// Dimensions holds the physical size of a parcel in centimeters.
type Dimensions struct {
	LengthCm float64
	WidthCm  float64
	HeightCm float64
}

// Validate checks that every dimension is positive.
func (d Dimensions) Validate() error {
	if d.LengthCm <= 0 || d.WidthCm <= 0 || d.HeightCm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("dimensions",
			fmt.Errorf("%gx%gx%g cm must all be greater than 0", d.LengthCm, d.WidthCm, d.HeightCm))
	}
	return nil
}

// Package is an immutable value object describing the parcel attached to an
// order. Every attribute is optional at creation; a positive weight is only
// required once the order is priced.
type Package struct { //nolint:recvcheck //using for validation
	description   string
	weightKg      float64
	dimensions    *Dimensions
	declaredValue *float64

	guard guard.ConstructorGuard
}

// NewPackage creates a Package. Weight and declared value must not be
// negative; zero weight means "not specified yet". Dimensions, when present,
// must be positive in every direction.
func NewPackage(
	description string,
	weightKg float64,
	dimensions *Dimensions,
	declaredValue *float64,
) (Package, error) {
	p := Package{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setWeightKg(weightKg),
		p.setDimensions(dimensions),
		p.setDeclaredValue(declaredValue),
	); err != nil {
		return Package{}, err
	}

	return p, nil
}

// Validate checks that the Package was created through NewPackage.
func (p Package) Validate() error {
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

// Description returns the free-text parcel description.
func (p Package) Description() string { return p.description }

// WeightKg returns the parcel weight in kilograms; zero means unspecified.
func (p Package) WeightKg() float64 { return p.weightKg }

// HasWeight reports whether a usable weight was provided.
func (p Package) HasWeight() bool { return p.weightKg > 0 }

// Dimensions returns the parcel dimensions, or nil when unspecified.
func (p Package) Dimensions() *Dimensions { return p.dimensions }

// DeclaredValue returns the declared value, or nil when unspecified.
func (p Package) DeclaredValue() *float64 { return p.declaredValue }

func (p *Package) setWeightKg(weightKg float64) error {
	if weightKg < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weightKg", fmt.Errorf("%f is negative", weightKg))
	}

	p.weightKg = weightKg
	return nil
}

func (p *Package) setDimensions(dimensions *Dimensions) error {
	if dimensions != nil {
		if err := dimensions.Validate(); err != nil {
			return err
		}
		d := *dimensions
		p.dimensions = &d
	}
	return nil
}

func (p *Package) setDeclaredValue(declaredValue *float64) error {
	if declaredValue != nil {
		if *declaredValue < 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"declaredValue", fmt.Errorf("%f is negative", *declaredValue))
		}
		v := *declaredValue
		p.declaredValue = &v
	}
	return nil
}
