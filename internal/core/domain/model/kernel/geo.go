package kernel

import (
	"errors"
	"fmt"
	"math"

	"parcelgo/internal/pkg/errs"
	"parcelgo/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0

	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. Points must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object holding a WGS84 coordinate pair in
// degrees. The zero value is invalid and fails validation; use NewGeoPoint.
//
// Example:
//
//	p, err := kernel.NewGeoPoint(28.6139, 77.2090)
//	if err != nil {
//	    // Handle validation error
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from latitude and longitude in degrees.
// Latitude must lie in [-90, 90] and longitude in [-180, 180]; out-of-range
// values are rejected with a range error.
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// String implements fmt.Stringer with six decimal places, the precision the
// rest of the system stores coordinates at.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lng)
}

// IsEqual compares two points for coordinate equality. Both points must be
// properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lng == other.lng, nil
}

// DistanceKm calculates the great-circle distance to another point in
// kilometers using the haversine formula on a mean Earth radius of 6371 km.
// The result is symmetric and zero for identical points. Both points must be
// properly constructed.
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := toRadians(other.lat - p.lat)
	dLng := toRadians(other.lng - p.lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(p.lat))*math.Cos(toRadians(other.lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

// EtaMinutes converts a distance into an estimated travel time in minutes at
// the given average speed. Fails when the distance is negative or the speed
// is not positive.
func EtaMinutes(distanceKm float64, avgSpeedKmh float64) (float64, error) {
	if distanceKm < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"distanceKm", fmt.Errorf("%f is negative", distanceKm))
	}
	if avgSpeedKmh <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"avgSpeedKmh", fmt.Errorf("%f is not greater than 0", avgSpeedKmh))
	}

	return distanceKm / avgSpeedKmh * 60, nil
}

// setLat sets the latitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers, to enable self-encapsulated validation during construction.
func (p *GeoPoint) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	p.lat = lat
	return nil
}

// setLng sets the longitude with validation.
func (p *GeoPoint) setLng(lng float64) error {
	if lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}

	p.lng = lng
	return nil
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
