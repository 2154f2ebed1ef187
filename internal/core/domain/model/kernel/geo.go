package kernel

import (
	"fmt"

	"routex/internal/pkg/errs"
	"routex/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Latitude and longitude bounds in decimal degrees.
var (
	latitudeMin  = decimal.NewFromInt(-90)
	latitudeMax  = decimal.NewFromInt(90)
	longitudeMin = decimal.NewFromInt(-180)
	longitudeMax = decimal.NewFromInt(180)
)

// ErrGeoPointIsNotConstructed is returned when validating a zero-value GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"GeoPoint must be created via NewGeoPoint constructor")

// ErrIncompleteLocation indicates that latitude and longitude were not supplied
// together. A driver device either reports a full coordinate pair or nothing.
var ErrIncompleteLocation = errs.NewValueIsRequiredError(
	"latitude and longitude must be provided together")

// GeoPoint is an immutable value object holding a validated coordinate pair
// reported by a driver device alongside a status update.
//
// Coordinates use decimal degrees with the precision the transport supplies;
// decimal arithmetic avoids float drift when values round-trip through storage.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(
//	    decimal.RequireFromString("24.713552"),
//	    decimal.RequireFromString("46.675296"),
//	)
//	if err != nil {
//	    // handle validation error
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  decimal.Decimal
	longitude decimal.Decimal
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from a latitude/longitude pair.
// Latitude must be within [-90, 90] and longitude within [-180, 180] degrees.
func NewGeoPoint(latitude, longitude decimal.Decimal) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if latitude.LessThan(latitudeMin) || latitude.GreaterThan(latitudeMax) {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError(
			"latitude", latitude.String(), latitudeMin.String(), latitudeMax.String())
	}
	if longitude.LessThan(longitudeMin) || longitude.GreaterThan(longitudeMax) {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError(
			"longitude", longitude.String(), longitudeMin.String(), longitudeMax.String())
	}

	point.latitude = latitude
	point.longitude = longitude
	return point, nil
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() decimal.Decimal {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() decimal.Decimal {
	return p.longitude
}

// IsEqual compares two points by coordinate value.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude.Equal(other.latitude) && p.longitude.Equal(other.longitude)
}

// String renders the point as "lat,lng" for logs and projections.
func (p GeoPoint) String() string {
	return fmt.Sprintf("%s,%s", p.latitude, p.longitude)
}

// Validate checks that the point was built through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}
