package geo

import (
	"errors"
	"fmt"
)

// Unit names a distance unit accepted by the geometry functions.
type Unit string

const (
	UnitMeters        Unit = "meters"
	UnitKilometers    Unit = "kilometers"
	UnitMiles         Unit = "miles"
	UnitFeet          Unit = "feet"
	UnitYards         Unit = "yards"
	UnitInches        Unit = "inches"
	UnitNauticalMiles Unit = "nauticalmiles"
	UnitRadians       Unit = "radians"
	UnitDegrees       Unit = "degrees"

	// UnitAcres is an area unit that the upstream conversion table carries
	// for API compatibility. It is accepted by the lookup but is not
	// meaningful as a length.
	UnitAcres Unit = "acres"
)

// EarthRadius is Earth's mean radius in meters.
const EarthRadius = 6371008.8

// ErrInvalidUnit is returned when a unit name is not in the conversion
// table. Unit lookup failure is a hard error, never a silent default.
var ErrInvalidUnit = errors.New("geo: invalid unit")

// factors converts an angular distance in radians on the great circle into
// the named unit.
var factors = map[Unit]float64{
	UnitRadians:       1,
	UnitKilometers:    EarthRadius / 1000,
	UnitMeters:        EarthRadius,
	UnitMiles:         EarthRadius / 1609.344,
	UnitNauticalMiles: EarthRadius / 1852,
	UnitFeet:          EarthRadius * 3.28084,
	UnitYards:         EarthRadius * 1.0936,
	UnitInches:        EarthRadius * 39.37,
	UnitDegrees:       EarthRadius / 111325,
	UnitAcres:         EarthRadius * 0.000247105,
}

// unitFactor resolves a unit to its conversion factor. The empty string
// selects kilometers, the default unit of the geometry functions.
func unitFactor(unit Unit) (float64, error) {
	if unit == "" {
		unit = UnitKilometers
	}
	factor, ok := factors[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}
	return factor, nil
}

// RadiansToDistance converts an angular distance in radians to the given
// unit.
func RadiansToDistance(radians float64, unit Unit) (float64, error) {
	factor, err := unitFactor(unit)
	if err != nil {
		return 0, err
	}
	return radians * factor, nil
}

// DistanceToRadians converts a distance in the given unit to an angular
// distance in radians.
func DistanceToRadians(distance float64, unit Unit) (float64, error) {
	factor, err := unitFactor(unit)
	if err != nil {
		return 0, err
	}
	return distance / factor, nil
}
