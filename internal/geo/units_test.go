package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadiansToDistance(t *testing.T) {
	km, err := RadiansToDistance(1, UnitKilometers)
	require.NoError(t, err)
	assert.InDelta(t, EarthRadius/1000, km, 1e-9)

	rad, err := RadiansToDistance(0.25, UnitRadians)
	require.NoError(t, err)
	assert.Equal(t, 0.25, rad)
}

func TestDistanceToRadians(t *testing.T) {
	rad, err := DistanceToRadians(EarthRadius, UnitMeters)
	require.NoError(t, err)
	assert.InDelta(t, 1, rad, 1e-12)

	// Conversions invert each other for every unit in the table
	for _, unit := range []Unit{
		UnitMeters, UnitKilometers, UnitMiles, UnitFeet, UnitYards,
		UnitInches, UnitNauticalMiles, UnitRadians, UnitDegrees, UnitAcres,
	} {
		d, err := RadiansToDistance(0.5, unit)
		require.NoError(t, err)
		back, err := DistanceToRadians(d, unit)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, back, 1e-12, "unit %s", unit)
	}
}

func TestUnknownUnitRejected(t *testing.T) {
	_, err := RadiansToDistance(1, "leagues")
	require.ErrorIs(t, err, ErrInvalidUnit)
	assert.Contains(t, err.Error(), "leagues")

	_, err = DistanceToRadians(1, "centimeters")
	assert.ErrorIs(t, err, ErrInvalidUnit)
}

func TestAcresCompatibilityQuirk(t *testing.T) {
	// "acres" is dimensionally an area unit; the table keeps it only so the
	// unit surface matches the upstream API.
	_, err := RadiansToDistance(1, UnitAcres)
	assert.NoError(t, err)
}
