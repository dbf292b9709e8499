package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	equator := Point{Lat: 0, Lng: 0}
	oneDegreeEast := Point{Lat: 0, Lng: 1}

	km, err := Distance(equator, oneDegreeEast, UnitKilometers)
	require.NoError(t, err)
	assert.InDelta(t, 111.19508, km, 1e-5)

	m, err := Distance(equator, oneDegreeEast, UnitMeters)
	require.NoError(t, err)
	assert.InDelta(t, 111195.08023, m, 1e-4)

	mi, err := Distance(equator, oneDegreeEast, UnitMiles)
	require.NoError(t, err)
	assert.InDelta(t, 69.09342, mi, 1e-5)

	rad, err := Distance(equator, oneDegreeEast, UnitRadians)
	require.NoError(t, err)
	assert.InDelta(t, 0.0174533, rad, 1e-7)

	// Default unit is kilometers
	def, err := Distance(equator, oneDegreeEast, "")
	require.NoError(t, err)
	assert.Equal(t, km, def)
}

func TestDistanceSamePoint(t *testing.T) {
	p := Point{Lat: 10.79482, Lng: 106.71173}
	d, err := Distance(p, p, UnitKilometers)
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestDistanceInvalidUnit(t *testing.T) {
	_, err := Distance(Point{}, Point{Lat: 1}, "furlongs")
	assert.ErrorIs(t, err, ErrInvalidUnit)
}

func TestBearing(t *testing.T) {
	origin := Point{Lat: 0, Lng: 0}

	assert.InDelta(t, 90, Bearing(origin, Point{Lat: 0, Lng: 1}), 1e-9)
	assert.InDelta(t, 0, Bearing(origin, Point{Lat: 1, Lng: 0}), 1e-9)
	assert.InDelta(t, -157.85590,
		Bearing(Point{Lat: 10.79552, Lng: 106.71202}, Point{Lat: 10.79482, Lng: 106.71173}), 1e-5)
}

func TestDestination(t *testing.T) {
	origin := Point{Lat: 0, Lng: 0}

	east, err := Destination(origin, 100, 90, UnitKilometers)
	require.NoError(t, err)
	assert.InDelta(t, 0, east.Lat, 1e-9)
	assert.InDelta(t, 0.89932, east.Lng, 1e-5)

	// Travelling back the computed distance returns to the start
	back, err := Distance(origin, east, UnitKilometers)
	require.NoError(t, err)
	assert.InDelta(t, 100, back, 1e-9)

	_, err = Destination(origin, 100, 90, "parsecs")
	assert.ErrorIs(t, err, ErrInvalidUnit)
}

func TestPathFromPairs(t *testing.T) {
	path := PathFromPairs([][2]float64{{10.5, 106.7}, {10.6, 106.8}})
	require.Len(t, path, 2)
	assert.Equal(t, Point{Lat: 10.5, Lng: 106.7}, path[0])
	assert.Equal(t, Point{Lat: 10.6, Lng: 106.8}, path[1])
}
