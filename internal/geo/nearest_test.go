package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hcmcRoute is a 22-vertex route through District 1, Ho Chi Minh City,
// heading southwest along a straight avenue.
var hcmcRoute = []Point{
	{Lat: 10.80070, Lng: 106.71459},
	{Lat: 10.80013, Lng: 106.71405},
	{Lat: 10.79950, Lng: 106.71346},
	{Lat: 10.79895, Lng: 106.71296},
	{Lat: 10.79836, Lng: 106.71243},
	{Lat: 10.79779, Lng: 106.71191},
	{Lat: 10.79721, Lng: 106.71138},
	{Lat: 10.79667, Lng: 106.71088},
	{Lat: 10.79610, Lng: 106.71036},
	{Lat: 10.79554, Lng: 106.70985},
	{Lat: 10.79522, Lng: 106.70956},
	{Lat: 10.79480, Lng: 106.70918},
	{Lat: 10.79432, Lng: 106.70874},
	{Lat: 10.79375, Lng: 106.70822},
	{Lat: 10.79319, Lng: 106.70770},
	{Lat: 10.79262, Lng: 106.70718},
	{Lat: 10.79206, Lng: 106.70667},
	{Lat: 10.79149, Lng: 106.70615},
	{Lat: 10.79092, Lng: 106.70563},
	{Lat: 10.79035, Lng: 106.70511},
	{Lat: 10.78979, Lng: 106.70460},
	{Lat: 10.78922, Lng: 106.70408},
}

func TestNearestPointOnLineStraightSegment(t *testing.T) {
	path := []Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}}
	query := Point{Lat: 1, Lng: 0.5}

	result, err := NearestPointOnLine(path, query, UnitKilometers)
	require.NoError(t, err)
	require.NotNil(t, result)

	// The perpendicular foot lands mid-segment near longitude 0.5
	assert.InDelta(t, 0, result.Point.Lat, 1e-6)
	assert.InDelta(t, 0.5, result.Point.Lng, 1e-6)
	assert.Equal(t, 0, result.Index)
	assert.InDelta(t, 111.19508, result.Distance, 1e-4)
	assert.InDelta(t, 55.59754, result.Location, 1e-3)
	assert.Greater(t, result.Distance, 0.0)
}

func TestNearestPointOnLineRefinesBeyondVertices(t *testing.T) {
	query := Point{Lat: 10.79482, Lng: 106.70929}

	result, err := NearestPointOnLine(hcmcRoute, query, UnitKilometers)
	require.NoError(t, err)
	require.NotNil(t, result)

	// The interpolated point between vertices 10 and 11 is closer to the
	// query than any original vertex.
	assert.Equal(t, 10, result.Index)
	assert.InDelta(t, 10.7948648, result.Point.Lat, 1e-5)
	assert.InDelta(t, 106.7092387, result.Point.Lng, 1e-5)
	assert.InDelta(t, 0.0075034, result.Distance, 1e-5)
	assert.InDelta(t, 0.8733222, result.Location, 1e-4)

	vertex, err := NearestVertex(hcmcRoute, query, UnitKilometers)
	require.NoError(t, err)
	require.NotNil(t, vertex)
	assert.Less(t, result.Distance, vertex.Distance)
}

func TestNearestVertex(t *testing.T) {
	query := Point{Lat: 10.79482, Lng: 106.70929}

	vertex, err := NearestVertex(hcmcRoute, query, UnitKilometers)
	require.NoError(t, err)
	require.NotNil(t, vertex)

	assert.Equal(t, 11, vertex.Index)
	assert.Equal(t, hcmcRoute[11], vertex.Point)
	assert.InDelta(t, 0.0122191, vertex.Distance, 1e-5)
	assert.InDelta(t, 0.8829661, vertex.Location, 1e-4)
}

func TestNearestVertexAtEndpoints(t *testing.T) {
	first, err := NearestVertex(hcmcRoute, hcmcRoute[0], UnitKilometers)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 0, first.Index)
	assert.Zero(t, first.Distance)
	assert.Zero(t, first.Location)

	last, err := NearestVertex(hcmcRoute, hcmcRoute[len(hcmcRoute)-1], UnitKilometers)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, len(hcmcRoute)-1, last.Index)
	assert.Zero(t, last.Distance)
}

func TestNearestPointTieKeepsFirstCandidate(t *testing.T) {
	// The query sits exactly on the shared vertex of two segments; the
	// first evaluation (as the stop of segment 0) must win the tie.
	path := []Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}}
	result, err := NearestPointOnLine(path, path[1], UnitKilometers)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Index)
	assert.Zero(t, result.Distance)
}

func TestNearestPointDegeneratePaths(t *testing.T) {
	query := Point{Lat: 1, Lng: 1}

	result, err := NearestPointOnLine(nil, query, UnitKilometers)
	require.NoError(t, err)
	assert.Nil(t, result)

	result, err = NearestPointOnLine([]Point{{Lat: 0, Lng: 0}}, query, UnitKilometers)
	require.NoError(t, err)
	assert.Nil(t, result)

	vertex, err := NearestVertex([]Point{{Lat: 0, Lng: 0}}, query, UnitKilometers)
	require.NoError(t, err)
	assert.Nil(t, vertex)
}

func TestNearestPointInvalidUnit(t *testing.T) {
	path := []Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}}

	_, err := NearestPointOnLine(path, Point{Lat: 1, Lng: 0.5}, "cubits")
	assert.ErrorIs(t, err, ErrInvalidUnit)

	// Unit validation applies even to paths too short to scan
	_, err = NearestPointOnLine(nil, Point{}, "cubits")
	assert.ErrorIs(t, err, ErrInvalidUnit)
}

func TestNearestPointUnitsAgree(t *testing.T) {
	path := []Point{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}}
	query := Point{Lat: 0.2, Lng: 0.3}

	km, err := NearestPointOnLine(path, query, UnitKilometers)
	require.NoError(t, err)
	m, err := NearestPointOnLine(path, query, UnitMeters)
	require.NoError(t, err)

	assert.Equal(t, km.Index, m.Index)
	assert.InDelta(t, km.Distance*1000, m.Distance, 1e-3)
	assert.InDelta(t, km.Point.Lat, m.Point.Lat, 1e-9)
	assert.InDelta(t, km.Point.Lng, m.Point.Lng, 1e-9)
}
