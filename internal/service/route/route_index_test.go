package route

import (
	"testing"

	"github.com/dhconnelly/rtreego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navtrack/internal/geo"
	"navtrack/internal/model"
)

func testRoute(id string, path []geo.Point) *model.Route {
	return &model.Route{ID: id, Name: id, Path: path}
}

func TestRouteSpatialBounds(t *testing.T) {
	route := testRoute("r1", []geo.Point{
		{Lat: 10.79452, Lng: 106.70920},
		{Lat: 10.79630, Lng: 106.70730},
	})

	rect := newRouteSpatial(route).Bounds()

	assert.InDelta(t, 106.70730, rect.PointCoord(0), 1e-9)
	assert.InDelta(t, 10.79452, rect.PointCoord(1), 1e-9)
	assert.InDelta(t, 0.00190, rect.LengthsCoord(0), 1e-9)
	assert.InDelta(t, 0.00178, rect.LengthsCoord(1), 1e-9)
}

func TestRouteSpatialBoundsDegenerate(t *testing.T) {
	// A single-vertex route still needs a valid, positive-extent rectangle
	route := testRoute("point", []geo.Point{{Lat: 10.5, Lng: 106.7}})

	rect := newRouteSpatial(route).Bounds()

	assert.Greater(t, rect.LengthsCoord(0), 0.0)
	assert.Greater(t, rect.LengthsCoord(1), 0.0)
}

func TestSpatialIndexSearch(t *testing.T) {
	tree := rtreego.NewTree(2, 25, 50)
	saigon := testRoute("saigon", []geo.Point{
		{Lat: 10.79452, Lng: 106.70920},
		{Lat: 10.79480, Lng: 106.70918},
	})
	hanoi := testRoute("hanoi", []geo.Point{
		{Lat: 21.02880, Lng: 105.85420},
		{Lat: 21.03010, Lng: 105.85550},
	})
	tree.Insert(newRouteSpatial(saigon))
	tree.Insert(newRouteSpatial(hanoi))

	hits := tree.SearchIntersect(searchRect(geo.Point{Lat: 10.7946, Lng: 106.7092}, 0.05))

	require.Len(t, hits, 1)
	spatial, ok := hits[0].(*RouteSpatial)
	require.True(t, ok)
	assert.Equal(t, "saigon", spatial.ID)
}

func TestPathLengthKm(t *testing.T) {
	path := []geo.Point{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 1},
		{Lat: 0, Lng: 2},
	}

	assert.InDelta(t, 222.39016, pathLengthKm(path), 1e-4)
	assert.Zero(t, pathLengthKm(path[:1]))
	assert.Zero(t, pathLengthKm(nil))
}
