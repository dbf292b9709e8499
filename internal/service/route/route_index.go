package route

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"navtrack/internal/geo"
	"navtrack/internal/model"
)

// RouteSpatial represents a route with its spatial information for R-tree
// indexing.
type RouteSpatial struct {
	ID          string
	BoundingBox orb.Bound
	Route       *model.Route
}

// Bounds implements the rtreego.Spatial interface, returning the bounding
// rectangle of the route in (lng, lat) axes.
func (r *RouteSpatial) Bounds() rtreego.Rect {
	minX, minY := r.BoundingBox.Min[0], r.BoundingBox.Min[1]
	maxX, maxY := r.BoundingBox.Max[0], r.BoundingBox.Max[1]

	// rtreego rejects zero-extent rectangles; degenerate routes get a
	// hair of width instead
	dx := math.Max(maxX-minX, 1e-9)
	dy := math.Max(maxY-minY, 1e-9)

	rect, _ := rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{dx, dy},
	)

	return rect
}

// newRouteSpatial derives the bounding box of a decoded route via orb.
func newRouteSpatial(route *model.Route) *RouteSpatial {
	line := make(orb.LineString, len(route.Path))
	for i, p := range route.Path {
		line[i] = orb.Point{p.Lng, p.Lat}
	}
	return &RouteSpatial{
		ID:          route.ID,
		BoundingBox: line.Bound(),
		Route:       route,
	}
}

// searchRect builds the query rectangle for a point with a padding in
// degrees on each axis.
func searchRect(pt geo.Point, padding float64) rtreego.Rect {
	rect, _ := rtreego.NewRect(
		rtreego.Point{pt.Lng - padding, pt.Lat - padding},
		[]float64{2 * padding, 2 * padding},
	)
	return rect
}
