package geo

import "math"

// NearestPoint describes the closest point on a path to a query point.
type NearestPoint struct {
	// Point is the computed nearest point. For NearestPointOnLine it may be
	// an interpolated point rather than an original vertex.
	Point Point `json:"point"`
	// Distance from the query point, in the requested unit.
	Distance float64 `json:"distance"`
	// Index of the path segment the point falls on for NearestPointOnLine,
	// or of the vertex itself for NearestVertex.
	Index int `json:"index"`
	// Location is the cumulative distance from the start of the path to
	// this point, in the requested unit.
	Location float64 `json:"location"`
}

// NearestPointOnLine finds the closest point on a path to pt, refining each
// segment with a perpendicular projection. A path with fewer than two
// points has no segments and yields a nil result.
func NearestPointOnLine(path []Point, pt Point, unit Unit) (*NearestPoint, error) {
	refined, _, err := scanPath(path, pt, unit)
	return refined, err
}

// NearestVertex finds the closest original vertex of a path to pt, without
// the perpendicular refinement. Its Index is the vertex index, which is
// what SplitRouteByPoint slices on. A path with fewer than two points
// yields a nil result.
func NearestVertex(path []Point, pt Point, unit Unit) (*NearestPoint, error) {
	_, vertex, err := scanPath(path, pt, unit)
	return vertex, err
}

// scanPath walks every consecutive vertex pair once, tracking both the
// refined nearest point and the nearest plain vertex. Candidates are
// evaluated in order (segment start, segment stop, perpendicular
// intersection) and only a strictly smaller distance replaces the
// incumbent, so ties keep the earliest candidate.
func scanPath(path []Point, pt Point, unit Unit) (*NearestPoint, *NearestPoint, error) {
	factor, err := unitFactor(unit)
	if err != nil {
		return nil, nil, err
	}
	if len(path) < 2 {
		return nil, nil, nil
	}

	refined := &NearestPoint{Distance: math.Inf(1), Index: -1}
	vertex := &NearestPoint{Distance: math.Inf(1), Index: -1}

	var length float64
	for i := 0; i < len(path)-1; i++ {
		start, stop := path[i], path[i+1]

		dStart := distance(pt, start, factor)
		dStop := distance(pt, stop, factor)
		segLen := distance(start, stop, factor)

		if dStart < refined.Distance {
			*refined = NearestPoint{Point: start, Distance: dStart, Index: i, Location: length}
		}
		if dStart < vertex.Distance {
			*vertex = NearestPoint{Point: start, Distance: dStart, Index: i, Location: length}
		}
		if dStop < refined.Distance {
			*refined = NearestPoint{Point: stop, Distance: dStop, Index: i, Location: length + segLen}
		}
		if dStop < vertex.Distance {
			*vertex = NearestPoint{Point: stop, Distance: dStop, Index: i + 1, Location: length + segLen}
		}

		// Probe line through pt, perpendicular to the segment bearing and
		// long enough to cross the segment if the foot of the
		// perpendicular lies within it.
		radius := math.Max(dStart, dStop)
		direction := Bearing(start, stop)
		left := destination(pt, radius, direction+90, factor)
		right := destination(pt, radius, direction-90, factor)

		if cross, ok := lineIntersect(left, right, start, stop); ok {
			dCross := distance(pt, cross, factor)
			if dCross < refined.Distance {
				*refined = NearestPoint{
					Point:    cross,
					Distance: dCross,
					Index:    i,
					Location: length + distance(start, cross, factor),
				}
			}
		}

		length += segLen
	}

	return refined, vertex, nil
}

// lineIntersect computes the intersection of segments a1-a2 and b1-b2,
// treating lng/lat as planar x/y. This local planar approximation is what
// the perpendicular probe needs; both segments are short by construction.
func lineIntersect(a1, a2, b1, b2 Point) (Point, bool) {
	denom := (b2.Lat-b1.Lat)*(a2.Lng-a1.Lng) - (b2.Lng-b1.Lng)*(a2.Lat-a1.Lat)
	if denom == 0 {
		return Point{}, false
	}

	ua := ((b2.Lng-b1.Lng)*(a1.Lat-b1.Lat) - (b2.Lat-b1.Lat)*(a1.Lng-b1.Lng)) / denom
	ub := ((a2.Lng-a1.Lng)*(a1.Lat-b1.Lat) - (a2.Lat-a1.Lat)*(a1.Lng-b1.Lng)) / denom
	if ua < 0 || ua > 1 || ub < 0 || ub > 1 {
		return Point{}, false
	}

	return Point{
		Lat: a1.Lat + ua*(a2.Lat-a1.Lat),
		Lng: a1.Lng + ua*(a2.Lng-a1.Lng),
	}, true
}
