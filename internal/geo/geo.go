// Package geo provides great-circle distance, bearing and route geometry
// utilities for coordinate paths, parameterized over a fixed table of
// distance units.
package geo

import "math"

// Point is a geographic coordinate. It is a plain value type; copying is
// free and no function in this package mutates its inputs.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FromPair builds a Point from a [latitude, longitude] pair.
func FromPair(pair [2]float64) Point {
	return Point{Lat: pair[0], Lng: pair[1]}
}

// PathFromPairs converts decoded [latitude, longitude] pairs into a path.
func PathFromPairs(pairs [][2]float64) []Point {
	path := make([]Point, len(pairs))
	for i, p := range pairs {
		path[i] = FromPair(p)
	}
	return path
}

// Distance calculates the great-circle distance between two points using
// the haversine formula, in the given unit.
func Distance(p1, p2 Point, unit Unit) (float64, error) {
	factor, err := unitFactor(unit)
	if err != nil {
		return 0, err
	}
	return distance(p1, p2, factor), nil
}

// Bearing calculates the initial bearing (forward azimuth) from p1 to p2
// in degrees.
func Bearing(p1, p2 Point) float64 {
	lat1 := toRadians(p1.Lat)
	lat2 := toRadians(p2.Lat)
	dLng := toRadians(p2.Lng - p1.Lng)

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)
	return toDegrees(math.Atan2(y, x))
}

// Destination calculates the point reached by travelling the given distance
// from p at the given bearing (degrees), using the direct geodesic formula.
func Destination(p Point, dist, bearing float64, unit Unit) (Point, error) {
	factor, err := unitFactor(unit)
	if err != nil {
		return Point{}, err
	}
	return destination(p, dist, bearing, factor), nil
}

func distance(p1, p2 Point, factor float64) float64 {
	dLat := toRadians(p2.Lat - p1.Lat)
	dLng := toRadians(p2.Lng - p1.Lng)
	lat1 := toRadians(p1.Lat)
	lat2 := toRadians(p2.Lat)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a)) * factor
}

func destination(p Point, dist, bearing, factor float64) Point {
	lat1 := toRadians(p.Lat)
	lng1 := toRadians(p.Lng)
	brg := toRadians(bearing)
	rad := dist / factor

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(rad) + math.Cos(lat1)*math.Sin(rad)*math.Cos(brg))
	lng2 := lng1 + math.Atan2(
		math.Sin(brg)*math.Sin(rad)*math.Cos(lat1),
		math.Cos(rad)-math.Sin(lat1)*math.Sin(lat2))

	return Point{Lat: toDegrees(lat2), Lng: toDegrees(lng2)}
}

func toRadians(degrees float64) float64 { return degrees * math.Pi / 180 }

func toDegrees(radians float64) float64 { return radians * 180 / math.Pi }
