package util

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371008.8

// MoveToward returns the point reached by travelling distanceMeters from
// the start toward the end along the great circle between them. When the
// requested distance exceeds the separation, the end point is returned.
func MoveToward(startLat, startLng, endLat, endLng, distanceMeters float64) (float64, float64) {
	startPoint := s2.PointFromLatLng(s2.LatLngFromDegrees(startLat, startLng))
	endPoint := s2.PointFromLatLng(s2.LatLngFromDegrees(endLat, endLng))

	totalDistanceAngle := s1.Angle(s2.ChordAngleBetweenPoints(startPoint, endPoint).Angle())
	totalDistanceMeters := totalDistanceAngle.Radians() * earthRadiusMeters

	if distanceMeters >= totalDistanceMeters {
		return endLat, endLng
	}

	fraction := distanceMeters / totalDistanceMeters

	// Interpolate on the great circle path
	newPoint := s2.Interpolate(fraction, startPoint, endPoint)
	newLatLng := s2.LatLngFromPoint(newPoint)

	return newLatLng.Lat.Degrees(), newLatLng.Lng.Degrees()
}

// GreatCircleMeters returns the great-circle separation of two coordinates
// in meters, computed on the unit sphere via s2.
func GreatCircleMeters(lat1, lng1, lat2, lng2 float64) float64 {
	point1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lng1))
	point2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lng2))

	angle := s1.Angle(s2.ChordAngleBetweenPoints(point1, point2).Angle())

	return angle.Radians() * earthRadiusMeters
}
