// Package polyline implements Google's Encoded Polyline Algorithm Format,
// the compact string encoding used by routing APIs for route geometry.
// See https://developers.google.com/maps/documentation/utilities/polylinealgorithm
package polyline

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// DefaultPrecision is the number of decimal digits preserved by the
// standard Google/OSRM polyline format (a multiplier of 100,000).
const DefaultPrecision = 5

// ErrTruncated is returned when an encoded string ends in the middle of a
// value, i.e. its last byte still has the continuation bit set.
var ErrTruncated = errors.New("polyline: truncated encoding")

// Encode converts a slice of [latitude, longitude] coordinates to an
// encoded polyline string at the default precision.
func Encode(points [][2]float64) string {
	return EncodeWithPrecision(points, DefaultPrecision)
}

// EncodeWithPrecision encodes coordinates with a custom number of decimal
// digits. A negative precision falls back to the default.
// Empty input encodes to the empty string.
func EncodeWithPrecision(points [][2]float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	factor := math.Pow10(precision)

	// 6 bytes per point is typical at precision 5
	buf := make([]byte, 0, len(points)*6)
	var prevLat, prevLng int64

	for _, p := range points {
		// Round half away from zero; plain truncation or banker's
		// rounding would not reproduce the reference byte stream.
		lat := int64(math.Round(p[0] * factor))
		lng := int64(math.Round(p[1] * factor))

		buf = appendSigned(buf, lat-prevLat)
		buf = appendSigned(buf, lng-prevLng)

		prevLat, prevLng = lat, lng
	}

	return string(buf)
}

// appendSigned writes one signed delta as zig-zag mapped base-32 chunks,
// least significant chunk first, continuation bit 0x20, offset by 63.
func appendSigned(buf []byte, delta int64) []byte {
	v := delta << 1
	if delta < 0 {
		v = ^v
	}
	for v >= 0x20 {
		buf = append(buf, byte(0x20|(v&0x1f))+63)
		v >>= 5
	}
	return append(buf, byte(v)+63)
}

// Decode converts an encoded polyline string to a slice of
// [latitude, longitude] coordinates at the default precision.
func Decode(encoded string) ([][2]float64, error) {
	return DecodeWithPrecision(encoded, DefaultPrecision)
}

// DecodeWithPrecision decodes a polyline with a custom number of decimal
// digits. A negative precision falls back to the default. The empty string
// decodes to an empty path; an encoding that stops mid-value returns
// ErrTruncated rather than a partial path.
func DecodeWithPrecision(encoded string, precision int) ([][2]float64, error) {
	if precision < 0 {
		precision = DefaultPrecision
	}
	factor := math.Pow10(precision)

	points := make([][2]float64, 0, len(encoded)/4+1)
	var index int
	var lat, lng int64

	for index < len(encoded) {
		dLat, next, err := decodeSigned(encoded, index)
		if err != nil {
			return nil, err
		}
		dLng, next, err := decodeSigned(encoded, next)
		if err != nil {
			return nil, err
		}
		index = next

		// Running totals: the encoding is a prefix sum over deltas
		lat += dLat
		lng += dLng

		points = append(points, [2]float64{float64(lat) / factor, float64(lng) / factor})
	}

	return points, nil
}

// DecodeLngLat decodes a polyline into [longitude, latitude] pairs at the
// default precision. The bytes consumed are identical to Decode; only the
// output order of each pair differs.
func DecodeLngLat(encoded string) ([][2]float64, error) {
	return DecodeLngLatWithPrecision(encoded, DefaultPrecision)
}

// DecodeLngLatWithPrecision decodes a polyline into [longitude, latitude]
// pairs with a custom precision.
func DecodeLngLatWithPrecision(encoded string, precision int) ([][2]float64, error) {
	points, err := DecodeWithPrecision(encoded, precision)
	if err != nil {
		return nil, err
	}
	for i, p := range points {
		points[i] = [2]float64{p[1], p[0]}
	}
	return points, nil
}

// ToLineString decodes a polyline into an orb.LineString, whose points are
// in GeoJSON (longitude, latitude) order.
func ToLineString(encoded string, precision int) (orb.LineString, error) {
	points, err := DecodeWithPrecision(encoded, precision)
	if err != nil {
		return nil, err
	}
	line := make(orb.LineString, len(points))
	for i, p := range points {
		line[i] = orb.Point{p[1], p[0]}
	}
	return line, nil
}

// decodeSigned reads one zig-zag encoded value starting at index and
// returns the signed delta and the index of the next unread byte.
func decodeSigned(encoded string, index int) (int64, int, error) {
	var result, shift int64
	for {
		if index >= len(encoded) {
			return 0, index, ErrTruncated
		}
		b := int64(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}
