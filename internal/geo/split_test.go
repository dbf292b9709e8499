package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRouteByPoint(t *testing.T) {
	splitPt := Point{Lat: 10.79482, Lng: 106.70929}

	before, after, err := SplitRouteByPoint(hcmcRoute, splitPt, &SplitOptions{Unit: UnitKilometers})
	require.NoError(t, err)

	// Nearest vertex is index 11; both halves include it
	require.Len(t, before, 12)
	require.Len(t, after, 11)
	assert.Equal(t, hcmcRoute[0], before[0])
	assert.Equal(t, hcmcRoute[11], before[len(before)-1])
	assert.Equal(t, hcmcRoute[11], after[0])
	assert.Equal(t, hcmcRoute[len(hcmcRoute)-1], after[len(after)-1])

	// Concatenating the halves minus the duplicated join vertex
	// reproduces the original path
	rejoined := append(append([]Point{}, before...), after[1:]...)
	assert.Equal(t, hcmcRoute, rejoined)
}

func TestSplitRouteSnapToPoint(t *testing.T) {
	splitPt := Point{Lat: 10.79482, Lng: 106.70929}

	before, after, err := SplitRouteByPoint(hcmcRoute, splitPt, nil)
	require.NoError(t, err)

	// Snapping is the default: the query point terminates the first half
	// and opens the second
	require.Len(t, before, 13)
	require.Len(t, after, 12)
	assert.Equal(t, splitPt, before[len(before)-1])
	assert.Equal(t, splitPt, after[0])
	assert.Equal(t, hcmcRoute[11], before[len(before)-2])
	assert.Equal(t, hcmcRoute[11], after[1])
}

func TestSplitAtFirstVertex(t *testing.T) {
	before, after, err := SplitRouteByPoint(hcmcRoute, hcmcRoute[0], &SplitOptions{})
	require.NoError(t, err)

	assert.Equal(t, []Point{hcmcRoute[0]}, before)
	assert.Equal(t, hcmcRoute, after)
}

func TestSplitAtLastVertex(t *testing.T) {
	last := hcmcRoute[len(hcmcRoute)-1]

	before, after, err := SplitRouteByPoint(hcmcRoute, last, &SplitOptions{})
	require.NoError(t, err)

	assert.Equal(t, hcmcRoute, before)
	assert.Equal(t, []Point{last}, after)
}

func TestSplitDegeneratePath(t *testing.T) {
	pt := Point{Lat: 1, Lng: 1}

	// With no computable nearest vertex the split index degrades to 0
	// instead of failing; upstream behaves the same way.
	single := []Point{{Lat: 0, Lng: 0}}
	before, after, err := SplitRouteByPoint(single, pt, &SplitOptions{})
	require.NoError(t, err)
	assert.Equal(t, single, before)
	assert.Equal(t, single, after)

	before, after, err = SplitRouteByPoint(nil, pt, &SplitOptions{})
	require.NoError(t, err)
	assert.Empty(t, before)
	assert.Empty(t, after)

	// Snapping still applies to the degenerate result
	before, after, err = SplitRouteByPoint(nil, pt, nil)
	require.NoError(t, err)
	assert.Equal(t, []Point{pt}, before)
	assert.Equal(t, []Point{pt}, after)
}

func TestSplitInvalidUnit(t *testing.T) {
	_, _, err := SplitRouteByPoint(hcmcRoute, Point{}, &SplitOptions{Unit: "smoots"})
	assert.ErrorIs(t, err, ErrInvalidUnit)
}
