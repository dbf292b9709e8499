package routes

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"navtrack/internal/geo"
	"navtrack/internal/polyline"
)

// GeometryRequest names a path either as decoded coordinates or as an
// encoded polyline; when both are present the coordinates win.
type GeometryRequest struct {
	Path      [][2]float64 `json:"path"`
	Points    string       `json:"points"`
	Precision *int         `json:"precision"`
	Point     geo.Point    `json:"point" binding:"required"`
	Unit      string       `json:"unit"`
	Snap      *bool        `json:"snap"`
}

// SetupGeometryHandlers registers the route geometry endpoints
func SetupGeometryHandlers(router *gin.RouterGroup) {
	group := router.Group("/geometry")

	group.POST("/nearest", NearestPoint)
	group.POST("/split", SplitRoute)
}

// resolvePath extracts the coordinate path from a geometry request.
func resolvePath(req *GeometryRequest) ([]geo.Point, error) {
	if len(req.Path) > 0 {
		return geo.PathFromPairs(req.Path), nil
	}
	pairs, err := polyline.DecodeWithPrecision(req.Points, precisionOrDefault(req.Precision))
	if err != nil {
		return nil, err
	}
	return geo.PathFromPairs(pairs), nil
}

// NearestPoint handles the nearest-point-on-line endpoint
func NearestPoint(c *gin.Context) {
	var req GeometryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": err.Error()})
		return
	}

	path, err := resolvePath(&req)
	if err != nil {
		c.JSON(400, gin.H{"status": "error", "message": err.Error()})
		return
	}

	result, err := geo.NearestPointOnLine(path, req.Point, geo.Unit(req.Unit))
	if err != nil {
		status := 500
		if errors.Is(err, geo.ErrInvalidUnit) {
			status = 400
		}
		c.JSON(status, gin.H{"status": "error", "message": err.Error()})
		return
	}

	// A degenerate path is not an error; rendering callers expect null
	c.JSON(200, gin.H{
		"status": "success",
		"result": result,
	})
}

// SplitRoute handles the split endpoint, answering GeoJSON so the result
// can be drawn directly.
func SplitRoute(c *gin.Context) {
	var req GeometryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": err.Error()})
		return
	}

	path, err := resolvePath(&req)
	if err != nil {
		c.JSON(400, gin.H{"status": "error", "message": err.Error()})
		return
	}

	opts := &geo.SplitOptions{Unit: geo.Unit(req.Unit), SnapToPoint: true}
	if req.Snap != nil {
		opts.SnapToPoint = *req.Snap
	}

	before, after, err := geo.SplitRouteByPoint(path, req.Point, opts)
	if err != nil {
		status := 500
		if errors.Is(err, geo.ErrInvalidUnit) {
			status = 400
		}
		c.JSON(status, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"status": "success",
		"split":  splitFeatureCollection(before, after),
	})
}

// splitFeatureCollection wraps the two halves of a split as named GeoJSON
// LineString features.
func splitFeatureCollection(before, after []geo.Point) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()

	traveled := geojson.NewFeature(toLineString(before))
	traveled.Properties["name"] = "traveled"
	collection.Append(traveled)

	remaining := geojson.NewFeature(toLineString(after))
	remaining.Properties["name"] = "remaining"
	collection.Append(remaining)

	return collection
}

func toLineString(path []geo.Point) orb.LineString {
	line := make(orb.LineString, len(path))
	for i, p := range path {
		line[i] = orb.Point{p.Lng, p.Lat}
	}
	return line
}
