package routes

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"navtrack/internal/geo"
	"navtrack/internal/polyline"
	"navtrack/internal/service/route"
)

// CreateRouteRequest carries either decoded coordinates or an encoded
// polyline for a new route.
type CreateRouteRequest struct {
	Name      string       `json:"name" binding:"required"`
	Path      [][2]float64 `json:"path"`
	Points    string       `json:"points"`
	Precision *int         `json:"precision"`
}

// SetupRouteHandlers registers the route management endpoints
func SetupRouteHandlers(router *gin.RouterGroup) {
	routeGroup := router.Group("/route")

	routeGroup.POST("", CreateRoute)
	routeGroup.GET("/nearest", NearestRoute)
	routeGroup.GET("/:id", GetRoute)
	routeGroup.GET("/:id/points", GetRoutePoints)
	routeGroup.GET("/:id/progress", RouteProgress)
}

// CreateRoute handles the route creation endpoint
func CreateRoute(c *gin.Context) {
	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": err.Error()})
		return
	}

	precision := precisionOrDefault(req.Precision)
	path := geo.PathFromPairs(req.Path)
	if len(path) == 0 {
		pairs, err := polyline.DecodeWithPrecision(req.Points, precision)
		if err != nil {
			c.JSON(400, gin.H{"status": "error", "message": err.Error()})
			return
		}
		path = geo.PathFromPairs(pairs)
	}
	if len(path) < 2 {
		c.JSON(400, gin.H{"status": "error", "message": "route needs at least two points"})
		return
	}

	created, err := route.GetRouteService().AddRoute(c.Request.Context(), req.Name, path, precision)
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(201, gin.H{
		"status": "success",
		"route":  created,
	})
}

// GetRoute handles the route lookup endpoint
func GetRoute(c *gin.Context) {
	found, ok := route.GetRouteService().GetRoute(c.Param("id"))
	if !ok {
		c.JSON(404, gin.H{"status": "error", "message": "route not found"})
		return
	}

	c.JSON(200, gin.H{
		"status": "success",
		"route":  found,
	})
}

// GetRoutePoints returns the encoded polyline of a route, served from the
// Redis cache when possible.
func GetRoutePoints(c *gin.Context) {
	points, err := route.GetRouteService().CachedRoutePoints(c.Param("id"))
	if err != nil {
		c.JSON(404, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"status": "success",
		"points": points,
	})
}

// NearestRoute finds the loaded route closest to a query position.
func NearestRoute(c *gin.Context) {
	pt, ok := queryPoint(c)
	if !ok {
		return
	}

	nearest, result, err := route.GetRouteService().NearestRoute(pt, geo.Unit(c.Query("unit")))
	if err != nil {
		status := 500
		if errors.Is(err, geo.ErrInvalidUnit) {
			status = 400
		}
		c.JSON(status, gin.H{"status": "error", "message": err.Error()})
		return
	}
	if nearest == nil {
		c.JSON(404, gin.H{"status": "error", "message": "no route near the given point"})
		return
	}

	c.JSON(200, gin.H{
		"status":  "success",
		"route":   nearest,
		"nearest": result,
	})
}

// RouteProgress splits a route at the point nearest to a query position.
func RouteProgress(c *gin.Context) {
	pt, ok := queryPoint(c)
	if !ok {
		return
	}

	before, after, err := route.GetRouteService().Progress(c.Param("id"), pt, geo.Unit(c.Query("unit")))
	if err != nil {
		status := 404
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

// queryPoint parses the lat/lng query parameters, answering the request
// itself when they are missing or malformed.
func queryPoint(c *gin.Context) (geo.Point, bool) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(400, gin.H{"status": "error", "message": "lat and lng query parameters are required"})
		return geo.Point{}, false
	}
	return geo.Point{Lat: lat, Lng: lng}, true
}
