package routes

import (
	"errors"

	"github.com/gin-gonic/gin"

	"navtrack/internal/polyline"
)

// EncodeRequest carries coordinates in [latitude, longitude] order.
type EncodeRequest struct {
	Coordinates [][2]float64 `json:"coordinates" binding:"required"`
	Precision   *int         `json:"precision"`
}

// DecodeRequest carries an encoded polyline. Order selects the output
// convention of each pair: "latlng" (default) or "lnglat".
type DecodeRequest struct {
	Points    string `json:"points"`
	Precision *int   `json:"precision"`
	Order     string `json:"order"`
}

// SetupPolylineHandlers registers the polyline codec endpoints
func SetupPolylineHandlers(router *gin.RouterGroup) {
	group := router.Group("/polyline")

	group.POST("/encode", EncodePolyline)
	group.POST("/decode", DecodePolyline)
}

// EncodePolyline handles the encode endpoint
func EncodePolyline(c *gin.Context) {
	var req EncodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"status": "success",
		"points": polyline.EncodeWithPrecision(req.Coordinates, precisionOrDefault(req.Precision)),
	})
}

// DecodePolyline handles the decode endpoint
func DecodePolyline(c *gin.Context) {
	var req DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": err.Error()})
		return
	}

	precision := precisionOrDefault(req.Precision)

	var coordinates [][2]float64
	var err error
	switch req.Order {
	case "", "latlng":
		coordinates, err = polyline.DecodeWithPrecision(req.Points, precision)
	case "lnglat":
		coordinates, err = polyline.DecodeLngLatWithPrecision(req.Points, precision)
	default:
		c.JSON(400, gin.H{"status": "error", "message": "order must be latlng or lnglat"})
		return
	}

	if err != nil {
		status := 400
		if !errors.Is(err, polyline.ErrTruncated) {
			status = 500
		}
		c.JSON(status, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"status":      "success",
		"coordinates": coordinates,
	})
}

func precisionOrDefault(p *int) int {
	if p == nil {
		return polyline.DefaultPrecision
	}
	return *p
}
