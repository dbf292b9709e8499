package routes

import (
	"errors"

	"github.com/gin-gonic/gin"

	"navtrack/internal/geo"
	"navtrack/internal/model"
	"navtrack/internal/service/tracker"
)

// CreateVehicleRequest registers a vehicle at the start of a route. Speed
// is in meters per second.
type CreateVehicleRequest struct {
	Name    string  `json:"name" binding:"required"`
	RouteID string  `json:"routeId" binding:"required"`
	Speed   float64 `json:"speed" binding:"required,gt=0"`
}

// SetupVehicleHandlers registers the vehicle tracking endpoints
func SetupVehicleHandlers(router *gin.RouterGroup) {
	vehicleGroup := router.Group("/vehicle")

	vehicleGroup.POST("", CreateVehicle)
	vehicleGroup.GET("/:id", GetVehicle)
	vehicleGroup.POST("/:id/start", StartVehicle)
	vehicleGroup.POST("/:id/stop", StopVehicle)
	vehicleGroup.GET("/:id/progress", VehicleProgress)
}

// CreateVehicle handles the vehicle creation endpoint
func CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": err.Error()})
		return
	}

	vehicle, err := tracker.GetTrackerService().AddVehicle(c.Request.Context(), req.Name, req.RouteID, req.Speed)
	if err != nil {
		c.JSON(400, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(201, gin.H{
		"status":  "success",
		"vehicle": vehicle,
	})
}

// GetVehicle handles the vehicle lookup endpoint
func GetVehicle(c *gin.Context) {
	vehicle, ok := tracker.GetTrackerService().GetVehicle(c.Param("id"))
	if !ok {
		c.JSON(404, gin.H{"status": "error", "message": "vehicle not found"})
		return
	}

	c.JSON(200, gin.H{
		"status":  "success",
		"vehicle": vehicle,
	})
}

// StartVehicle puts a vehicle into the moving state
func StartVehicle(c *gin.Context) {
	setVehicleState(c, model.VehicleStateMoving)
}

// StopVehicle puts a vehicle into the stopped state
func StopVehicle(c *gin.Context) {
	setVehicleState(c, model.VehicleStateStopped)
}

func setVehicleState(c *gin.Context, state model.VehicleState) {
	vehicle, err := tracker.GetTrackerService().SetVehicleState(c.Param("id"), state)
	if err != nil {
		c.JSON(404, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"status":  "success",
		"vehicle": vehicle,
	})
}

// VehicleProgress splits the vehicle's route at its current position.
func VehicleProgress(c *gin.Context) {
	before, after, err := tracker.GetTrackerService().Progress(c.Param("id"), geo.Unit(c.Query("unit")))
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
