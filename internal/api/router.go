package api

import (
	routes "navtrack/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, config map[string]string) {
	// API group
	api := r.Group("/api")

	// Setup main handlers
	routes.SetupMainHandlers(r.Group(""), config)

	// Codec endpoints
	routes.SetupPolylineHandlers(api)

	// Geometry endpoints
	routes.SetupGeometryHandlers(api)

	// Route and vehicle endpoints
	routes.SetupRouteHandlers(api)
	routes.SetupVehicleHandlers(api)
}
