package worker

import (
	"log"
	"time"

	"navtrack/internal/config"
	"navtrack/internal/service/tracker"
)

// StartMovementWorker starts the worker that advances vehicles along their
// routes.
func StartMovementWorker() {
	trackerService := tracker.GetTrackerService()

	ticker := time.NewTicker(config.MovementWorkerInterval)
	go func() {
		for range ticker.C {
			trackerService.ProcessVehicleMovements()
		}
	}()

	log.Println("Movement worker started with interval:", config.MovementWorkerInterval)
}
