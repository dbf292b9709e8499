package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"navtrack/internal/config"
	"navtrack/internal/geo"
	"navtrack/internal/model"
	pg "navtrack/internal/postgres"
	redis_client "navtrack/internal/redis"
	"navtrack/internal/service/route"
	"navtrack/internal/service/storage"
	"navtrack/internal/util"
)

const VehicleRedisKey = "vehicle"

type TrackerService struct {
	storage     storage.Storage[string, *model.Vehicle]
	initialized bool
	initMutex   sync.RWMutex
}

var (
	trackerServiceInstance *TrackerService
	trackerServiceOnce     sync.Once
)

// GetTrackerService returns the singleton instance of TrackerService.
func GetTrackerService() *TrackerService {
	trackerServiceOnce.Do(func() {
		trackerServiceInstance = &TrackerService{
			storage: storage.NewMemoryStorage[string, *model.Vehicle](),
		}
	})
	return trackerServiceInstance
}

// InitService initializes the service by loading data from PostgreSQL and
// Redis.
func (s *TrackerService) InitService(ctx context.Context) error {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	if s.initialized {
		return nil
	}

	log.Println("Initializing TrackerService...")
	startTime := time.Now()

	// Step 1: Load full data from PostgreSQL
	pgVehicles, err := s.loadAllVehiclesFromPG(ctx)
	if err != nil {
		return fmt.Errorf("failed to load vehicles from PostgreSQL: %w", err)
	}
	log.Printf("Loaded %d vehicles from PostgreSQL in %v", len(pgVehicles), time.Since(startTime))

	// Step 2: Load updates from Redis (with timestamps)
	redisVehicles, err := s.loadAllVehiclesFromRedis(ctx)
	if err != nil {
		return fmt.Errorf("failed to load vehicles from Redis: %w", err)
	}
	log.Printf("Loaded %d vehicle updates from Redis", len(redisVehicles))

	// Step 3: Merge data (Redis updates override PostgreSQL data)
	mergedCount := s.mergeVehiclesIntoMemory(pgVehicles, redisVehicles)
	log.Printf("Merged %d newer vehicles from Redis", mergedCount)

	log.Printf("Initialization complete: %d vehicles in memory, took %v",
		s.storage.Count(), time.Since(startTime))

	s.initialized = true
	return nil
}

func (s *TrackerService) loadAllVehiclesFromPG(ctx context.Context) ([]*model.Vehicle, error) {
	db := pg.GetDB()
	var pgVehicles []*model.VehiclePG

	if result := db.WithContext(ctx).Find(&pgVehicles); result.Error != nil {
		return nil, result.Error
	}

	vehicles := make([]*model.Vehicle, len(pgVehicles))
	for i, pgVehicle := range pgVehicles {
		vehicles[i] = model.VehicleFromPG(pgVehicle)
	}

	return vehicles, nil
}

func (s *TrackerService) loadAllVehiclesFromRedis(ctx context.Context) (map[string]*model.VehicleRedis, error) {
	client := redis_client.GetClient()
	var cursor uint64
	var keys []string
	pattern := fmt.Sprintf("%s:*", VehicleRedisKey)

	// Collect all vehicle keys
	for {
		batch, nextCursor, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return make(map[string]*model.VehicleRedis), nil
	}

	jsonData, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	vehicles := make(map[string]*model.VehicleRedis)
	for _, data := range jsonData {
		if data == nil {
			continue
		}

		jsonStr, ok := data.(string)
		if !ok || jsonStr == "" {
			continue
		}

		redisVehicle := &model.VehicleRedis{}
		if err := json.Unmarshal([]byte(jsonStr), redisVehicle); err != nil {
			continue
		}

		vehicles[redisVehicle.ID] = redisVehicle
	}

	return vehicles, nil
}

func (s *TrackerService) mergeVehiclesIntoMemory(pgVehicles []*model.Vehicle, redisVehicles map[string]*model.VehicleRedis) int {
	for _, pgVehicle := range pgVehicles {
		s.storage.Set(pgVehicle.ID, pgVehicle)
	}

	// Override with Redis data where newer
	mergedCount := 0
	for id, redisVehicle := range redisVehicles {
		existing, exists := s.storage.Get(id)
		if !exists {
			continue
		}
		if redisVehicle.UpdatedAt.After(existing.UpdatedAt) {
			existing.MergeRedis(redisVehicle)
			s.storage.Set(id, existing)
			mergedCount++
		}
	}

	s.storage.ClearDirty(s.storedIDs())
	return mergedCount
}

func (s *TrackerService) storedIDs() []string {
	ids := make([]string, 0, s.storage.Count())
	s.storage.ForEach(func(id string, _ *model.Vehicle) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// GetVehicle returns a vehicle by id.
func (s *TrackerService) GetVehicle(id string) (*model.Vehicle, bool) {
	return s.storage.Get(id)
}

// AddVehicle registers a vehicle at the start of a route and persists it.
func (s *TrackerService) AddVehicle(ctx context.Context, name, routeID string, speed float64) (*model.Vehicle, error) {
	routeService := route.GetRouteService()
	r, ok := routeService.GetRoute(routeID)
	if !ok {
		return nil, fmt.Errorf("route %s not found", routeID)
	}
	if len(r.Path) == 0 {
		return nil, fmt.Errorf("route %s has no decoded path", routeID)
	}

	id, err := util.GenerateUniqueID(8)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	vehicle := &model.Vehicle{
		ID:             id,
		Name:           name,
		Speed:          speed,
		Lat:            r.Path[0].Lat,
		Lng:            r.Path[0].Lng,
		RouteID:        routeID,
		NextPointIndex: -1,
		State:          model.VehicleStateStopped,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	db := pg.GetDB()
	if result := db.WithContext(ctx).Create(vehicle.ToPG()); result.Error != nil {
		return nil, fmt.Errorf("failed to store vehicle: %w", result.Error)
	}

	s.storage.Set(vehicle.ID, vehicle)
	return vehicle, nil
}

// SetVehicleState starts or stops a vehicle.
func (s *TrackerService) SetVehicleState(id string, state model.VehicleState) (*model.Vehicle, error) {
	vehicle, ok := s.storage.Get(id)
	if !ok {
		return nil, fmt.Errorf("vehicle %s not found", id)
	}
	vehicle.State = state
	vehicle.UpdatedAt = time.Now()
	s.storage.Set(vehicle.ID, vehicle)
	return vehicle, nil
}

// ProcessVehicleMovements advances every moving vehicle along its route.
func (s *TrackerService) ProcessVehicleMovements() {
	startTime := time.Now()

	processedCount := 0
	s.storage.ForEach(func(id string, vehicle *model.Vehicle) bool {
		if vehicle.State == model.VehicleStateMoving {
			s.advanceVehicle(vehicle)
			processedCount++
		}
		return true
	})

	if processedCount > 0 {
		log.Printf("Processed movements for %d vehicles in %v",
			processedCount, time.Since(startTime))
	}
}

// advanceVehicle moves a vehicle along its decoded route by speed × elapsed
// time, consuming route vertices as it passes them.
func (s *TrackerService) advanceVehicle(vehicle *model.Vehicle) {
	routeService := route.GetRouteService()
	r, ok := routeService.GetRoute(vehicle.RouteID)
	if !ok || len(r.Path) < 2 {
		return
	}
	path := r.Path

	if vehicle.NextPointIndex < 0 {
		s.snapToRoute(vehicle, path)
	}

	elapsed := time.Since(vehicle.UpdatedAt).Seconds()
	budget := vehicle.Speed * elapsed // meters left to travel this tick

	for budget > 0 && vehicle.NextPointIndex < len(path) {
		next := path[vehicle.NextPointIndex]
		toNext := util.GreatCircleMeters(vehicle.Lat, vehicle.Lng, next.Lat, next.Lng)

		if toNext > budget {
			vehicle.Lat, vehicle.Lng = util.MoveToward(vehicle.Lat, vehicle.Lng, next.Lat, next.Lng, budget)
			vehicle.TraveledKm += budget / 1000
			budget = 0
			break
		}

		vehicle.Lat, vehicle.Lng = next.Lat, next.Lng
		vehicle.TraveledKm += toNext / 1000
		vehicle.NextPointIndex++
		budget -= toNext
	}

	if vehicle.NextPointIndex >= len(path) {
		vehicle.State = model.VehicleStateStopped
		log.Printf("Vehicle %s reached the end of route %s", vehicle.ID, vehicle.RouteID)
	}

	vehicle.UpdatedAt = time.Now()
	s.storage.Set(vehicle.ID, vehicle)
}

// snapToRoute places a vehicle that has not started tracking yet onto the
// nearest route vertex.
func (s *TrackerService) snapToRoute(vehicle *model.Vehicle, path []geo.Point) {
	nearest, err := geo.NearestVertex(path, geo.Point{Lat: vehicle.Lat, Lng: vehicle.Lng}, geo.UnitKilometers)
	if err != nil || nearest == nil {
		vehicle.NextPointIndex = 0
		return
	}
	vehicle.Lat = nearest.Point.Lat
	vehicle.Lng = nearest.Point.Lng
	vehicle.TraveledKm = nearest.Location
	if nearest.Index+1 < len(path) {
		vehicle.NextPointIndex = nearest.Index + 1
	} else {
		vehicle.NextPointIndex = nearest.Index
	}
}

// Progress returns the traveled and remaining parts of the vehicle's route,
// split at its current position.
func (s *TrackerService) Progress(vehicleID string, unit geo.Unit) ([]geo.Point, []geo.Point, error) {
	vehicle, ok := s.storage.Get(vehicleID)
	if !ok {
		return nil, nil, fmt.Errorf("vehicle %s not found", vehicleID)
	}

	routeService := route.GetRouteService()
	return routeService.Progress(vehicle.RouteID, geo.Point{Lat: vehicle.Lat, Lng: vehicle.Lng}, unit)
}

// StartPersistenceWorkers starts workers for persisting data to Redis and
// PostgreSQL.
func (s *TrackerService) StartPersistenceWorkers() {
	redisTimer := time.NewTicker(config.RedisBackupInterval)
	go func() {
		for range redisTimer.C {
			if err := s.SaveDirtyVehiclesToRedis(); err != nil {
				log.Printf("Error saving to Redis: %v", err)
			}
		}
	}()

	pgTimer := time.NewTicker(config.PostgresBackupInterval)
	go func() {
		for range pgTimer.C {
			if err := s.SaveAllVehiclesToPG(); err != nil {
				log.Printf("Error saving to PostgreSQL: %v", err)
			}
		}
	}()
}

// SaveDirtyVehiclesToRedis saves modified vehicles to Redis.
func (s *TrackerService) SaveDirtyVehiclesToRedis() error {
	dirtyVehicles := s.storage.GetDirty()
	if len(dirtyVehicles) == 0 {
		return nil
	}

	client := redis_client.GetClient()
	ctx := context.Background()
	pipe := client.Pipeline()

	// Collect keys to clear flags after successful save
	keys := make([]string, 0, len(dirtyVehicles))

	for id, vehicle := range dirtyVehicles {
		vehicleKey := fmt.Sprintf("%s:%s", VehicleRedisKey, id)
		vehicleJSON, err := json.Marshal(vehicle.ToRedis())
		if err != nil {
			return err
		}
		pipe.Set(ctx, vehicleKey, vehicleJSON, 0)
		keys = append(keys, id)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	// Clear flags only after successful save
	s.storage.ClearDirty(keys)

	log.Printf("Saved %d vehicles to Redis", len(dirtyVehicles))
	return nil
}

// SaveAllVehiclesToPG saves all vehicles to PostgreSQL in batches.
func (s *TrackerService) SaveAllVehiclesToPG() error {
	allVehicles := s.storage.GetAllValues()
	if len(allVehicles) == 0 {
		return nil
	}

	db := pg.GetDB()
	batchSize := 1000

	for i := 0; i < len(allVehicles); i += batchSize {
		end := i + batchSize
		if end > len(allVehicles) {
			end = len(allVehicles)
		}

		batch := allVehicles[i:end]

		err := db.Transaction(func(tx *gorm.DB) error {
			for _, vehicle := range batch {
				if result := tx.Save(vehicle.ToPG()); result.Error != nil {
					return result.Error
				}
			}
			return nil
		})

		if err != nil {
			return err
		}
	}

	return nil
}
