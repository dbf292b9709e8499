package route

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/dhconnelly/rtreego"

	"navtrack/internal/geo"
	"navtrack/internal/model"
	"navtrack/internal/polyline"
	pg "navtrack/internal/postgres"
	redis_client "navtrack/internal/redis"
	"navtrack/internal/service/storage"
	"navtrack/internal/util"
)

const RoutePointsRedisKey = "route:points"

// routePointsCacheTTL bounds how long encoded polylines stay in Redis for
// API reads before falling back to memory.
const routePointsCacheTTL = 12 * time.Hour

// nearestSearchPaddingDegrees is the half-width of the R-tree query window
// around a query point, roughly 5 km at the equator.
const nearestSearchPaddingDegrees = 0.05

type RouteService struct {
	storage      storage.Storage[string, *model.Route]
	spatialIndex *rtreego.Rtree
	indexMutex   sync.RWMutex
	initialized  bool
	initMutex    sync.RWMutex
}

var (
	routeServiceInstance *RouteService
	routeServiceOnce     sync.Once
)

// GetRouteService returns the singleton instance of RouteService.
func GetRouteService() *RouteService {
	routeServiceOnce.Do(func() {
		routeServiceInstance = &RouteService{
			storage:      storage.NewMemoryStorage[string, *model.Route](),
			spatialIndex: rtreego.NewTree(2, 25, 50),
		}
	})
	return routeServiceInstance
}

// InitService loads routes from PostgreSQL, decodes their polylines and
// builds the spatial index.
func (s *RouteService) InitService(ctx context.Context) error {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	if s.initialized {
		return nil
	}

	log.Println("Initializing RouteService...")
	startTime := time.Now()

	db := pg.GetDB()
	var pgRoutes []*model.RoutePG
	if result := db.WithContext(ctx).Find(&pgRoutes); result.Error != nil {
		return fmt.Errorf("failed to load routes from PostgreSQL: %w", result.Error)
	}
	log.Printf("Loaded %d routes from PostgreSQL in %v", len(pgRoutes), time.Since(startTime))

	decoded := 0
	for _, pgRoute := range pgRoutes {
		route := model.RouteFromPG(pgRoute)
		if err := s.prepareRoute(route); err != nil {
			log.Printf("Skipping route %s: %v", route.ID, err)
			continue
		}
		s.storage.Set(route.ID, route)
		decoded++
	}
	s.storage.ClearDirty(s.storedIDs())

	s.rebuildSpatialIndex()

	log.Printf("Initialization complete: %d routes in memory, took %v",
		decoded, time.Since(startTime))

	s.initialized = true
	return nil
}

// prepareRoute decodes the route's polyline and computes its length. A
// route that fails to decode is rejected rather than indexed half-empty.
func (s *RouteService) prepareRoute(route *model.Route) error {
	pairs, err := polyline.DecodeWithPrecision(route.Points, route.Precision)
	if err != nil {
		return fmt.Errorf("decode points: %w", err)
	}
	route.Path = geo.PathFromPairs(pairs)
	route.LengthKm = pathLengthKm(route.Path)
	return nil
}

func pathLengthKm(path []geo.Point) float64 {
	var total float64
	for i := 0; i < len(path)-1; i++ {
		d, _ := geo.Distance(path[i], path[i+1], geo.UnitKilometers)
		total += d
	}
	return total
}

func (s *RouteService) storedIDs() []string {
	ids := make([]string, 0, s.storage.Count())
	s.storage.ForEach(func(id string, _ *model.Route) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// rebuildSpatialIndex rebuilds the R-tree from the in-memory routes.
func (s *RouteService) rebuildSpatialIndex() {
	s.indexMutex.Lock()
	defer s.indexMutex.Unlock()

	s.spatialIndex = rtreego.NewTree(2, 25, 50)
	s.storage.ForEach(func(_ string, route *model.Route) bool {
		if len(route.Path) > 0 {
			s.spatialIndex.Insert(newRouteSpatial(route))
		}
		return true
	})
}

// GetRoute returns a route by id.
func (s *RouteService) GetRoute(id string) (*model.Route, bool) {
	return s.storage.Get(id)
}

// RouteCount returns the number of loaded routes.
func (s *RouteService) RouteCount() int {
	return s.storage.Count()
}

// AddRoute encodes the path, stores the route in PostgreSQL and memory and
// inserts it into the spatial index.
func (s *RouteService) AddRoute(ctx context.Context, name string, path []geo.Point, precision int) (*model.Route, error) {
	if precision < 0 {
		precision = polyline.DefaultPrecision
	}

	id, err := util.GenerateUniqueID(8)
	if err != nil {
		return nil, err
	}

	pairs := make([][2]float64, len(path))
	for i, p := range path {
		pairs[i] = [2]float64{p.Lat, p.Lng}
	}

	now := time.Now()
	route := &model.Route{
		ID:        id,
		Name:      name,
		Points:    polyline.EncodeWithPrecision(pairs, precision),
		Precision: precision,
		Path:      path,
		LengthKm:  pathLengthKm(path),
		CreatedAt: now,
		UpdatedAt: now,
	}

	db := pg.GetDB()
	if result := db.WithContext(ctx).Create(route.ToPG()); result.Error != nil {
		return nil, fmt.Errorf("failed to store route: %w", result.Error)
	}

	s.storage.Set(route.ID, route)

	s.indexMutex.Lock()
	s.spatialIndex.Insert(newRouteSpatial(route))
	s.indexMutex.Unlock()

	s.cacheRoutePoints(route)

	return route, nil
}

// cacheRoutePoints keeps the encoded polyline in Redis so API reads can be
// served without touching PostgreSQL. Failures only log; the cache is an
// optimization.
func (s *RouteService) cacheRoutePoints(route *model.Route) {
	key := fmt.Sprintf("%s:%s", RoutePointsRedisKey, route.ID)
	if err := redis_client.Set(key, route.Points, routePointsCacheTTL); err != nil {
		log.Printf("Failed to cache route %s points: %v", route.ID, err)
	}
}

// CachedRoutePoints returns the encoded polyline for a route from Redis,
// falling back to memory.
func (s *RouteService) CachedRoutePoints(id string) (string, error) {
	key := fmt.Sprintf("%s:%s", RoutePointsRedisKey, id)
	if points, err := redis_client.Get(key); err == nil {
		return points, nil
	}
	route, ok := s.storage.Get(id)
	if !ok {
		return "", fmt.Errorf("route %s not found", id)
	}
	return route.Points, nil
}

// NearestRoute finds the loaded route closest to the query point together
// with the nearest point on it. Candidate routes come from an R-tree
// bounding-box search; each candidate is refined with the exact
// nearest-point scan. Returns nil when no route is near the point.
func (s *RouteService) NearestRoute(pt geo.Point, unit geo.Unit) (*model.Route, *geo.NearestPoint, error) {
	s.indexMutex.RLock()
	candidates := s.spatialIndex.SearchIntersect(searchRect(pt, nearestSearchPaddingDegrees))
	s.indexMutex.RUnlock()

	var bestRoute *model.Route
	var bestResult *geo.NearestPoint
	bestDistance := math.Inf(1)

	for _, candidate := range candidates {
		spatial, ok := candidate.(*RouteSpatial)
		if !ok {
			continue
		}
		result, err := geo.NearestPointOnLine(spatial.Route.Path, pt, unit)
		if err != nil {
			return nil, nil, err
		}
		if result == nil {
			continue
		}
		if result.Distance < bestDistance {
			bestDistance = result.Distance
			bestRoute = spatial.Route
			bestResult = result
		}
	}

	return bestRoute, bestResult, nil
}

// Progress splits a route at the point nearest to the given position,
// returning the traveled and remaining parts.
func (s *RouteService) Progress(routeID string, position geo.Point, unit geo.Unit) ([]geo.Point, []geo.Point, error) {
	route, ok := s.storage.Get(routeID)
	if !ok {
		return nil, nil, fmt.Errorf("route %s not found", routeID)
	}
	return geo.SplitRouteByPoint(route.Path, position, &geo.SplitOptions{Unit: unit, SnapToPoint: true})
}
