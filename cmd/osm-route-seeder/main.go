package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/qedus/osmpbf"
	"gorm.io/gorm"

	"navtrack/internal/model"
	"navtrack/internal/polyline"
	pg "navtrack/internal/postgres"
	"navtrack/internal/util"
)

// routableHighways lists the highway classes worth seeding as routes.
// Footpaths and service roads produce too much noise for tracking.
var routableHighways = map[string]bool{
	"motorway":     true,
	"trunk":        true,
	"primary":      true,
	"secondary":    true,
	"tertiary":     true,
	"residential":  true,
	"unclassified": true,
}

const insertBatchSize = 500

type nodeCoord struct {
	Lat float64
	Lon float64
}

// seeder extracts road ways from an OSM PBF extract and stores them as
// encoded routes.
type seeder struct {
	nodes  map[int64]nodeCoord
	routes []*model.RoutePG
}

func main() {
	osmFile := flag.String("file", "", "path to the OSM PBF extract")
	dbURL := flag.String("db", os.Getenv("DB_URL"), "PostgreSQL connection URL")
	minPoints := flag.Int("min-points", 2, "skip ways with fewer points")
	flag.Parse()

	if *osmFile == "" {
		log.Fatal("-file is required")
	}
	if *dbURL == "" {
		log.Fatal("-db or DB_URL is required")
	}

	pg.Init(*dbURL)
	defer pg.Close()

	s := &seeder{nodes: make(map[int64]nodeCoord)}
	if err := s.processFile(*osmFile, *minPoints); err != nil {
		log.Fatalf("Failed to process OSM file: %v", err)
	}

	if err := s.storeRoutes(); err != nil {
		log.Fatalf("Failed to store routes: %v", err)
	}

	log.Printf("Seeded %d routes", len(s.routes))
}

// processFile walks the extract twice: nodes first, then the road ways
// that reference them.
func (s *seeder) processFile(path string, minPoints int) error {
	log.Printf("Processing OSM file: %s", path)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open OSM file: %w", err)
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	decoder.Start(runtime.GOMAXPROCS(-1))

	log.Println("First pass: collecting nodes...")
	if err := s.collectNodes(decoder); err != nil {
		return err
	}

	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind OSM file: %w", err)
	}

	decoder = osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	decoder.Start(runtime.GOMAXPROCS(-1))

	log.Println("Second pass: processing road ways...")
	return s.collectRoutes(decoder, minPoints)
}

func (s *seeder) collectNodes(decoder *osmpbf.Decoder) error {
	var nodeCount int

	for {
		obj, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error decoding OSM data: %w", err)
		}

		if node, ok := obj.(*osmpbf.Node); ok {
			s.nodes[node.ID] = nodeCoord{Lat: node.Lat, Lon: node.Lon}
			nodeCount++

			if nodeCount%1000000 == 0 {
				log.Printf("Processed %d nodes...", nodeCount)
			}
		}
	}

	log.Printf("Collected %d nodes", nodeCount)
	return nil
}

func (s *seeder) collectRoutes(decoder *osmpbf.Decoder, minPoints int) error {
	for {
		obj, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error decoding OSM data: %w", err)
		}

		way, ok := obj.(*osmpbf.Way)
		if !ok {
			continue
		}
		highway, ok := way.Tags["highway"]
		if !ok || !routableHighways[highway] {
			continue
		}

		route := s.wayToRoute(way, highway, minPoints)
		if route != nil {
			s.routes = append(s.routes, route)
		}
	}

	log.Printf("Extracted %d road ways", len(s.routes))
	return nil
}

// wayToRoute resolves a way's node references and encodes the result. Ways
// with unresolved nodes are kept as long as enough points remain.
func (s *seeder) wayToRoute(way *osmpbf.Way, highway string, minPoints int) *model.RoutePG {
	pairs := make([][2]float64, 0, len(way.NodeIDs))
	for _, nodeID := range way.NodeIDs {
		coord, ok := s.nodes[nodeID]
		if !ok {
			continue
		}
		pairs = append(pairs, [2]float64{coord.Lat, coord.Lon})
	}
	if len(pairs) < minPoints {
		return nil
	}

	id, err := util.GenerateUniqueID(8)
	if err != nil {
		return nil
	}

	name := way.Tags["name"]
	if name == "" {
		name = fmt.Sprintf("%s %d", highway, way.ID)
	}

	now := time.Now()
	return &model.RoutePG{
		ID:        id,
		Name:      name,
		Points:    polyline.Encode(pairs),
		Precision: polyline.DefaultPrecision,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *seeder) storeRoutes() error {
	if len(s.routes) == 0 {
		return nil
	}

	db := pg.GetDB()
	for i := 0; i < len(s.routes); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(s.routes) {
			end = len(s.routes)
		}
		batch := s.routes[i:end]

		err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(batch).Error
		})
		if err != nil {
			return fmt.Errorf("failed to insert batch at %d: %w", i, err)
		}

		log.Printf("Inserted %d/%d routes", end, len(s.routes))
	}
	return nil
}
