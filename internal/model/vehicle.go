package model

import (
	"time"

	"gorm.io/gorm"
)

// VehicleState represents the current movement state of a vehicle.
type VehicleState int

const (
	VehicleStateMoving VehicleState = iota
	VehicleStateStopped
)

// Vehicle is the unified model for a tracked vehicle following a route.
type Vehicle struct {
	ID      string  `json:"id" gorm:"primaryKey"`
	Name    string  `json:"name" gorm:"size:255;not null"`
	Speed   float64 `json:"speed" gorm:"not null"` // meters per second
	Lat     float64 `json:"lat" gorm:"not null"`
	Lng     float64 `json:"lng" gorm:"not null"`
	RouteID string  `json:"route_id" gorm:"index"`

	// NextPointIndex is the index of the next route vertex ahead of the
	// vehicle; -1 until tracking starts.
	NextPointIndex int          `json:"next_point_index"`
	State          VehicleState `json:"state" gorm:"not null"`
	TraveledKm     float64      `json:"traveled_km"`

	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	CreatedAt time.Time      `json:"-" gorm:"column:created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

// VehicleRedis is the light model persisted to Redis between PostgreSQL
// snapshots. It carries only the fields the movement worker mutates.
type VehicleRedis struct {
	ID             string       `json:"id"`
	Speed          float64      `json:"speed"`
	Lat            float64      `json:"lat"`
	Lng            float64      `json:"lng"`
	NextPointIndex int          `json:"next_point_index"`
	State          VehicleState `json:"state"`
	TraveledKm     float64      `json:"traveled_km"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ToRedis returns the light version of the vehicle for Redis storage.
func (v *Vehicle) ToRedis() *VehicleRedis {
	return &VehicleRedis{
		ID:             v.ID,
		Speed:          v.Speed,
		Lat:            v.Lat,
		Lng:            v.Lng,
		NextPointIndex: v.NextPointIndex,
		State:          v.State,
		TraveledKm:     v.TraveledKm,
		UpdatedAt:      v.UpdatedAt,
	}
}

// MergeRedis overlays the Redis state onto the vehicle, preserving fields
// that are not stored in Redis.
func (v *Vehicle) MergeRedis(r *VehicleRedis) {
	v.Speed = r.Speed
	v.Lat = r.Lat
	v.Lng = r.Lng
	v.NextPointIndex = r.NextPointIndex
	v.State = r.State
	v.TraveledKm = r.TraveledKm
	v.UpdatedAt = r.UpdatedAt
}

// VehiclePG is the GORM model for the vehicles table.
type VehiclePG struct {
	ID             string  `gorm:"primaryKey"`
	Name           string  `gorm:"size:255;not null"`
	Speed          float64 `gorm:"not null"`
	Lat            float64 `gorm:"not null"`
	Lng            float64 `gorm:"not null"`
	RouteID        string  `gorm:"index"`
	NextPointIndex int
	State          VehicleState `gorm:"not null"`
	TraveledKm     float64

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (VehiclePG) TableName() string { return "vehicles" }

// ToPG converts the vehicle to its persistence model.
func (v *Vehicle) ToPG() *VehiclePG {
	return &VehiclePG{
		ID:             v.ID,
		Name:           v.Name,
		Speed:          v.Speed,
		Lat:            v.Lat,
		Lng:            v.Lng,
		RouteID:        v.RouteID,
		NextPointIndex: v.NextPointIndex,
		State:          v.State,
		TraveledKm:     v.TraveledKm,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		DeletedAt:      v.DeletedAt,
	}
}

// VehicleFromPG converts a persistence model to the in-memory vehicle.
func VehicleFromPG(pg *VehiclePG) *Vehicle {
	return &Vehicle{
		ID:             pg.ID,
		Name:           pg.Name,
		Speed:          pg.Speed,
		Lat:            pg.Lat,
		Lng:            pg.Lng,
		RouteID:        pg.RouteID,
		NextPointIndex: pg.NextPointIndex,
		State:          pg.State,
		TraveledKm:     pg.TraveledKm,
		CreatedAt:      pg.CreatedAt,
		UpdatedAt:      pg.UpdatedAt,
		DeletedAt:      pg.DeletedAt,
	}
}
