package model

import (
	"time"

	"gorm.io/gorm"

	"navtrack/internal/geo"
)

// Route is the unified model for a navigable route. The Points field holds
// the encoded polyline exactly as the upstream routing API returned it;
// Path is the decoded coordinate sequence, populated on load and never
// persisted.
type Route struct {
	ID        string  `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name" gorm:"size:255"`
	Points    string  `json:"points" gorm:"type:text"`
	Precision int     `json:"precision" gorm:"not null"`
	LengthKm  float64 `json:"length_km"`

	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	CreatedAt time.Time      `json:"-" gorm:"column:created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`

	Path []geo.Point `json:"-" gorm:"-"`
}

// RoutePG is the GORM model for the routes table.
type RoutePG struct {
	ID        string  `gorm:"primaryKey"`
	Name      string  `gorm:"size:255"`
	Points    string  `gorm:"type:text"`
	Precision int     `gorm:"not null"`
	LengthKm  float64 `gorm:""`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (RoutePG) TableName() string { return "routes" }

// ToPG converts the route to its persistence model.
func (r *Route) ToPG() *RoutePG {
	return &RoutePG{
		ID:        r.ID,
		Name:      r.Name,
		Points:    r.Points,
		Precision: r.Precision,
		LengthKm:  r.LengthKm,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		DeletedAt: r.DeletedAt,
	}
}

// RouteFromPG converts a persistence model to the in-memory route. Path is
// left empty; the route service decodes it once on load.
func RouteFromPG(pg *RoutePG) *Route {
	return &Route{
		ID:        pg.ID,
		Name:      pg.Name,
		Points:    pg.Points,
		Precision: pg.Precision,
		LengthKm:  pg.LengthKm,
		CreatedAt: pg.CreatedAt,
		UpdatedAt: pg.UpdatedAt,
		DeletedAt: pg.DeletedAt,
	}
}
