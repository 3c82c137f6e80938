package store

import (
	"github.com/ubigu/hedgehog-map/internal/geo"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
)

// hedgehogRow is the table definition used by AutoMigrate.
type hedgehogRow struct {
	ID       int64  `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Age      int    `gorm:"not null"`
	Gender   string `gorm:"not null"`
	Location string `gorm:"type:geometry(Point,3067);not null"`
}

func (hedgehogRow) TableName() string { return "hedgehog" }

// geoJSONRow is a scanned row whose location came out of ST_AsGeoJSON.
type geoJSONRow struct {
	ID       int64
	Name     string
	Age      int
	Gender   string
	Location string
}

func (r geoJSONRow) hedgehog() (hedgehog.Hedgehog, error) {
	loc, err := geo.UnmarshalGeoJSON([]byte(r.Location))
	if err != nil {
		return hedgehog.Hedgehog{}, err
	}
	return hedgehog.Hedgehog{
		ID:       r.ID,
		Name:     r.Name,
		Age:      r.Age,
		Gender:   hedgehog.Gender(r.Gender),
		Location: loc,
	}, nil
}
