package hedgehog

import (
	"context"

	"github.com/ubigu/hedgehog-map/internal/geo"
)

type Gender string

const (
	GenderFemale  Gender = "female"
	GenderMale    Gender = "male"
	GenderUnknown Gender = "unknown"
)

// Genders lists the accepted values in display order.
var Genders = []Gender{GenderFemale, GenderMale, GenderUnknown}

func (g Gender) Valid() bool {
	for _, v := range Genders {
		if g == v {
			return true
		}
	}
	return false
}

// MaxAge is the oldest age a sighting may report.
const MaxAge = 15

// Hedgehog is a stored sighting. ID is assigned by the store.
type Hedgehog struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Age      int          `json:"age"`
	Gender   Gender       `json:"gender"`
	Location geo.Geometry `json:"location"`
}

// ListItem is the lightweight projection returned by the list endpoint.
type ListItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewHedgehog is a validated creation request ready for the store.
type NewHedgehog struct {
	Name     string
	Age      int
	Gender   Gender
	Location geo.Geometry
}

// Repository is the persistence contract. Get reports a missing row with
// found == false rather than an error.
type Repository interface {
	List(ctx context.Context) ([]ListItem, error)
	Get(ctx context.Context, id int64) (h Hedgehog, found bool, err error)
	Create(ctx context.Context, n NewHedgehog) (Hedgehog, error)
}
