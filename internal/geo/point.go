// Package geo holds the boundary representation of sighting locations and the
// fixed ETRS-TM35FIN (EPSG:3067) reference frame every coordinate lives in.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// SRID is the spatial reference of every stored and displayed coordinate.
const SRID = 3067

// TypePoint is the only geometry type exchanged over the API.
const TypePoint = "Point"

var ErrInvalidGeometry = errors.New("invalid geometry")

// Geometry is the boundary JSON form {type:"Point", coordinates:[x, y]}.
type Geometry struct {
	Type        string    `json:"type" validate:"required,eq=Point"`
	Coordinates []float64 `json:"coordinates" validate:"len=2"`
}

// Encode converts a projected point into its boundary form.
func Encode(p orb.Point) Geometry {
	return Geometry{Type: TypePoint, Coordinates: []float64{p.X(), p.Y()}}
}

// Decode converts a boundary geometry back into a point, rejecting anything
// that is not a two-component finite Point.
func Decode(g Geometry) (orb.Point, error) {
	if g.Type != TypePoint {
		return orb.Point{}, fmt.Errorf("%w: type %q", ErrInvalidGeometry, g.Type)
	}
	if len(g.Coordinates) != 2 {
		return orb.Point{}, fmt.Errorf("%w: %d coordinates", ErrInvalidGeometry, len(g.Coordinates))
	}
	for _, c := range g.Coordinates {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return orb.Point{}, fmt.Errorf("%w: non-finite coordinate", ErrInvalidGeometry)
		}
	}
	return orb.Point{g.Coordinates[0], g.Coordinates[1]}, nil
}

// MarshalGeoJSON renders the geometry as GeoJSON text for ST_GeomFromGeoJSON.
func MarshalGeoJSON(g Geometry) ([]byte, error) {
	p, err := Decode(g)
	if err != nil {
		return nil, err
	}
	return geojson.NewGeometry(p).MarshalJSON()
}

// UnmarshalGeoJSON parses GeoJSON text as produced by ST_AsGeoJSON.
func UnmarshalGeoJSON(data []byte) (Geometry, error) {
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return Geometry{}, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	p, ok := g.Geometry().(orb.Point)
	if !ok {
		return Geometry{}, fmt.Errorf("%w: unsupported type %s", ErrInvalidGeometry, g.Type)
	}
	return Encode(p), nil
}
