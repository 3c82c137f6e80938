package geo

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	points := []orb.Point{
		{385000, 6670000},
		{666879, 7017394},
		{0, 0},
		{-12.5, 8.25},
		{764796.72, 7795461.19},
		{43547.790001, 6522236.870001},
	}
	for _, p := range points {
		got, err := Decode(Encode(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestEncodeShape(t *testing.T) {
	data, err := json.Marshal(Encode(orb.Point{385000, 6670000}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Point","coordinates":[385000,6670000]}`, string(data))
}

func TestDecodeRejectsBadGeometry(t *testing.T) {
	tests := []struct {
		name string
		geom Geometry
	}{
		{"wrong type", Geometry{Type: "LineString", Coordinates: []float64{1, 2}}},
		{"one coordinate", Geometry{Type: TypePoint, Coordinates: []float64{1}}},
		{"three coordinates", Geometry{Type: TypePoint, Coordinates: []float64{1, 2, 3}}},
		{"nan", Geometry{Type: TypePoint, Coordinates: []float64{math.NaN(), 2}}},
		{"inf", Geometry{Type: TypePoint, Coordinates: []float64{1, math.Inf(1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.geom)
			assert.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}

func TestGeoJSONRoundTrip(t *testing.T) {
	in := Encode(orb.Point{385000.5, 6670000.25})

	data, err := MarshalGeoJSON(in)
	require.NoError(t, err)

	out, err := UnmarshalGeoJSON(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUnmarshalGeoJSONRejectsPolygon(t *testing.T) {
	_, err := UnmarshalGeoJSON([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`))
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, orb.Point{Finland.Min.X(), Finland.Max.Y()}, Clamp(Finland, orb.Point{0, 9e6}))
	assert.Equal(t, DefaultCenter, Clamp(Finland, DefaultCenter))
	assert.True(t, Finland.Contains(DefaultCenter))
}
