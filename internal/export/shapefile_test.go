package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ubigu/hedgehog-map/internal/geo"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
)

type staticSource struct {
	rows []hedgehog.Hedgehog
	err  error
	ids  []int64
}

func (s *staticSource) All(_ context.Context, ids []int64) ([]hedgehog.Hedgehog, error) {
	s.ids = ids
	return s.rows, s.err
}

func sightings() []hedgehog.Hedgehog {
	return []hedgehog.Hedgehog{
		{ID: 1, Name: "Testi Siili", Age: 3, Gender: hedgehog.GenderMale, Location: geo.Encode(orb.Point{385000, 6672000})},
		{ID: 2, Name: "Aino", Age: 0, Gender: hedgehog.GenderFemale, Location: geo.Encode(orb.Point{460000, 7125000})},
	}
}

func TestExport_WritesPointsAndAttributes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "siilit.shp")
	src := &staticSource{rows: sightings()}

	n, err := Export(context.Background(), src, []int64{1, 2}, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int64{1, 2}, src.ids)

	assert.FileExists(t, filepath.Join(dir, "siilit.dbf"))
	assert.NoFileExists(t, filepath.Join(dir, "siilitdbf"))

	prj, err := os.ReadFile(filepath.Join(dir, "siilit.prj"))
	require.NoError(t, err)
	assert.Contains(t, string(prj), "ETRS89_TM35FIN")

	r, err := shp.Open(path)
	require.NoError(t, err)
	defer r.Close()

	var got [][]string
	var points []orb.Point
	for r.Next() {
		i, s := r.Shape()
		p, ok := s.(*shp.Point)
		require.True(t, ok)
		points = append(points, orb.Point{p.X, p.Y})
		var row []string
		for f := range fieldNames {
			row = append(row, strings.TrimSpace(r.ReadAttribute(i, f)))
		}
		got = append(got, row)
	}

	assert.Equal(t, []orb.Point{{385000, 6672000}, {460000, 7125000}}, points)
	assert.Equal(t, [][]string{
		{"1", "Testi Siili", "3", "male"},
		{"2", "Aino", "0", "female"},
	}, got)
}

func TestExport_SourceFailure(t *testing.T) {
	src := &staticSource{err: hedgehog.NewDatabaseError(errors.New("connection refused"))}
	_, err := Export(context.Background(), src, nil, filepath.Join(t.TempDir(), "x.shp"))
	var dbErr *hedgehog.DatabaseError
	assert.ErrorAs(t, err, &dbErr)
}

func TestWriteShapefile_RequiresShpSuffix(t *testing.T) {
	err := WriteShapefile(filepath.Join(t.TempDir(), "siilit.txt"), sightings())
	assert.ErrorContains(t, err, "must end in .shp")
}

func TestWriteShapefile_RejectsBadGeometry(t *testing.T) {
	rows := sightings()
	rows[1].Location = geo.Geometry{Type: "Polygon"}
	err := WriteShapefile(filepath.Join(t.TempDir(), "siilit.shp"), rows)
	assert.ErrorIs(t, err, geo.ErrInvalidGeometry)
}
