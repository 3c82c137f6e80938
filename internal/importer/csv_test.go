package importer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
)

const sample = "\ufeffName,Age,Gender,Easting,Northing\n" +
	"Testi Siili,3,male,385000,6672000\n" +
	"  Aino , 0 ,Female,460000,7125000\n"

func TestParse(t *testing.T) {
	rows, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Testi Siili", rows[0].Name)
	assert.Equal(t, 3, rows[0].Age)
	assert.Equal(t, hedgehog.GenderMale, rows[0].Gender)
	assert.Equal(t, []float64{385000, 6672000}, rows[0].Location.Coordinates)

	assert.Equal(t, "Aino", rows[1].Name)
	assert.Equal(t, 0, rows[1].Age)
	assert.Equal(t, hedgehog.GenderFemale, rows[1].Gender)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want string
	}{
		{"no rows", "name,age,gender,easting,northing\n", "no data rows"},
		{"missing column", "name,age,gender,easting\nA,1,male,400000\n", "missing required column: northing"},
		{"age not integer", "name,age,gender,easting,northing\nA,x,male,400000,7000000\n", `row 2: age "x" is not an integer`},
		{"age too old", "name,age,gender,easting,northing\nA,16,male,400000,7000000\n", "row 2: age:"},
		{"bad gender", "name,age,gender,easting,northing\nA,1,cat,400000,7000000\n", "row 2: gender:"},
		{"blank name", "name,age,gender,easting,northing\n ,1,male,400000,7000000\n", "row 2: name:"},
		{"outside finland", "name,age,gender,easting,northing\nA,1,male,0,0\n", "outside Finland"},
		{"bad coordinate", "name,age,gender,easting,northing\nA,1,male,east,7000000\n", "must be numbers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_DryRunNeedsNoDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "siilit.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	n, err := Run(context.Background(), Config{CSVPath: path, DryRun: true}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRun_RequiresDatabaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "siilit.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	_, err := Run(context.Background(), Config{CSVPath: path}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "DATABASE_URL is required")
}
