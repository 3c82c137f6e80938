// Package export writes sightings to ESRI shapefiles.
package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/ubigu/hedgehog-map/internal/geo"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
)

// Source returns full records; an empty ids slice means all of them.
type Source interface {
	All(ctx context.Context, ids []int64) ([]hedgehog.Hedgehog, error)
}

var (
	fieldNames = []string{"ID", "NAME", "AGE", "GENDER"}
	fields     = []shp.Field{
		shp.NumberField(fieldNames[0], 10),
		shp.StringField(fieldNames[1], 100),
		shp.NumberField(fieldNames[2], 3),
		shp.StringField(fieldNames[3], 10),
	}
)

// Export loads the selected sightings from src and writes them to path.
func Export(ctx context.Context, src Source, ids []int64, path string) (int, error) {
	rows, err := src.All(ctx, ids)
	if err != nil {
		return 0, err
	}
	if err := WriteShapefile(path, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// WriteShapefile writes a POINT shapefile with a .prj for EPSG:3067 next to it.
func WriteShapefile(path string, rows []hedgehog.Hedgehog) error {
	if !strings.HasSuffix(strings.ToLower(path), ".shp") {
		return fmt.Errorf("output %q must end in .shp", path)
	}

	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return fmt.Errorf("creating shapefile: %w", err)
	}
	werr := writeRecords(w, rows)
	w.Close()
	if werr != nil {
		return werr
	}

	// go-shp names the attribute table "<base>dbf" without the dot.
	base := path[:len(path)-len(".shp")]
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("renaming attribute table: %w", err)
	}

	if err := os.WriteFile(base+".prj", []byte(geo.PRJ), 0o644); err != nil {
		return fmt.Errorf("writing projection: %w", err)
	}
	return nil
}

func writeRecords(w *shp.Writer, rows []hedgehog.Hedgehog) error {
	if err := w.SetFields(fields); err != nil {
		return fmt.Errorf("setting fields: %w", err)
	}
	for _, h := range rows {
		p, err := geo.Decode(h.Location)
		if err != nil {
			return fmt.Errorf("hedgehog %d: %w", h.ID, err)
		}
		n := int(w.Write(&shp.Point{X: p.X(), Y: p.Y()}))
		attrs := []any{int(h.ID), h.Name, h.Age, string(h.Gender)}
		for i, v := range attrs {
			if err := w.WriteAttribute(n, i, v); err != nil {
				return fmt.Errorf("hedgehog %d attribute %s: %w", h.ID, fieldNames[i], err)
			}
		}
	}
	return nil
}
