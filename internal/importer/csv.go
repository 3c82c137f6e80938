package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/ubigu/hedgehog-map/internal/geo"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
)

var requiredColumns = []string{"name", "age", "gender", "easting", "northing"}

// ParseFile reads a sightings CSV from path.
func ParseFile(path string) ([]hedgehog.NewHedgehog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(bufio.NewReader(f))
}

// Parse reads a header row with name,age,gender,easting,northing in any
// order and validates each data row with the API's own rules.
func Parse(r io.Reader) ([]hedgehog.NewHedgehog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errors.New("csv has no data rows")
	}

	header := records[0]
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, k := range requiredColumns {
		if _, ok := col[k]; !ok {
			return nil, fmt.Errorf("missing required column: %s", k)
		}
	}

	out := make([]hedgehog.NewHedgehog, 0, len(records)-1)
	for rowIdx := 1; rowIdx < len(records); rowIdx++ {
		rec := records[rowIdx]
		get := func(name string) string {
			i := col[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		in := hedgehog.Input{
			Name:   get("name"),
			Gender: hedgehog.Gender(strings.ToLower(get("gender"))),
		}
		if raw := get("age"); raw != "" {
			age, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: age %q is not an integer", rowIdx+1, raw)
			}
			in.Age = &age
		}

		x, errX := strconv.ParseFloat(get("easting"), 64)
		y, errY := strconv.ParseFloat(get("northing"), 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("row %d: easting/northing must be numbers", rowIdx+1)
		}
		p := orb.Point{x, y}
		if !geo.Finland.Contains(p) {
			return nil, fmt.Errorf("row %d: point %.0f,%.0f is outside Finland (EPSG:3067)", rowIdx+1, x, y)
		}
		loc := geo.Encode(p)
		in.Location = &loc

		if vs := hedgehog.Validate(&in); len(vs) > 0 {
			return nil, fmt.Errorf("row %d: %s", rowIdx+1, describe(vs))
		}
		out = append(out, in.NewHedgehog())
	}
	return out, nil
}

func describe(vs []hedgehog.Violation) string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, strings.Join(v.Path, ".")+": "+v.Message)
	}
	return strings.Join(parts, "; ")
}
