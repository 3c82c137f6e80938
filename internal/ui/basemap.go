package ui

import (
	"fmt"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Basemap is background geometry read from an ESRI shapefile in EPSG:3067.
// Polygon parts fill land cells with the even-odd rule; polylines are
// drawn on top.
type Basemap struct {
	rings []boundedRing
	lines []boundedLine
}

type boundedRing struct {
	ring  orb.Ring
	bound orb.Bound
}

type boundedLine struct {
	line  orb.LineString
	bound orb.Bound
}

// LoadBasemap reads polygons and polylines from path. Other shape types are
// skipped.
func LoadBasemap(path string) (*Basemap, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening basemap: %w", err)
	}
	defer r.Close()

	b := &Basemap{}
	for r.Next() {
		_, s := r.Shape()
		switch g := s.(type) {
		case *shp.Polygon:
			for _, pts := range splitParts(g.Parts, g.Points) {
				ring := orb.Ring(pts)
				b.rings = append(b.rings, boundedRing{ring: ring, bound: ring.Bound()})
			}
		case *shp.PolyLine:
			for _, pts := range splitParts(g.Parts, g.Points) {
				line := orb.LineString(pts)
				b.lines = append(b.lines, boundedLine{line: line, bound: line.Bound()})
			}
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("reading basemap: %w", err)
	}
	return b, nil
}

func splitParts(parts []int32, points []shp.Point) [][]orb.Point {
	out := make([][]orb.Point, 0, len(parts))
	for i := range parts {
		start := int(parts[i])
		end := len(points)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		if start >= end || end > len(points) {
			continue
		}
		pts := make([]orb.Point, 0, end-start)
		for _, p := range points[start:end] {
			pts = append(pts, orb.Point{p.X, p.Y})
		}
		out = append(out, pts)
	}
	return out
}

// IsLand reports whether p falls inside the polygon layer.
func (b *Basemap) IsLand(p orb.Point) bool {
	inside := false
	for _, r := range b.rings {
		if r.bound.Contains(p) && planar.RingContains(r.ring, p) {
			inside = !inside
		}
	}
	return inside
}

// LinesIn returns the polylines whose bounds intersect view.
func (b *Basemap) LinesIn(view orb.Bound) []orb.LineString {
	var out []orb.LineString
	for _, l := range b.lines {
		if l.bound.Intersects(view) {
			out = append(out, l.line)
		}
	}
	return out
}
