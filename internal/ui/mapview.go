package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
	"github.com/ubigu/hedgehog-map/internal/geo"
)

const (
	MinZoom = 0
	MaxZoom = 10

	// metres per cell column at MinZoom; rows are twice as tall
	baseResolution = 16000.0
)

// MarkerKind selects how a feature is drawn.
type MarkerKind int

const (
	StoredSighting MarkerKind = iota
	PendingClick
)

func (k MarkerKind) glyph() (string, lipgloss.Style) {
	if k == PendingClick {
		return "+", pendingStyle
	}
	return "●", sightingStyle
}

// Feature is one marker on the overlay layer.
type Feature struct {
	Geometry geo.Geometry
	Kind     MarkerKind
	Label    string
}

// MapView is a character-cell map over the Finland extent. Enter reports the
// projected coordinate under the cursor as a MapClickedMsg.
type MapView struct {
	width    int
	height   int
	center   orb.Point
	zoom     int
	col      int
	row      int
	features []Feature
	basemap  *Basemap
	focused  bool
}

func NewMapView(center orb.Point, zoom int, basemap *Basemap) MapView {
	return MapView{
		width:   60,
		height:  20,
		center:  geo.Clamp(geo.Finland, center),
		zoom:    clampZoom(zoom),
		col:     30,
		row:     10,
		basemap: basemap,
	}
}

func clampZoom(z int) int {
	return max(MinZoom, min(MaxZoom, z))
}

// SetSize resizes the drawing area and recentres the cursor.
func (m *MapView) SetSize(width, height int) {
	m.width = max(width, 1)
	m.height = max(height, 1)
	m.col = m.width / 2
	m.row = m.height / 2
}

// SetFeatures replaces every marker currently drawn.
func (m *MapView) SetFeatures(fs []Feature) {
	m.features = append([]Feature(nil), fs...)
}

func (m MapView) Features() []Feature { return m.features }

func (m MapView) Zoom() int { return m.zoom }

func (m MapView) Center() orb.Point { return m.center }

func (m *MapView) Focus() { m.focused = true }

func (m *MapView) Blur() { m.focused = false }

func (m MapView) resolution() float64 {
	return baseResolution / math.Pow(2, float64(m.zoom))
}

func (m MapView) cellCenter(col, row int) orb.Point {
	res := m.resolution()
	return orb.Point{
		m.center.X() + (float64(col-m.width/2)+0.5)*res,
		m.center.Y() - (float64(row-m.height/2)+0.5)*res*2,
	}
}

func (m MapView) cellOf(p orb.Point) (col, row int, ok bool) {
	res := m.resolution()
	col = int(math.Floor((p.X()-m.center.X())/res)) + m.width/2
	row = int(math.Floor((m.center.Y()-p.Y())/(res*2))) + m.height/2
	ok = col >= 0 && col < m.width && row >= 0 && row < m.height
	return col, row, ok
}

func (m MapView) viewBound() orb.Bound {
	return orb.Bound{
		Min: m.cellCenter(0, m.height-1),
		Max: m.cellCenter(m.width-1, 0),
	}.Pad(m.resolution() * 2)
}

// Cursor is the projected coordinate at the centre of the cursor cell.
func (m MapView) Cursor() orb.Point { return m.cellCenter(m.col, m.row) }

func (m MapView) Update(msg tea.Msg) (MapView, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)
	case "+", "=":
		m.zoom = clampZoom(m.zoom + 1)
	case "-":
		m.zoom = clampZoom(m.zoom - 1)
	case "c":
		m.center = geo.DefaultCenter
		m.col, m.row = m.width/2, m.height/2
	case "enter", " ":
		return m, emit(MapClickedMsg{Coordinate: m.Cursor()})
	}
	return m, nil
}

// moveCursor steps the cursor, panning the view when it would leave the
// drawing area.
func (m *MapView) moveCursor(dc, dr int) {
	col, row := m.col+dc, m.row+dr
	if col >= 0 && col < m.width && row >= 0 && row < m.height {
		m.col, m.row = col, row
		return
	}
	res := m.resolution()
	m.center = geo.Clamp(geo.Finland, orb.Point{
		m.center.X() + float64(dc)*res,
		m.center.Y() - float64(dr)*res*2,
	})
}

func (m MapView) View() string {
	markers := make(map[[2]int]Feature, len(m.features))
	for _, f := range m.features {
		p, err := geo.Decode(f.Geometry)
		if err != nil {
			continue
		}
		if col, row, ok := m.cellOf(p); ok {
			// stored sightings win over the pending click on a shared cell
			if prev, taken := markers[[2]int{col, row}]; taken && prev.Kind == StoredSighting {
				continue
			}
			markers[[2]int{col, row}] = f
		}
	}
	lines := m.lineCells()

	var b strings.Builder
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			var (
				glyph string
				style lipgloss.Style
			)
			if f, ok := markers[[2]int{col, row}]; ok {
				glyph, style = f.Kind.glyph()
			} else if lines[[2]int{col, row}] {
				glyph, style = "~", landStyle
			} else {
				glyph, style = m.background(m.cellCenter(col, row))
			}
			if col == m.col && row == m.row {
				style = style.Inherit(cursorStyle)
				if m.focused {
					style = style.Bold(true)
				}
			}
			b.WriteString(style.Render(glyph))
		}
		if row < m.height-1 {
			b.WriteByte('\n')
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, b.String(), m.statusLine())
}

func (m MapView) background(p orb.Point) (string, lipgloss.Style) {
	blank := lipgloss.NewStyle()
	if !geo.Finland.Contains(p) {
		return " ", blank
	}
	if m.basemap != nil {
		if m.basemap.IsLand(p) {
			return "·", landStyle
		}
		return " ", blank
	}

	res := m.resolution()
	step := gridStep(res)
	vertical := crossesMultiple(p.X(), res/2, step)
	horizontal := crossesMultiple(p.Y(), res, step)
	switch {
	case vertical && horizontal:
		return "┼", gridStyle
	case vertical:
		return "│", gridStyle
	case horizontal:
		return "─", gridStyle
	}
	return " ", blank
}

// lineCells rasterises basemap polylines for the current view.
func (m MapView) lineCells() map[[2]int]bool {
	cells := map[[2]int]bool{}
	if m.basemap == nil {
		return cells
	}
	res := m.resolution()
	for _, ls := range m.basemap.LinesIn(m.viewBound()) {
		for i := 1; i < len(ls); i++ {
			a, b := ls[i-1], ls[i]
			n := int(math.Ceil(math.Hypot(b.X()-a.X(), b.Y()-a.Y())/(res/2))) + 1
			for s := 0; s <= n; s++ {
				t := float64(s) / float64(n)
				p := orb.Point{a.X() + (b.X()-a.X())*t, a.Y() + (b.Y()-a.Y())*t}
				if col, row, ok := m.cellOf(p); ok {
					cells[[2]int{col, row}] = true
				}
			}
		}
	}
	return cells
}

func (m MapView) statusLine() string {
	p := m.Cursor()
	status := fmt.Sprintf("E %.0f  N %.0f  zoom %d/%d", p.X(), p.Y(), m.zoom, MaxZoom)
	for _, f := range m.features {
		fp, err := geo.Decode(f.Geometry)
		if err != nil {
			continue
		}
		if col, row, ok := m.cellOf(fp); ok && col == m.col && row == m.row && f.Label != "" {
			status += "  " + f.Label
			break
		}
	}
	return mutedStyle.Render(status)
}

// gridStep picks a graticule spacing that keeps lines a few cells apart.
func gridStep(res float64) float64 {
	switch {
	case res > 2000:
		return 100000
	case res > 200:
		return 10000
	default:
		return 1000
	}
}

// crossesMultiple reports whether [v-half, v+half) contains a multiple of step.
func crossesMultiple(v, half, step float64) bool {
	return math.Floor((v-half)/step) != math.Floor((v+half)/step)
}
