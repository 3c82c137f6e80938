package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
	"github.com/ubigu/hedgehog-map/internal/geo"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
)

// Pane is the component receiving keyboard input.
type Pane int

const (
	PaneList Pane = iota
	PaneForm
	PaneMap
)

const (
	listWidth = 28
	formWidth = 48
)

// App wires the four components together. It owns the clicked coordinate,
// the selected id and record, and the list refresh counter.
type App struct {
	list    List
	detail  Detail
	form    Form
	mapView MapView

	focus      Pane
	coordinate *orb.Point
	selectedID int64
	selected   *hedgehog.Hedgehog
	refresh    int

	width  int
	height int
}

func NewApp(api API, cfg Config, basemap *Basemap) App {
	a := App{
		list:    NewList(api),
		detail:  NewDetail(api),
		form:    NewForm(api),
		mapView: NewMapView(cfg.CenterPoint(), cfg.Zoom, basemap),
		focus:   PaneMap,
	}
	a.mapView.Focus()
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.list.Init(), textinput.Blink)
}

func (a App) Focus() Pane { return a.focus }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.layout()
		return a, nil

	case MapClickedMsg:
		p := msg.Coordinate
		a.coordinate = &p
		a.form.SetCoordinate(p)
		a.syncFeatures()
		return a, nil

	case SelectMsg:
		if msg.ID != a.selectedID {
			a.selected = nil
		}
		a.selectedID = msg.ID
		a.list.SetSelected(msg.ID)
		a.detail, cmd = a.detail.SetID(msg.ID)
		a.syncFeatures()
		return a, cmd

	case CreatedMsg:
		h := msg.Hedgehog
		a.refresh++
		a.list, cmd = a.list.Refresh(a.refresh)
		a.selectedID = h.ID
		a.selected = &h
		a.list.SetSelected(h.ID)
		a.detail = a.detail.Show(h)
		a.syncFeatures()
		return a, cmd

	case listFetchedMsg:
		a.list, cmd = a.list.Update(msg)
		return a, cmd

	case detailFetchedMsg:
		a.detail, cmd = a.detail.Update(msg)
		if msg.id == a.selectedID && msg.err == nil {
			h := msg.hedgehog
			a.selected = &h
			a.syncFeatures()
		}
		return a, cmd

	case submittedMsg:
		a.form, cmd = a.form.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.focus != PaneForm {
				return a, tea.Quit
			}
		case "tab":
			return a, a.setFocus((a.focus + 1) % 3)
		case "shift+tab":
			return a, a.setFocus((a.focus + 2) % 3)
		}
	}

	switch a.focus {
	case PaneList:
		a.list, cmd = a.list.Update(msg)
	case PaneForm:
		a.form, cmd = a.form.Update(msg)
	case PaneMap:
		a.mapView, cmd = a.mapView.Update(msg)
	}
	return a, cmd
}

func (a *App) setFocus(p Pane) tea.Cmd {
	a.focus = p
	a.list.Blur()
	a.form.Blur()
	a.mapView.Blur()
	switch p {
	case PaneList:
		a.list.Focus()
	case PaneForm:
		return a.form.Focus()
	case PaneMap:
		a.mapView.Focus()
	}
	return nil
}

// syncFeatures rebuilds the whole marker set from the current state.
func (a *App) syncFeatures() {
	var fs []Feature
	if a.coordinate != nil {
		fs = append(fs, Feature{Geometry: geo.Encode(*a.coordinate), Kind: PendingClick, Label: "Uusi siili"})
	}
	if a.selected != nil {
		fs = append(fs, Feature{Geometry: a.selected.Location, Kind: StoredSighting, Label: a.selected.Name})
	}
	a.mapView.SetFeatures(fs)
}

func (a *App) layout() {
	bodyHeight := max(a.height-6, 5)
	a.list.SetHeight(bodyHeight - 4)
	a.mapView.SetSize(max(a.width-listWidth-formWidth-12, 10), bodyHeight-3)
}

func (a App) pane(p Pane, width int, content string) string {
	style := paneStyle
	if a.focus == p {
		style = activePaneStyle
	}
	return style.Width(width).Render(content)
}

func (a App) View() string {
	if a.width == 0 {
		return "Ladataan..."
	}

	middle := lipgloss.JoinVertical(lipgloss.Left,
		a.detail.View(),
		"",
		a.form.View(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		a.pane(PaneList, listWidth, a.list.View()),
		a.pane(PaneForm, formWidth, middle),
		a.pane(PaneMap, a.mapView.width, a.mapView.View()),
	)

	header := headerStyle.Width(a.width).Render("Siilit kartalla")
	help := helpStyle.Render("Tab: vaihda paneelia • Nuolet: liiku • Enter: valitse • +/-: zoomaa • q: lopeta")
	footer := headerStyle.Width(a.width).Render("Powered by Ubigu Oy")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, help, footer)
}
