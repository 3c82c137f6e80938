package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
	"github.com/ubigu/hedgehog-map/internal/geo"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
)

const msgDetailPlaceholder = "Valitse siili vasemmalla olevasta listasta"

// Detail shows one sighting. It fetches whenever its id changes and ignores
// answers for any id other than the current one.
type Detail struct {
	api     API
	id      int64 // 0 when nothing is selected
	record  *hedgehog.Hedgehog
	loading bool
	err     error
	spinner spinner.Model
}

func NewDetail(api API) Detail {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)
	return Detail{api: api, spinner: s}
}

func (d Detail) ID() int64 { return d.id }

func (d Detail) Record() *hedgehog.Hedgehog { return d.record }

func (d Detail) Loading() bool { return d.loading }

// SetID switches to id. Zero clears the view without a request.
func (d Detail) SetID(id int64) (Detail, tea.Cmd) {
	if id == d.id {
		return d, nil
	}
	d.id = id
	d.record = nil
	d.err = nil
	if id == 0 {
		d.loading = false
		return d, nil
	}
	d.loading = true
	return d, tea.Batch(fetchDetail(d.api, id), d.spinner.Tick)
}

// Show displays a record the caller already holds.
func (d Detail) Show(h hedgehog.Hedgehog) Detail {
	d.id = h.ID
	d.record = &h
	d.loading = false
	d.err = nil
	return d
}

func (d Detail) Update(msg tea.Msg) (Detail, tea.Cmd) {
	switch msg := msg.(type) {
	case detailFetchedMsg:
		if msg.id != d.id {
			return d, nil
		}
		d.loading = false
		if msg.err != nil {
			d.err = msg.err
			return d, nil
		}
		h := msg.hedgehog
		d.record = &h
		return d, nil

	case spinner.TickMsg:
		if !d.loading {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d Detail) View() string {
	switch {
	case d.loading:
		return d.spinner.View() + " Ladataan..."
	case d.err != nil:
		return errorStyle.Render(failureMessage(d.err))
	case d.record == nil:
		return mutedStyle.Render(msgDetailPlaceholder)
	}

	h := d.record
	location := "-"
	if p, err := geo.Decode(h.Location); err == nil {
		location = formatCoordinate(p)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(h.Name),
		fmt.Sprintf("Ikä: %d", h.Age),
		"Sukupuoli: "+genderLabel(h.Gender),
		"Sijainti: "+location,
	)
}

func formatCoordinate(p orb.Point) string {
	return fmt.Sprintf("E %.0f, N %.0f", p.X(), p.Y())
}
