package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
)

const msgListEmpty = "Ei siilejä tietokannassa."

// List shows the registered sightings. The selected id is owned by the
// parent and pushed in with SetSelected.
type List struct {
	api      API
	items    []hedgehog.ListItem
	cursor   int
	selected int64
	trigger  int
	err      error
	focused  bool
	height   int
}

func NewList(api API) List {
	return List{api: api, height: 20}
}

// Init fetches the first page on mount.
func (l List) Init() tea.Cmd {
	return fetchList(l.api, l.trigger)
}

// Refresh refetches when trigger differs from the last one seen.
func (l List) Refresh(trigger int) (List, tea.Cmd) {
	if trigger == l.trigger {
		return l, nil
	}
	l.trigger = trigger
	return l, fetchList(l.api, trigger)
}

func (l *List) SetSelected(id int64) {
	l.selected = id
	for i, it := range l.items {
		if it.ID == id {
			l.cursor = i
		}
	}
}

func (l *List) SetHeight(h int) { l.height = max(h, 1) }

func (l *List) Focus() { l.focused = true }

func (l *List) Blur() { l.focused = false }

func (l List) Items() []hedgehog.ListItem { return l.items }

func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	switch msg := msg.(type) {
	case listFetchedMsg:
		if msg.trigger != l.trigger {
			return l, nil
		}
		if msg.err != nil {
			l.err = msg.err
			return l, nil
		}
		l.err = nil
		l.items = msg.items
		l.cursor = min(l.cursor, max(len(l.items)-1, 0))
		l.SetSelected(l.selected)
		return l, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if l.cursor > 0 {
				l.cursor--
			}
		case "down", "j":
			if l.cursor < len(l.items)-1 {
				l.cursor++
			}
		case "enter", " ":
			if len(l.items) > 0 {
				return l, emit(SelectMsg{ID: l.items[l.cursor].ID})
			}
		}
	}
	return l, nil
}

func (l List) View() string {
	rows := []string{titleStyle.Render("Rekisteröidyt siilit"), ""}

	if len(l.items) == 0 {
		rows = append(rows, mutedStyle.Render(msgListEmpty))
	} else {
		start := 0
		if l.cursor >= l.height {
			start = l.cursor - l.height + 1
		}
		end := min(len(l.items), start+l.height)
		for i := start; i < end; i++ {
			rows = append(rows, l.itemView(i))
		}
		if len(l.items) > l.height {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("%d/%d", l.cursor+1, len(l.items))))
		}
	}

	if l.err != nil {
		rows = append(rows, "", errorStyle.Render(failureMessage(l.err)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (l List) itemView(i int) string {
	it := l.items[i]
	prefix := "  "
	if l.focused && i == l.cursor {
		prefix = "› "
	}
	name := strings.TrimSpace(it.Name)
	if it.ID == l.selected {
		return prefix + selectedItemStyle.Render(name)
	}
	return prefix + name
}
