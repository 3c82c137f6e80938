package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
)

// API is the subset of the HTTP client the components call.
type API interface {
	List(ctx context.Context) ([]hedgehog.ListItem, error)
	Get(ctx context.Context, id int64) (hedgehog.Hedgehog, error)
	Create(ctx context.Context, in hedgehog.Input) (hedgehog.Hedgehog, error)
}

const requestTimeout = 10 * time.Second

// MapClickedMsg is emitted when Enter is pressed on a map cell.
type MapClickedMsg struct {
	Coordinate orb.Point
}

// SelectMsg is emitted when a list entry is chosen.
type SelectMsg struct {
	ID int64
}

// CreatedMsg is emitted by the form after the server stored a sighting.
type CreatedMsg struct {
	Hedgehog hedgehog.Hedgehog
}

// listFetchedMsg answers the fetch issued for trigger.
type listFetchedMsg struct {
	trigger int
	items   []hedgehog.ListItem
	err     error
}

// detailFetchedMsg answers the fetch issued for id.
type detailFetchedMsg struct {
	id       int64
	hedgehog hedgehog.Hedgehog
	err      error
}

// submittedMsg answers a create request.
type submittedMsg struct {
	hedgehog hedgehog.Hedgehog
	err      error
}

func fetchList(api API, trigger int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := api.List(ctx)
		return listFetchedMsg{trigger: trigger, items: items, err: err}
	}
}

func fetchDetail(api API, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		h, err := api.Get(ctx, id)
		return detailFetchedMsg{id: id, hedgehog: h, err: err}
	}
}

func submitHedgehog(api API, in hedgehog.Input) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		h, err := api.Create(ctx, in)
		return submittedMsg{hedgehog: h, err: err}
	}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
