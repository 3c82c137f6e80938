package ui

import (
	"context"
	"errors"
	"net"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/ubigu/hedgehog-map/internal/client"
	"github.com/ubigu/hedgehog-map/internal/geo"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
)

// fakeAPI records calls and answers from an in-memory table.
type fakeAPI struct {
	rows      []hedgehog.Hedgehog
	listErr   error
	createErr error

	listCalls   int
	getCalls    []int64
	createCalls []hedgehog.Input
}

func (f *fakeAPI) List(context.Context) ([]hedgehog.ListItem, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	items := []hedgehog.ListItem{}
	for _, h := range f.rows {
		items = append(items, hedgehog.ListItem{ID: h.ID, Name: h.Name})
	}
	return items, nil
}

func (f *fakeAPI) Get(_ context.Context, id int64) (hedgehog.Hedgehog, error) {
	f.getCalls = append(f.getCalls, id)
	for _, h := range f.rows {
		if h.ID == id {
			return h, nil
		}
	}
	return hedgehog.Hedgehog{}, &hedgehog.NotFoundError{ID: id}
}

func (f *fakeAPI) Create(_ context.Context, in hedgehog.Input) (hedgehog.Hedgehog, error) {
	f.createCalls = append(f.createCalls, in)
	if f.createErr != nil {
		return hedgehog.Hedgehog{}, f.createErr
	}
	h := hedgehog.Hedgehog{
		ID:       int64(len(f.rows) + 1),
		Name:     in.Name,
		Age:      *in.Age,
		Gender:   in.Gender,
		Location: *in.Location,
	}
	f.rows = append(f.rows, h)
	return h, nil
}

var errDial = &hedgehog.NetworkError{Err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}}

var errServer = hedgehog.NewDatabaseError(&client.APIError{Status: 500, Message: "Database error"})

func fixture() *fakeAPI {
	return &fakeAPI{rows: []hedgehog.Hedgehog{
		{ID: 1, Name: "Aino", Age: 2, Gender: hedgehog.GenderFemale, Location: geo.Encode(orb.Point{385000, 6672000})},
		{ID: 2, Name: "Eero", Age: 5, Gender: hedgehog.GenderMale, Location: geo.Encode(orb.Point{460000, 7125000})},
	}}
}

// collect runs cmd and any batched commands, returning the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
