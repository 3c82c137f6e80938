package hedgehog

import (
	"context"
	"errors"
	"sync"

	"github.com/ubigu/hedgehog-map/internal/geo"
)

var validGeometry = geo.Geometry{Type: geo.TypePoint, Coordinates: []float64{385000, 6670000}}

// fakeRepo is an in-memory Repository. Setting err makes every call fail.
type fakeRepo struct {
	mu     sync.Mutex
	rows   []Hedgehog
	nextID int64
	err    error
}

func (f *fakeRepo) List(_ context.Context) ([]ListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var items []ListItem
	for _, h := range f.rows {
		items = append(items, ListItem{ID: h.ID, Name: h.Name})
	}
	return items, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (Hedgehog, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return Hedgehog{}, false, f.err
	}
	for _, h := range f.rows {
		if h.ID == id {
			return h, true, nil
		}
	}
	return Hedgehog{}, false, nil
}

func (f *fakeRepo) Create(_ context.Context, n NewHedgehog) (Hedgehog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return Hedgehog{}, f.err
	}
	f.nextID++
	h := Hedgehog{ID: f.nextID, Name: n.Name, Age: n.Age, Gender: n.Gender, Location: n.Location}
	f.rows = append(f.rows, h)
	return h, nil
}

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
