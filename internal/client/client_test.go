package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ubigu/hedgehog-map/internal/geo"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hedgehog", r.URL.Path)
		_, _ = w.Write([]byte(`{"hedgehogs":[{"id":1,"name":"Aino"},{"id":2,"name":"Eero"}]}`))
	})

	items, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []hedgehog.ListItem{{ID: 1, Name: "Aino"}, {ID: 2, Name: "Eero"}}, items)
}

func TestGet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hedgehog/7" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Not Found","message":"Hedgehog with ID 8 not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"hedgehog":{"id":7,"name":"Helmi","age":4,"gender":"female","location":{"type":"Point","coordinates":[460000,7125000]}}}`))
	})

	h, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Helmi", h.Name)
	assert.Equal(t, geo.Encode(geo.DefaultCenter), h.Location)

	_, err = c.Get(context.Background(), 8)
	f := hedgehog.Classify(err)
	assert.Equal(t, hedgehog.KindNotFound, f.Kind)
	assert.Equal(t, "Hedgehog with ID 8 not found", f.Message)
}

func TestCreate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"hedgehog":{"id":3,"name":"Testi Siili","age":3,"gender":"male","location":{"type":"Point","coordinates":[385000,6672000]}},"message":"Hedgehog created successfully"}`))
	})

	age := 3
	loc := geo.Encode(geo.DefaultCenter)
	h, err := c.Create(context.Background(), hedgehog.Input{Name: "Testi Siili", Age: &age, Gender: hedgehog.GenderMale, Location: &loc})
	require.NoError(t, err)
	assert.EqualValues(t, 3, h.ID)
}

func TestCreate_ValidationFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Bad Request","message":"Invalid hedgehog data","details":[{"path":["age"],"code":"too_big","message":"Number must be less than or equal to 15"}]}`))
	})

	_, err := c.Create(context.Background(), hedgehog.Input{})
	var valErr *hedgehog.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Invalid hedgehog data", valErr.Message)
	require.Len(t, valErr.Violations, 1)
	assert.Equal(t, []string{"age"}, valErr.Violations[0].Path)

	msg, ok := ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Invalid hedgehog data", msg)
}

func TestServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error","message":"Database error"}`))
	})

	_, err := c.List(context.Background())
	assert.Equal(t, hedgehog.KindPersistence, hedgehog.Classify(err).Kind)
	msg, ok := ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Database error", msg)
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := New(srv.URL)
	srv.Close()

	_, err := c.List(context.Background())
	assert.Equal(t, hedgehog.KindNetwork, hedgehog.Classify(err).Kind)
	_, ok := ServerMessage(err)
	assert.False(t, ok)
}
