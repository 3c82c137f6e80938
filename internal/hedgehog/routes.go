package hedgehog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes builds the /hedgehog sub-router. createLimit wraps the POST
// route only.
func SetupRoutes(h *Handler, createLimit func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetAllHedgehogs)
	r.Get("/{id}", h.GetHedgehogByID)

	r.Group(func(r chi.Router) {
		if createLimit != nil {
			r.Use(createLimit)
		}
		r.Post("/", h.CreateHedgehog)
	})

	return r
}
