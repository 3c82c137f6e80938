package hedgehog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ubigu/hedgehog-map/internal/httputil"
)

// MaxBodyBytes bounds the size of a creation request.
const MaxBodyBytes = 1 << 20

// CreatedCounter is notified after each successful insert.
type CreatedCounter interface {
	Inc()
}

type Handler struct {
	svc     *Service
	logger  *slog.Logger
	created CreatedCounter
}

func NewHandler(svc *Service, logger *slog.Logger, created CreatedCounter) *Handler {
	return &Handler{svc: svc, logger: logger, created: created}
}

func (h *Handler) GetAllHedgehogs(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.GetAllHedgehogs(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"hedgehogs": items})
}

func (h *Handler) GetHedgehogByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "ID must be a number")
		return
	}

	hh, found, err := h.svc.GetHedgehogByID(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if !found {
		httputil.WriteError(w, http.StatusNotFound, (&NotFoundError{ID: id}).Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"hedgehog": hh})
}

func (h *Handler) CreateHedgehog(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		httputil.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in, violations := ParseInput(body)
	if len(violations) > 0 {
		httputil.WriteErrorDetails(w, http.StatusBadRequest, "Invalid hedgehog data", violations)
		return
	}

	created, err := h.svc.CreateHedgehog(r.Context(), in)
	if err != nil {
		var valErr *ValidationError
		if errors.As(err, &valErr) {
			httputil.WriteErrorDetails(w, http.StatusBadRequest, valErr.Message, valErr.Violations)
			return
		}
		h.internalError(w, r, err)
		return
	}
	if h.created != nil {
		h.created.Inc()
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"hedgehog": created,
		"message":  "Hedgehog created successfully",
	})
}

// internalError logs the diagnostic and answers with the generic message.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	httputil.WriteError(w, http.StatusInternalServerError, Classify(err).Message)
}
