// Package server assembles the HTTP API: middleware, the hedgehog routes and
// the operational endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
	"github.com/ubigu/hedgehog-map/internal/httputil"
	"github.com/ubigu/hedgehog-map/internal/middleware"
	"github.com/ubigu/hedgehog-map/internal/observability"
	"golang.org/x/time/rate"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Addr                string
	CORSOrigins         []string
	CreateRatePerMinute int
	Clock               clockwork.Clock
	Registry            *prometheus.Registry
}

// Server exposes the hedgehog API plus /health and /metrics.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func New(opts Options, h *hedgehog.Handler, db Pinger, metrics *observability.Metrics, logger *slog.Logger) *Server {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger, opts.Clock, metrics))
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.Get("/", RootHandler)
	r.Get("/health", healthHandler(db, logger))
	if opts.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	var createLimit func(http.Handler) http.Handler
	if opts.CreateRatePerMinute > 0 {
		limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.CreateRatePerMinute)), opts.CreateRatePerMinute)
		var onReject func()
		if metrics != nil {
			onReject = metrics.RateLimited.Inc
		}
		createLimit = middleware.RateLimit(limiter, onReject)
	}

	routes := hedgehog.SetupRoutes(h, createLimit)
	r.Mount("/hedgehog", routes)
	r.Mount("/api/v1/hedgehog", routes)

	return &Server{
		httpServer: &http.Server{
			Addr:              opts.Addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func healthHandler(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.WarnContext(r.Context(), "health check failed", "error", err)
			httputil.WriteError(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains connections within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the router, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
