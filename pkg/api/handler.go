// Package api exposes the roster over HTTP for the panel frontend. The
// panel polls the read endpoints; the write endpoints back the admin
// screens.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/central-patrimonium/roster/pkg/db"
)

// Handler owns the router and the dependencies every endpoint needs
type Handler struct {
	database db.Database
	logger   *zap.Logger
	validate *validator.Validate
	loc      *time.Location
	now      func() time.Time

	Mux *chi.Mux
}

// NewHandler creates the HTTP handler. loc is the monitoring centre's
// timezone; resolution always runs against local wall-clock time there.
func NewHandler(database db.Database, logger *zap.Logger, loc *time.Location) *Handler {
	return &Handler{
		database: database,
		logger:   logger,
		validate: validator.New(),
		loc:      loc,
		now:      time.Now,

		Mux: chi.NewRouter(),
	}
}

// RegisterRoutes wires every endpoint onto the mux
func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestLogger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/api/v1", func(r chi.Router) {
		r.Get("/board", h.GetBoard)
		r.Get("/leader", h.GetLeader)
		r.Get("/weekend", h.GetWeekend)
		r.Get("/statuses", h.ListStatuses)

		r.Route("/operators", func(r chi.Router) {
			r.Get("/", h.ListOperators)
			r.Post("/", h.CreateOperator)
			r.Route("/{operatorID}", func(r chi.Router) {
				r.Put("/", h.UpdateOperator)
				r.Delete("/", h.DeleteOperator)
				r.Put("/status", h.SetStatus)
				r.Get("/periods", h.ListFocusPeriods)
				r.Post("/periods", h.CreateFocusPeriod)
			})
		})

		r.Delete("/periods/{periodID}", h.DeleteFocusPeriod)

		r.Route("/allocations", func(r chi.Router) {
			r.Post("/", h.CreateAllocation)
			r.Route("/{allocationID}", func(r chi.Router) {
				r.Delete("/", h.DeleteAllocation)
				r.Post("/periods", h.CreateAllocationPeriod)
			})
		})

		r.Route("/rotation", func(r chi.Router) {
			r.Get("/", h.GetRotationConfig)
			r.Put("/", h.SaveRotationConfig)
		})
	})
}

// requestLogger logs one line per request at debug level
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// recoverer converts panics into 500 responses instead of dropped
// connections
func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("handler panic",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path))
				h.respondError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
