package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tasklist/internal/clock"
	"tasklist/internal/store"
	"tasklist/internal/tasklist"
)

// Handlers serves a read-only view of the stored task list.
type Handlers struct {
	store  store.Store
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new Handlers instance.
func New(s store.Store, c clock.Clock, logger *slog.Logger) *Handlers {
	return &Handlers{
		store:  s,
		clock:  c,
		logger: logger.With("component", "http"),
	}
}

// Routes builds the router. Every route is a GET; the view never writes.
func (h *Handlers) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(h.logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/", h.Home)
	r.Get("/api/tasks", h.ListTasks)
	r.Get("/api/tasks/{n}", h.GetTask)

	return r
}

// loadList reads the current list from storage for a single request.
func (h *Handlers) loadList(r *http.Request) (*tasklist.List, error) {
	tasks, err := h.store.Load(r.Context())
	if err != nil {
		return nil, err
	}
	return tasklist.New(h.clock, tasks), nil
}

// parseIndex reads the 1-based task number from the URL.
func parseIndex(r *http.Request, l *tasklist.List) (int, error) {
	return l.ParseIndex(chi.URLParam(r, "n"))
}

func indexStatus(err error) int {
	if errors.Is(err, tasklist.ErrInvalidIndex) {
		return http.StatusBadRequest
	}
	return http.StatusNotFound
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	w.Write([]byte(message))
}

func (h *Handlers) respondServerError(w http.ResponseWriter, err error) {
	h.logger.Error("internal server error", "error", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

func (h *Handlers) respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("writing response failed", "error", err)
	}
}
