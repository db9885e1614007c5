package handlers

import (
	"net/http"

	"github.com/muesli/termenv"

	"tasklist/internal/tasklist"
)

// Home writes the task table as plain text, without color.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	l, err := h.loadList(r)
	if err != nil {
		h.respondServerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for line := range l.Render(tasklist.NewPalette(termenv.Ascii)) {
		if _, err := w.Write([]byte(line + "\n")); err != nil {
			h.logger.Warn("writing table failed", "error", err)
			return
		}
	}
}

// ListTasks returns every task in the persisted shape.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	l, err := h.loadList(r)
	if err != nil {
		h.respondServerError(w, err)
		return
	}
	h.respondJSON(w, l.Tasks())
}

// GetTask returns the task at a 1-based position.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	l, err := h.loadList(r)
	if err != nil {
		h.respondServerError(w, err)
		return
	}

	index, err := parseIndex(r, l)
	if err != nil {
		respondError(w, indexStatus(err), err.Error())
		return
	}

	task, err := l.Get(index)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	h.respondJSON(w, task)
}
