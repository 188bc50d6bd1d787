package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"folio/internal/httputil"
	"folio/internal/notify"
)

// EventsHandler streams restore notifications over SSE so a live preview can
// swap in the restored content without polling.
type EventsHandler struct {
	bus    *notify.Bus
	logger *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(bus *notify.Bus, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{bus: bus, logger: logger}
}

// StreamRestores streams restore events until the client disconnects
// GET /api/events/restores
func (h *EventsHandler) StreamRestores(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := h.bus.Subscribe(16)
	defer cancel()

	keepalive := time.NewTicker(15 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			// SSE comment line keeps intermediaries from closing the stream
			if _, err := fmt.Fprintf(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case event, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Warn("marshal restore event failed", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: restore\ndata: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
