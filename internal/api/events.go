package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tranvh/menuboard/internal/bus"
)

// EventsHandler streams mutation broadcasts to connected clients over
// Server-Sent Events. Clients treat every event as a trigger to
// reconcile by re-fetching, except foodsReordered, which carries the
// authoritative ordering. A reconnecting client must re-fetch the full
// collection; missed events are not replayed.
type EventsHandler struct {
	Bus     *bus.Bus
	Version string
}

// Stream handles GET /api/events.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		jsonError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	id, ch := h.Bus.Subscribe()
	defer h.Bus.Unsubscribe(id)

	// Announce the running version immediately so a client that
	// reconnects after a deploy knows to discard its local state.
	writeEvent(w, bus.Event{Name: bus.EventAppVersion, Data: h.Version})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-ch:
			if !open {
				return
			}
			if err := writeEvent(w, ev); err != nil {
				slog.Warn("dropping event stream client", "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

// writeEvent writes one SSE frame: the event name and its JSON payload.
func writeEvent(w http.ResponseWriter, ev bus.Event) error {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		return fmt.Errorf("encoding event %s: %w", ev.Name, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, data)
	return err
}
