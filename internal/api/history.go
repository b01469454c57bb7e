package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tranvh/menuboard/internal/store"
)

// HistoryHandler handles the status-change audit trail.
type HistoryHandler struct {
	Store *store.Store
}

// Query handles GET /api/status-history. Malformed date filters mean
// "no bound" rather than an error.
func (h *HistoryHandler) Query(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.HistoryFilter{
		After:      parseTime(q.Get("from")),
		Before:     parseTime(q.Get("to")),
		By:         q.Get("user"),
		Type:       q.Get("type"),
		FromStatus: q.Get("fromStatus"),
		ToStatus:   q.Get("toStatus"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}

	jsonResponse(w, http.StatusOK, h.Store.History(filter))
}

// parseTime accepts RFC 3339 timestamps or bare dates; anything else
// yields the zero time (no bound).
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
