package store

import (
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/tranvh/menuboard/internal/bus"
	"github.com/tranvh/menuboard/internal/model"
)

// maxHistory bounds the audit trail; the oldest entries are evicted
// first.
const maxHistory = 5000

// defaultHistoryLimit is the query result cap when none is given.
const defaultHistoryLimit = 200

// HistoryFilter narrows a history query. Zero times mean no bound;
// By and Type match case-insensitive substrings; From/To status match
// exactly when non-empty.
type HistoryFilter struct {
	After      time.Time
	Before     time.Time
	By         string
	Type       string
	FromStatus string
	ToStatus   string
	Limit      int
}

// History returns matching entries, newest first, capped at the filter
// limit (default 200). An empty result is not an error.
func (s *Store) History(filter HistoryFilter) []model.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []model.Entry
	for _, e := range s.history {
		if !filter.After.IsZero() && e.At.Before(filter.After) {
			continue
		}
		if !filter.Before.IsZero() && e.At.After(filter.Before) {
			continue
		}
		if filter.By != "" && !strings.Contains(strings.ToLower(e.By), strings.ToLower(filter.By)) {
			continue
		}
		if filter.Type != "" && !strings.Contains(strings.ToLower(e.Type), strings.ToLower(filter.Type)) {
			continue
		}
		if filter.FromStatus != "" && e.From != filter.FromStatus {
			continue
		}
		if filter.ToStatus != "" && e.To != filter.ToStatus {
			continue
		}
		matched = append(matched, e)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].At.After(matched[j].At)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// appendHistoryLocked stamps, appends, and persists a history entry,
// evicting the oldest entries past the cap. History is derived state:
// a failed save is logged but never fails the parent mutation.
// Caller holds s.mu.
func (s *Store) appendHistoryLocked(entry model.Entry) {
	entry.ID = float64(time.Now().UnixMilli()) + rand.Float64()
	entry.At = time.Now().UTC()

	s.history = append(s.history, entry)
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}

	if err := s.backend.SaveHistory(s.history); err != nil {
		slog.Warn("could not save status history", "error", err)
	}

	s.pub.Publish(bus.EventStatusHistoryAdded, entry)
}
