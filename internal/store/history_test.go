package store

import (
	"testing"
	"time"

	"github.com/tranvh/menuboard/internal/model"
)

func TestHistoryCap(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.mu.Lock()
	for i := 0; i < maxHistory; i++ {
		s.history = append(s.history, model.Entry{ID: float64(i), By: "seed"})
	}
	s.mu.Unlock()

	s.mu.Lock()
	s.appendHistoryLocked(model.Entry{By: "overflow"})
	s.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) != maxHistory {
		t.Fatalf("expected history capped at %d, got %d", maxHistory, len(s.history))
	}
	// The oldest entry (ID 0) is evicted, the newest survives.
	if s.history[0].ID == 0 {
		t.Error("expected oldest entry to be evicted")
	}
	if s.history[len(s.history)-1].By != "overflow" {
		t.Error("expected newest entry at the end")
	}
}

func TestHistoryQueryFilters(t *testing.T) {
	s, _, _ := newTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []model.Entry{
		{ID: 1, At: base, By: "Admin", Type: "SNACK MENU", From: "Available", To: "Sold Out"},
		{ID: 2, At: base.Add(time.Hour), By: "kitchen", Type: "CLUB MENU", From: "Sold Out", To: "Available"},
		{ID: 3, At: base.Add(2 * time.Hour), By: "kitchen", Type: "SNACK MENU", From: "Available", To: "Sold Out"},
	}
	s.mu.Lock()
	s.history = entries
	s.mu.Unlock()

	// Newest first, no filter.
	all := s.History(HistoryFilter{})
	if len(all) != 3 || all[0].ID != 3 || all[2].ID != 1 {
		t.Errorf("expected newest-first [3 2 1], got %v", ids(all))
	}

	// Case-insensitive substring on actor.
	byAdmin := s.History(HistoryFilter{By: "ADM"})
	if len(byAdmin) != 1 || byAdmin[0].ID != 1 {
		t.Errorf("actor filter: got %v", ids(byAdmin))
	}

	// Case-insensitive substring on category.
	snack := s.History(HistoryFilter{Type: "snack"})
	if len(snack) != 2 {
		t.Errorf("type filter: got %v", ids(snack))
	}

	// Exact status matches.
	toSoldOut := s.History(HistoryFilter{ToStatus: "Sold Out"})
	if len(toSoldOut) != 2 {
		t.Errorf("toStatus filter: got %v", ids(toSoldOut))
	}
	fromSoldOut := s.History(HistoryFilter{FromStatus: "Sold Out"})
	if len(fromSoldOut) != 1 || fromSoldOut[0].ID != 2 {
		t.Errorf("fromStatus filter: got %v", ids(fromSoldOut))
	}

	// Inclusive time bounds.
	window := s.History(HistoryFilter{After: base.Add(time.Hour), Before: base.Add(time.Hour)})
	if len(window) != 1 || window[0].ID != 2 {
		t.Errorf("time window: got %v", ids(window))
	}

	// Limit truncates after sorting.
	limited := s.History(HistoryFilter{Limit: 2})
	if len(limited) != 2 || limited[0].ID != 3 {
		t.Errorf("limit: got %v", ids(limited))
	}
}

func ids(entries []model.Entry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
