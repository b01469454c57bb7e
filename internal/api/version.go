package api

import (
	"net/http"

	"github.com/tranvh/menuboard/internal/bus"
)

// VersionHandler exposes the running build version. Broadcasting it is
// the blunt cache-invalidation instrument: clients that see a version
// differing from the one they last observed reload fully.
type VersionHandler struct {
	Bus     *bus.Bus
	Version string
}

// Get handles GET /api/version.
func (h *VersionHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"version": h.Version})
}

// Broadcast handles POST /api/broadcast-version: re-announces the
// version to every connected client, forcing a full reload.
func (h *VersionHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	h.Bus.Publish(bus.EventAppVersion, h.Version)
	jsonResponse(w, http.StatusOK, map[string]any{"ok": true})
}
