package api

import (
	"errors"
	"net/http"

	"github.com/tranvh/menuboard/internal/store"
)

// MenuLevelsHandler handles the per-category default access levels.
type MenuLevelsHandler struct {
	Store *store.Store
}

// Get handles GET /api/menu-levels.
func (h *MenuLevelsHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Store.MenuLevels())
}

// Set handles POST /api/menu-levels.
func (h *MenuLevelsHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req levelsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.Store.SetMenuLevels(req.Type, req.LevelAccess)
	switch {
	case errors.Is(err, store.ErrMissingField):
		jsonError(w, http.StatusBadRequest, "type required")
		return
	case err != nil:
		jsonError(w, http.StatusInternalServerError, "failed to save menu levels")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}
