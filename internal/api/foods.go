package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tranvh/menuboard/internal/store"
)

// FoodsHandler handles the food collection endpoints.
type FoodsHandler struct {
	Store *store.Store
}

type createFoodRequest struct {
	ImageURL    string   `json:"imageUrl"`
	Type        string   `json:"type"`
	Hash        string   `json:"hash"`
	LevelAccess []string `json:"levelAccess"`
}

type updateStatusRequest struct {
	NewStatus string `json:"newStatus"`
}

type reorderRequest struct {
	OrderedIDs []int `json:"orderedIds"`
}

type levelsRequest struct {
	Type        string   `json:"type"`
	LevelAccess []string `json:"levelAccess"`
}

// List handles GET /api/foods. Public: the customer display consumes it.
func (h *FoodsHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Store.Foods())
}

// Create handles POST /api/foods.
func (h *FoodsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFoodRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	food, err := h.Store.CreateFood(req.ImageURL, req.Type, req.Hash, req.LevelAccess)
	switch {
	case errors.Is(err, store.ErrMissingField):
		jsonError(w, http.StatusBadRequest, "imageUrl, type and hash required")
		return
	case errors.Is(err, store.ErrDuplicate):
		// Distinct status so clients can show "already exists".
		jsonError(w, http.StatusConflict, "food already exists in this category")
		return
	case err != nil:
		jsonError(w, http.StatusInternalServerError, "failed to create food")
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]any{"success": true, "food": food})
}

// UpdateStatus handles POST /api/foods/{id}/status. The update cascades
// to every food sharing the target's image.
func (h *FoodsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid food id")
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := GetClaims(r.Context())
	by, role := "unknown", "unknown"
	if claims != nil {
		by, role = claims.Username, claims.Role
	}

	updated, err := h.Store.UpdateStatus(id, req.NewStatus, by, role)
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "food not found")
		return
	case errors.Is(err, store.ErrInvalidStatus):
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	case err != nil:
		jsonError(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"success": true, "updatedFoods": updated})
}

// Delete handles DELETE /api/foods/{id}.
func (h *FoodsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid food id")
		return
	}

	err = h.Store.DeleteFood(id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "food not found")
		return
	case err != nil:
		jsonError(w, http.StatusInternalServerError, "failed to delete food")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}

// Reorder handles POST /api/foods/reorder.
func (h *FoodsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "orderedIds must be an array")
		return
	}

	err := h.Store.Reorder(req.OrderedIDs)
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		jsonError(w, http.StatusBadRequest, "orderedIds contains an unknown id")
		return
	case err != nil:
		jsonError(w, http.StatusInternalServerError, "failed to reorder foods")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}

// ApplyLevels handles POST /api/foods/levels: sets the access levels of
// every food in a category and stores them as the registry default.
func (h *FoodsHandler) ApplyLevels(w http.ResponseWriter, r *http.Request) {
	var req levelsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, _, err := h.Store.ApplyLevelsToType(req.Type, req.LevelAccess)
	switch {
	case errors.Is(err, store.ErrMissingField):
		jsonError(w, http.StatusBadRequest, "type required")
		return
	case err != nil:
		jsonError(w, http.StatusInternalServerError, "failed to update levels")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"success": true, "count": count})
}
