package api

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tranvh/menuboard/internal/images"
	"github.com/tranvh/menuboard/internal/imaging"
)

// UploadHandler accepts dish images, processes them, and stores them on
// disk. Uploading is independent of creating the food record: the
// response carries the imageUrl and hash the create call needs.
type UploadHandler struct {
	Images *images.Store
}

// maxUploadSize caps incoming image uploads.
const maxUploadSize = 5 << 20

// Upload handles POST /api/upload.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	foodType := strings.TrimSpace(r.FormValue("type"))
	if foodType == "" {
		jsonError(w, http.StatusBadRequest, "type required")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Stored images are always JPEG regardless of the upload format.
	name := header.Filename
	ext := filepath.Ext(name)
	name = strings.TrimSuffix(filepath.Base(name), ext) + ".jpg"

	imageURL, err := h.Images.Save(foodType, name, result.Data)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{
		"imageUrl": imageURL,
		"hash":     result.Hash,
	})
}
