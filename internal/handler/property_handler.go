package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"propertypulse/internal/middleware"
	"propertypulse/internal/models"
	"propertypulse/internal/service"
)

type PropertiesResponse struct {
	Count      int               `json:"count"`
	Properties []models.Property `json:"properties"`
}

// GetProperties returns every listing, newest first.
func (h *Handlers) GetProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.PropertyService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, PropertiesResponse{
		Count:      len(properties),
		Properties: properties,
	}, http.StatusOK)
}

func (h *Handlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	property, err := h.PropertyService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, property, http.StatusOK)
}

// GetUserProperties returns the listings owned by the given user.
func (h *Handlers) GetUserProperties(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	properties, err := h.PropertyService.ListByOwner(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, properties, http.StatusOK)
}

// CreateProperty handles a multipart listing submission. All images are
// uploaded to the media host before the document is persisted; on success the
// caller is redirected to the new listing's detail page.
func (h *Handlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		writeError(w, "failed to parse form data", http.StatusBadRequest)
		return
	}

	input, err := h.decodePropertyInput(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	uploads := []service.ImageUpload{}
	for _, header := range imageFileHeaders(r) {
		file, err := header.Open()
		if err != nil {
			writeError(w, "failed to read uploaded image", http.StatusBadRequest)
			return
		}
		defer file.Close()

		uploads = append(uploads, service.ImageUpload{
			FileName: header.Filename,
			Content:  file,
			Size:     header.Size,
		})
	}

	property, err := h.PropertyService.Create(r.Context(), sess, input, uploads)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	location := fmt.Sprintf("%s/properties/%s", h.Cfg.SiteURL, property.ID.Hex())
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// UpdateProperty overwrites a listing after the owner guard passes. Images
// are not touched by update.
func (h *Handlers) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		writeError(w, "failed to parse form data", http.StatusBadRequest)
		return
	}

	input, err := h.decodePropertyInput(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.PropertyService.Update(r.Context(), sess, id, input); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, MessageResponse{Message: "property updated"}, http.StatusOK)
}

// DeleteProperty removes a listing after the owner guard passes, cleaning up
// its remote images best-effort first.
func (h *Handlers) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]

	if err := h.PropertyService.Delete(r.Context(), sess, id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, MessageResponse{Message: "property deleted"}, http.StatusOK)
}
