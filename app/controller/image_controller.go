package controller

import (
	"net/http"

	"catalogo-productos/catalog"
	"catalogo-productos/logger"
	"catalogo-productos/service"
)

// ImageController serves resized catalog images
type ImageController struct {
	store        *catalog.Store
	imageService *service.ImageService
}

// NewImageController creates a new ImageController
func NewImageController(store *catalog.Store, imageService *service.ImageService) *ImageController {
	return &ImageController{store: store, imageService: imageService}
}

// Thumbnail handles GET /imagenes/miniatura?src=...&size=thumb|medium.
// Only images referenced by the loaded catalog are served.
func (c *ImageController) Thumbnail(w http.ResponseWriter, r *http.Request) {
	src := r.URL.Query().Get("src")
	if src == "" {
		http.Error(w, "src parameter is required", http.StatusBadRequest)
		return
	}
	if !c.store.HasImage(src) {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}

	data, err := c.imageService.Thumbnail(r.Context(), src, r.URL.Query().Get("size"))
	if err != nil {
		logger.Log.Errorf("❌ Thumbnail: Error optimizing %s: %v", src, err)
		http.Error(w, "Failed to load image", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Log.Errorf("❌ Thumbnail: Error writing response: %v", err)
	}
}
