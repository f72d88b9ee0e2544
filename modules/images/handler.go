package images

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"doodle-magic-server/modules/common/apperrors"
	"doodle-magic-server/modules/common/imaging"
	"doodle-magic-server/modules/common/storage"
)

// Handler serves raw artifact bytes. This route is what transient-backend
// locators point at, but it works against every backend. Optional query
// parameters: w=<px> for a proportional thumbnail, format=webp for a lossy
// re-encode.
type Handler struct {
	store storage.Store
}

func NewHandler(store storage.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes - 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/images/{id}/{filename}", h.HandleGetImage).Methods("GET")
	log.Println("✅ Images routes registered")
}

// HandleGetImage - GET /api/images/{id}/{filename}
func (h *Handler) HandleGetImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	filename := vars["filename"]

	if id == "" || filename == "" {
		http.Error(w, "Missing id or filename", http.StatusBadRequest)
		return
	}

	data, err := h.store.GetFile(r.Context(), id, filename)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			log.Printf("❌ Image not found: %s/%s", id, filename)
			http.Error(w, "Image not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Error serving image: %v", err)
		http.Error(w, "Failed to read image", http.StatusInternalServerError)
		return
	}

	contentType := imaging.ContentTypeFor(filename)

	if widthStr := r.URL.Query().Get("w"); widthStr != "" {
		width, err := strconv.Atoi(widthStr)
		if err != nil || width <= 0 {
			http.Error(w, "Invalid width parameter", http.StatusBadRequest)
			return
		}
		resized, err := imaging.Thumbnail(data, width)
		if err != nil {
			log.Printf("⚠️ Thumbnail failed for %s/%s: %v", id, filename, err)
		} else {
			data = resized
			contentType = "image/png"
		}
	}

	if r.URL.Query().Get("format") == "webp" {
		converted, err := imaging.ConvertToWebP(data, 80.0)
		if err != nil {
			log.Printf("⚠️ WebP conversion failed for %s/%s: %v", id, filename, err)
		} else {
			data = converted
			contentType = "image/webp"
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}
