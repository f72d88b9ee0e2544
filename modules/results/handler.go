package results

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"doodle-magic-server/modules/common/apperrors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes - 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/results/{id}", h.HandleGetResult).Methods("GET", "OPTIONS")
	log.Println("✅ Results routes registered")
}

// HandleGetResult - GET /api/results/{id}
func (h *Handler) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "No ID provided"})
		return
	}

	result, err := h.service.GetResult(r.Context(), id)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Results not found"})
			return
		}
		log.Printf("❌ Error fetching results: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to fetch results"})
		return
	}

	json.NewEncoder(w).Encode(result)
}
