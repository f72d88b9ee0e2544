package generate

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
	r.HandleFunc("/api/generate", h.HandleGenerate).Methods("POST", "OPTIONS")
	log.Println("✅ Generate routes registered")
}

// HandleGenerate - POST /api/generate
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request format"})
		return
	}

	resp, err := h.service.HandleSubmission(r.Context(), &req)
	if err != nil {
		log.Printf("❌ Error generating image: %v", err)
		w.WriteHeader(apperrors.HTTPStatus(err))
		if apperrors.KindOf(err) == apperrors.KindValidation {
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		} else {
			json.NewEncoder(w).Encode(map[string]string{"error": "Failed to generate image"})
		}
		return
	}

	json.NewEncoder(w).Encode(resp)
}
