package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"doodle-magic-server/modules/common/config"
	"doodle-magic-server/modules/common/janitor"
	"doodle-magic-server/modules/common/storage"
	"doodle-magic-server/modules/generate"
	"doodle-magic-server/modules/generation"
	"doodle-magic-server/modules/images"
	"doodle-magic-server/modules/realtime"
	"doodle-magic-server/modules/results"
)

// CORS 헤더 추가
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// 헬스 체크 엔드포인트
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "doodle-magic-server",
	})
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize storage: %v", err)
	}

	engine, err := generation.NewEngine(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize generation engine: %v", err)
	}

	hub := realtime.NewHub()

	// 라우터 설정
	r := mux.NewRouter()
	r.Use(enableCORS)

	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/ws", hub.HandleWebSocket)

	generate.NewHandler(generate.NewService(store, engine, hub)).RegisterRoutes(r)
	results.NewHandler(results.NewService(store)).RegisterRoutes(r)
	images.NewHandler(store).RegisterRoutes(r)

	// Durable backends keep artifacts indefinitely; only ephemeral storage
	// gets a retention sweep.
	if cfg.StorageBackend == config.BackendTransient {
		j := janitor.New(cfg.TransientDir, time.Duration(cfg.ArtifactTTLHours)*time.Hour)
		if err := j.Start(); err != nil {
			log.Fatalf("❌ Failed to start janitor: %v", err)
		}
	}

	// Durable local storage doubles as static content.
	if cfg.StorageBackend == config.BackendLocal {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	log.Printf("🚀 Doodle Magic Server starting on port %s", cfg.Port)
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)
	log.Printf("🎨 Generate: POST http://localhost:%s/api/generate", cfg.Port)
	log.Printf("📡 Events: ws://localhost:%s/ws", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
