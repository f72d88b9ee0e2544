package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backend selectors.
const (
	BackendLocal     = "local"
	BackendTransient = "transient"
	BackendSupabase  = "supabase"
	BackendS3        = "s3"
)

// Generation engine selectors.
const (
	EngineStability = "stability"
	EngineGemini    = "gemini"
)

// PlaceholderStabilityKey activates the pass-through mock so the whole
// pipeline can run without live upstream access.
const PlaceholderStabilityKey = "your_stable_diffusion_api_key"

// Config holds every environment-derived setting, loaded once at startup and
// passed to each component that needs it.
type Config struct {
	// Server
	Port string

	// Storage
	StorageBackend   string
	UploadDir        string
	TransientDir     string
	ArtifactTTLHours int

	// Generation
	GenerationEngine string

	// Stability API
	StabilityAPIKey string
	StabilityAPIURL string
	StabilityModel  string

	// Gemini API
	GeminiAPIKey string
	GeminiModel  string

	// Supabase
	SupabaseURL            string
	SupabaseServiceKey     string
	SupabaseStorageBaseURL string
	SupabaseBucket         string
	SupabaseRecordsTable   string

	// S3
	AWSRegion string
	S3Bucket  string
	S3Prefix  string
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	ttlHours := 24
	if ttlStr := os.Getenv("ARTIFACT_TTL_HOURS"); ttlStr != "" {
		if parsed, err := strconv.Atoi(ttlStr); err == nil && parsed > 0 {
			ttlHours = parsed
		}
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		StorageBackend:   getEnv("STORAGE_BACKEND", BackendLocal),
		UploadDir:        getEnv("UPLOAD_DIR", filepath.Join("public", "uploads")),
		TransientDir:     getEnv("TRANSIENT_DIR", filepath.Join(os.TempDir(), "uploads")),
		ArtifactTTLHours: ttlHours,

		GenerationEngine: getEnv("GENERATION_ENGINE", EngineStability),

		StabilityAPIKey: getEnv("STABILITY_API_KEY", ""),
		StabilityAPIURL: getEnv("STABILITY_API_URL", "https://api.stability.ai/v2beta/stable-image/generate/sd3"),
		StabilityModel:  getEnv("STABILITY_MODEL", "sd3.5-large-turbo"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-image"),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:     getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBaseURL: getEnv("SUPABASE_STORAGE_BASE_URL", ""),
		SupabaseBucket:         getEnv("SUPABASE_BUCKET", "attachments"),
		SupabaseRecordsTable:   getEnv("SUPABASE_RECORDS_TABLE", "drawing_records"),

		AWSRegion: getEnv("AWS_REGION", ""),
		S3Bucket:  getEnv("S3_BUCKET", ""),
		S3Prefix:  getEnv("S3_PREFIX", "uploads"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Storage: %s", cfg.StorageBackend)
	log.Printf("   Engine: %s", cfg.GenerationEngine)
	if cfg.GenerationEngine == EngineStability {
		log.Printf("   Stability model: %s", cfg.StabilityModel)
	} else {
		log.Printf("   Gemini model: %s", cfg.GeminiModel)
	}

	return cfg, nil
}

// validate covers settings whose absence would only surface deep inside a
// request. The upstream credential is deliberately NOT required here: the
// generation client reports the missing credential per call, and the
// orchestrator degrades that into a fallback result instead of refusing to
// boot.
func (c *Config) validate() error {
	switch c.StorageBackend {
	case BackendLocal, BackendTransient:
	case BackendSupabase:
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required for the supabase backend")
		}
		if c.SupabaseServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required for the supabase backend")
		}
		if c.SupabaseStorageBaseURL == "" {
			return fmt.Errorf("SUPABASE_STORAGE_BASE_URL is required for the supabase backend")
		}
	case BackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND: %s", c.StorageBackend)
	}

	switch c.GenerationEngine {
	case EngineStability, EngineGemini:
	default:
		return fmt.Errorf("unknown GENERATION_ENGINE: %s", c.GenerationEngine)
	}

	return nil
}

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
