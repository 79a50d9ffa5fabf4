package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Debug           bool
	CORSAllowOrigin []string
	UploadDir       string
	ProjectID       string
	StorageBucket   string
	VertexRegion    string
	GeminiModel     string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	projectID := getEnv("FIREBASE_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT"))

	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" && projectID != "" {
		bucket = projectID + ".appspot.com"
	}

	return Config{
		Port:            getEnv("PORT", "8000"),
		Debug:           parseBool(getEnv("DEBUG", "false")),
		CORSAllowOrigin: splitAndTrim(getEnv("ALLOWED_ORIGINS", "*")),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		ProjectID:       projectID,
		StorageBucket:   bucket,
		VertexRegion:    getEnv("VERTEX_REGION", "us-central1"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "t":
		return true
	default:
		return false
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
