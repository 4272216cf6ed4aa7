package config

import (
	"os"
	"strings"
)

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func AppName() string {
	return envOr("APP_NAME", "Benela AI")
}

func AppEnv() string {
	return envOr("APP_ENV", "development")
}

// ListenPort prefers API_PORT, then PORT (Cloud Run), then 8000.
func ListenPort() string {
	if v := os.Getenv("API_PORT"); v != "" {
		return v
	}
	return envOr("PORT", "8000")
}

func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func GeminiModel() string {
	return envOr("GEMINI_MODEL", "gemini-2.0-flash-lite")
}

func DefaultPhoneRegion() string {
	return strings.ToUpper(envOr("DEFAULT_PHONE_REGION", "US"))
}
