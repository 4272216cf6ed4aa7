package config

import (
	"os"
	"strings"
)

func envBool(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// ReportCacheEnabled turns on the redis read-through cache for summaries and series.
//
// Set via env:
// - ENABLE_REPORT_CACHE=true
func ReportCacheEnabled() bool {
	return envBool("ENABLE_REPORT_CACHE")
}

// AdminAuthRequired guards the /admin tree (except /admin/login) with a bearer token.
//
// Set via env:
// - ADMIN_AUTH_REQUIRED=true
func AdminAuthRequired() bool {
	return envBool("ADMIN_AUTH_REQUIRED")
}

// RateLimitEnabled enables the redis fixed-window limiter.
//
// Set via env:
// - RATE_LIMIT_ENABLED=true
func RateLimitEnabled() bool {
	return envBool("RATE_LIMIT_ENABLED")
}

func SkipMigrations() bool {
	return envBool("SKIP_MIGRATIONS")
}

func DebugEnabled() bool {
	return envBool("DEBUG")
}
