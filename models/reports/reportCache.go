package reports

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("benela/reports")

func reportCacheEnabled() bool {
	return config.ReportCacheEnabled() && config.GetRedisDB() != nil
}

func reportCacheTTL() time.Duration {
	// Env: REPORT_CACHE_TTL_SECONDS (default 120s)
	ttl := 120
	if v := strings.TrimSpace(os.Getenv("REPORT_CACHE_TTL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}
	return time.Duration(ttl) * time.Second
}

func reportSlowMs() int64 {
	// Env: REPORT_SLOW_MS (default 500ms)
	ms := int64(500)
	if v := strings.TrimSpace(os.Getenv("REPORT_SLOW_MS")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			ms = n
		}
	}
	return ms
}

func logSlowReport(ctx context.Context, name string, started time.Time, extra map[string]any) {
	d := time.Since(started)
	if d.Milliseconds() < reportSlowMs() {
		return
	}
	cid, _ := utils.GetCorrelationIdFromContext(ctx)
	config.GetLogger().WithFields(logrus.Fields{
		"report":         name,
		"ms":             d.Milliseconds(),
		"correlation_id": cid,
		"extra":          extra,
	}).Warn("slow_report")
}

func cacheGet[T any](key string, dest *T) (bool, error) {
	return config.GetRedisObject(key, dest)
}

func cacheSet(key string, obj any, ttl time.Duration) error {
	return config.SetRedisObject(key, obj, ttl)
}

// monthAnchor keys cache entries by the current bucket month so a cached
// series is never served across a month boundary.
func monthAnchor(ctx context.Context) string {
	return utils.StartOfMonth(utils.Now(ctx)).Format("2006-01")
}

// runReport wraps a report computation with a span, slow logging and the
// optional redis read-through cache. An empty cacheKey skips the cache. Cache
// failures fall through to compute. A cached result is not invalidated by
// writes and can lag the store by up to REPORT_CACHE_TTL_SECONDS.
func runReport[T any](ctx context.Context, name string, cacheKey string, attrs []attribute.KeyValue, compute func(context.Context) (T, error)) (T, error) {
	ctx, span := tracer.Start(ctx, "reports."+name, trace.WithAttributes(attrs...))
	defer span.End()

	started := time.Now()
	defer logSlowReport(ctx, name, started, map[string]any{"cache_key": cacheKey})

	useCache := cacheKey != "" && reportCacheEnabled()
	if useCache {
		var cached T
		hit, err := cacheGet(cacheKey, &cached)
		if err != nil {
			config.LogError(config.GetLogger(), "reports", name, "cache get", cacheKey, err)
		} else if hit {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return cached, nil
		}
	}

	result, err := compute(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		config.LogError(config.GetLogger(), "reports", name, "compute", cacheKey, err)
		var zero T
		return zero, err
	}

	if useCache {
		if err := cacheSet(cacheKey, result, reportCacheTTL()); err != nil {
			config.LogError(config.GetLogger(), "reports", name, "cache set", cacheKey, err)
		}
	}
	return result, nil
}
