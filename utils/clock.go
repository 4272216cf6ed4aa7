package utils

import (
	"context"
	"time"

	"github.com/benela/benela_backend/appctx"
)

// Now returns the request clock if one was installed, else the wall clock.
func Now(ctx context.Context) time.Time {
	if ctx != nil {
		if clock, ok := appctx.GetClock(ctx); ok {
			return clock()
		}
	}
	return time.Now()
}

func SetClockInContext(ctx context.Context, clock func() time.Time) context.Context {
	return appctx.Set(ctx, appctx.ContextKeyClock, clock)
}

// FixedClock pins Now(ctx) to t.
func FixedClock(ctx context.Context, t time.Time) context.Context {
	return SetClockInContext(ctx, func() time.Time { return t })
}
