package utils

import (
	"context"

	"github.com/benela/benela_backend/appctx"
)

var (
	ContextKeyToken         = appctx.ContextKeyToken
	ContextKeyAdminId       = appctx.ContextKeyAdminId
	ContextKeyAdminEmail    = appctx.ContextKeyAdminEmail
	ContextKeyCorrelationId = appctx.ContextKeyCorrelationId
)

func GetAdminIdFromContext(ctx context.Context) (int, bool) {
	return appctx.GetInt(ctx, ContextKeyAdminId)
}

func GetAdminEmailFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyAdminEmail)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func SetTokenInContext(ctx context.Context, token string) context.Context {
	return appctx.Set(ctx, ContextKeyToken, token)
}

func SetAdminIdInContext(ctx context.Context, adminId int) context.Context {
	return appctx.Set(ctx, ContextKeyAdminId, adminId)
}

func SetAdminEmailInContext(ctx context.Context, email string) context.Context {
	return appctx.Set(ctx, ContextKeyAdminEmail, email)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}

// ActorFromContext names whoever is acting on behalf of the request for the
// activity log. Unauthenticated calls are attributed to "system".
func ActorFromContext(ctx context.Context) string {
	if email, ok := GetAdminEmailFromContext(ctx); ok && email != "" {
		return email
	}
	return "system"
}
