package internal

import (
	"context"
)

type ctxKey string

const contextUserKey ctxKey = "userID"

// ContextWithUserID stamps the authenticated subject on the request
// context. The auth middleware is the only writer.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextUserKey, userID)
}

// UserIDFromContext reads the authenticated subject back, returning the
// empty string for unauthenticated contexts.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if userID, ok := ctx.Value(contextUserKey).(string); ok {
		return userID
	}
	return ""
}
