package auth

import "context"

type contextKey string

const userIDContextKey contextKey = "flexora-user-id"

// ContextWithUserID marks the request context as authenticated for the
// given user. Set by the auth middleware after the session token check.
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the authenticated user ID, or false when the
// request did not go through the auth middleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	return userID, ok
}
