package services

import "context"

// AuthProvider reports the currently authenticated user, if any.
type AuthProvider interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

type ctxKey int

const userIDKey ctxKey = 0

// WithUserID returns a context carrying the authenticated user id.
// Controllers call it with the id the JWT middleware verified.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ContextAuth resolves the user from the request context.
type ContextAuth struct{}

func (ContextAuth) CurrentUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
