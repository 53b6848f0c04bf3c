package ctxutil

import "context"

type ctxKey string

const (
	adminKey     ctxKey = "admin"
	requestIDKey ctxKey = "request_id"
)

// WithAdmin stores the authenticated admin's username in the context.
func WithAdmin(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, adminKey, username)
}

// AdminFromCtx extracts the admin username from the context.
// Returns "" and false if the value is missing, empty, or wrong type.
func AdminFromCtx(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(adminKey).(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// IsAdminCtx reports whether the request was authenticated as admin.
func IsAdminCtx(ctx context.Context) bool {
	_, ok := AdminFromCtx(ctx)
	return ok
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
