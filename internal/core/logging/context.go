package logging

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	bookIDKey    contextKey = "book_id"
)

// WithRequestID adds a request correlation ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithBookID adds a book ID to the context.
func WithBookID(ctx context.Context, bookID string) context.Context {
	return context.WithValue(ctx, bookIDKey, bookID)
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetBookID retrieves the book ID from the context.
// Returns empty string if not present.
func GetBookID(ctx context.Context) string {
	if id, ok := ctx.Value(bookIDKey).(string); ok {
		return id
	}
	return ""
}
