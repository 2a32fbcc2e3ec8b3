package authstate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vertextrade/storefront/pkg/backend"
)

type contextKey struct{}

// WithStore attaches s to ctx.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the store governing ctx.
func FromContext(ctx context.Context) (*Store, error) {
	s, ok := ctx.Value(contextKey{}).(*Store)
	if !ok || s == nil {
		return nil, ErrNoStore
	}
	return s, nil
}

// Current reads the session from the store governing ctx. Without a store
// it fails with ErrNoStore rather than reporting "signed out".
func Current(ctx context.Context) (*backend.Session, error) {
	s, err := FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.Session()
}

// Middleware puts s into every request context.
func Middleware(s *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithStore(r.Context(), s)))
		})
	}
}

// LoggerExtractor adds the signed-in user's id to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		session, err := Current(ctx)
		if err != nil || session.UserID() == "" {
			return slog.Attr{}, false
		}
		return slog.String("user_id", session.UserID()), true
	}
}
