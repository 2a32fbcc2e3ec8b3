package environment

import (
	"context"
	"strings"
)

// Environment represents application environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse maps a configured name, including the short forms "dev", "stage"
// and "prod", to an Environment. Unknown names resolve to Development.
func Parse(name string) Environment {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	default:
		return Development
	}
}

type contextKey struct{}

// WithContext adds environment to context.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves environment from context. Missing values resolve to Development.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return Development
	}
	if env, ok := ctx.Value(contextKey{}).(Environment); ok {
		return env
	}
	return Development
}

// IsProduction reports whether the context carries the production environment.
func IsProduction(ctx context.Context) bool {
	return FromContext(ctx) == Production
}

// IsDevelopment reports whether the context carries the development environment.
func IsDevelopment(ctx context.Context) bool {
	return FromContext(ctx) == Development
}
