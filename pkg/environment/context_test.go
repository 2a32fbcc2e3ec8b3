package environment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vertextrade/storefront/pkg/environment"
)

func TestParse(t *testing.T) {
	tests := map[string]environment.Environment{
		"production": environment.Production,
		"prod":       environment.Production,
		"Stage":      environment.Staging,
		"dev":        environment.Development,
		"":           environment.Development,
		"unknown":    environment.Development,
	}
	for in, want := range tests {
		assert.Equal(t, want, environment.Parse(in), in)
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	assert.True(t, environment.IsDevelopment(ctx))

	ctx = environment.WithContext(ctx, environment.Production)
	assert.True(t, environment.IsProduction(ctx))
	assert.False(t, environment.IsDevelopment(ctx))
}

func TestMiddleware(t *testing.T) {
	var got environment.Environment
	h := environment.Middleware(environment.Staging)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = environment.FromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, environment.Staging, got)
}
