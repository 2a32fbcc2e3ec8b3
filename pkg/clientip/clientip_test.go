package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vertextrade/storefront/pkg/clientip"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "remote addr", remote: "192.0.2.1:4242", want: "192.0.2.1"},
		{name: "remote addr without port", remote: "192.0.2.1", want: "192.0.2.1"},
		{name: "cloudflare wins", headers: map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"}, remote: "10.0.0.1:1", want: "203.0.113.7"},
		{name: "first forwarded entry", headers: map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.2"}, remote: "10.0.0.1:1", want: "198.51.100.1"},
		{name: "skips garbage in chain", headers: map[string]string{"X-Forwarded-For": "unknown, 198.51.100.9"}, remote: "10.0.0.1:1", want: "198.51.100.9"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "198.51.100.3"}, remote: "10.0.0.1:1", want: "198.51.100.3"},
		{name: "invalid header falls back", headers: map[string]string{"X-Real-IP": "nope"}, remote: "10.0.0.1:1", want: "10.0.0.1"},
		{name: "ipv6 remote", remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "mapped ipv4", headers: map[string]string{"X-Real-IP": "::ffff:192.0.2.5"}, want: "192.0.2.5"},
		{name: "nothing usable", remote: "pipe", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromRequest(r))
		})
	}
}

func TestMiddleware(t *testing.T) {
	var got string
	h := clientip.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.44:1000"
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "192.0.2.44", got)
}

func TestLoggerExtractor(t *testing.T) {
	extract := clientip.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(clientip.WithContext(context.Background(), "192.0.2.1"))
	assert.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)
	assert.Equal(t, "192.0.2.1", attr.Value.String())
}
