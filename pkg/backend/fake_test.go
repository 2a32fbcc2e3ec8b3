package backend_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testAnonKey = "anon-key"

// fakeBackend mimics the auth and data endpoints closely enough for the
// client: one known account, token grants, sign-up, logout and a products
// table.
type fakeBackend struct {
	t   *testing.T
	srv *httptest.Server

	mu           sync.Mutex
	now          func() time.Time
	ttl          time.Duration
	password     string
	autoConfirm  bool
	failRefresh  bool
	refreshCalls int
	logoutCalls  int
	lastAuthz    string
	lastAPIKey   string
	issued       int
	products     []map[string]any
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{
		t:        t,
		now:      time.Now,
		ttl:      time.Hour,
		password: "password123",
		products: []map[string]any{
			{"id": 2, "name": "Teclado", "description": "Mecánico", "price": 49.9, "image_url": "https://img/2.png"},
			{"id": 1, "name": "Ratón", "description": "Inalámbrico", "price": 19.5, "image_url": "https://img/1.png"},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/v1/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"name": "GoTrue"})
	})
	mux.HandleFunc("POST /auth/v1/token", f.token)
	mux.HandleFunc("POST /auth/v1/signup", f.signup)
	mux.HandleFunc("POST /auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		f.mu.Lock()
		f.logoutCalls++
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /rest/v1/products", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if r.URL.Query().Get("select") != "*" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad select", "code": "PGRST100"})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.products)
	})
	mux.HandleFunc("GET /rest/v1/missing", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "relation \"public.missing\" does not exist", "code": "42P01"})
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeBackend) URL() string { return f.srv.URL }

func (f *fakeBackend) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAuthz = r.Header.Get("Authorization")
	f.lastAPIKey = r.Header.Get("apikey")
}

func (f *fakeBackend) token(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	var body map[string]string
	_ = json.NewDecoder(r.Body).Decode(&body)

	switch r.URL.Query().Get("grant_type") {
	case "password":
		if body["password"] != f.password {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":             "invalid_grant",
				"error_description": "Invalid login credentials",
			})
			return
		}
		writeJSON(w, http.StatusOK, f.session(body["email"]))
	case "refresh_token":
		f.mu.Lock()
		f.refreshCalls++
		fail := f.failRefresh
		f.mu.Unlock()
		if fail || body["refresh_token"] == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"code":       400,
				"error_code": "refresh_token_not_found",
				"msg":        "Invalid Refresh Token: Refresh Token Not Found",
			})
			return
		}
		writeJSON(w, http.StatusOK, f.session("demo@ejemplo.com"))
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type"})
	}
}

func (f *fakeBackend) signup(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	var body map[string]string
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body["email"] == "taken@ejemplo.com" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code":       422,
			"error_code": "user_already_exists",
			"msg":        "User already registered",
		})
		return
	}
	f.mu.Lock()
	auto := f.autoConfirm
	f.mu.Unlock()
	if auto {
		writeJSON(w, http.StatusOK, f.session(body["email"]))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": "new-user", "email": body["email"], "aud": "authenticated"})
}

func (f *fakeBackend) session(email string) map[string]any {
	f.mu.Lock()
	f.issued++
	n := f.issued
	now := f.now()
	ttl := f.ttl
	f.mu.Unlock()

	return map[string]any{
		"access_token":  mintToken(f.t, "user-1", now.Add(ttl)),
		"token_type":    "bearer",
		"expires_in":    int64(ttl.Seconds()),
		"expires_at":    now.Add(ttl).Unix(),
		"refresh_token": "refresh-" + string(rune('a'+n)),
		"user":          map[string]any{"id": "user-1", "email": email},
	}
}

func mintToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
