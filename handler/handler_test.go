package handler_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertextrade/storefront/handler"
	"github.com/vertextrade/storefront/pkg/binder"
	"github.com/vertextrade/storefront/pkg/logger"
)

type credentials struct {
	Email string `form:"email"`
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func dataStarRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Datastar-Request", "true")
	req.Header.Set("Accept", "text/event-stream")
	return req
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestWrap(t *testing.T) {
	t.Run("binds form and renders", func(t *testing.T) {
		h := handler.Wrap(func(ctx handler.Context, req credentials) handler.Response {
			return handler.Templ(text("hola " + req.Email))
		}, handler.WithBinders[handler.Context, credentials](binder.Form()))

		rec := httptest.NewRecorder()
		h(rec, formRequest(url.Values{"email": {"ana@ejemplo.com"}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "hola ana@ejemplo.com", rec.Body.String())
	})

	t.Run("binder not applicable is skipped", func(t *testing.T) {
		h := handler.Wrap(func(ctx handler.Context, req credentials) handler.Response {
			return handler.Templ(text("page"))
		}, handler.WithBinders[handler.Context, credentials](binder.Form()))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
		assert.Equal(t, "page", rec.Body.String())
	})

	t.Run("bind failure is a bad request", func(t *testing.T) {
		var got error
		h := handler.Wrap(func(ctx handler.Context, req credentials) handler.Response {
			t.Fatal("handler must not run")
			return nil
		},
			handler.WithBinders[handler.Context, credentials](binder.Form()),
			handler.WithErrorHandler[handler.Context, credentials](func(ctx handler.Context, err error) {
				got = err
			}),
		)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		h(httptest.NewRecorder(), req)

		var httpErr handler.HTTPError
		require.ErrorAs(t, got, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		assert.ErrorIs(t, got, binder.ErrUnsupportedMediaType)
	})

	t.Run("nil response", func(t *testing.T) {
		h := handler.Wrap(func(ctx handler.Context, req struct{}) handler.Response { return nil })
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		var order []string
		deco := func(name string) handler.Decorator[handler.Context, struct{}] {
			return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
				return func(ctx handler.Context, req struct{}) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.Wrap(func(ctx handler.Context, req struct{}) handler.Response {
			order = append(order, "handler")
			return handler.Templ(text("ok"))
		}, handler.WithDecorators(deco("outer"), deco("inner")))

		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"outer", "inner", "handler"}, order)
	})

	t.Run("error response reaches error handler", func(t *testing.T) {
		h := handler.Wrap(func(ctx handler.Context, req struct{}) handler.Response {
			return handler.Error(handler.ErrNotFound)
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Página no encontrada")
	})
}

func TestTemplPartial(t *testing.T) {
	resp := handler.TemplPartial(text(`<p id="msg">ok</p>`), text("<html>full</html>"), handler.WithTarget("#msg"))

	t.Run("plain request gets the full page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodPost, "/login", nil)))
		assert.Equal(t, "<html>full</html>", rec.Body.String())
	})

	t.Run("datastar request gets a patch", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, resp.Render(rec, dataStarRequest(http.MethodPost, "/login", nil)))
		body := rec.Body.String()
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, `<p id="msg">ok</p>`)
		assert.NotContains(t, body, "full")
	})
}

func TestTemplStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, handler.TemplStatus(http.StatusTeapot, text("tea")).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRedirect(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/").Render(rec, httptest.NewRequest(http.MethodPost, "/logout", nil)))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("datastar", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/").Render(rec, dataStarRequest(http.MethodPost, "/logout", nil)))
		assert.Contains(t, rec.Body.String(), "window.location")
	})
}

func TestSSE(t *testing.T) {
	t.Run("requires datastar", func(t *testing.T) {
		err := handler.SSE(func(handler.StreamContext) error { return nil }).
			Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/session/stream", nil))
		var httpErr handler.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("streams components and signals", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := handler.SSE(func(stream handler.StreamContext) error {
			if err := stream.SendComponent(text(`<nav id="nav">x</nav>`)); err != nil {
				return err
			}
			return stream.SendSignals(map[string]any{"signedIn": true})
		}).Render(rec, dataStarRequest(http.MethodGet, "/session/stream", nil))

		require.NoError(t, err)
		assert.Contains(t, rec.Body.String(), `<nav id="nav">x</nav>`)
		assert.Contains(t, rec.Body.String(), "datastar-patch-signals")
		assert.Contains(t, rec.Body.String(), `"signedIn":true`)
	})
}

func TestIsDataStar(t *testing.T) {
	assert.False(t, handler.IsDataStar(httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.True(t, handler.IsDataStar(dataStarRequest(http.MethodGet, "/", nil)))
	assert.True(t, handler.IsDataStar(httptest.NewRequest(http.MethodGet, "/?datastar=%7B%7D", nil)))
}

func TestNewErrorHandler(t *testing.T) {
	page := func(p handler.ErrorPageParams) templ.Component {
		return text("page:" + p.Message)
	}
	toast := func(p handler.ErrorToastParams) templ.Component {
		return text(`<div id="toast">` + p.Message + `</div>`)
	}

	t.Run("page for plain requests", func(t *testing.T) {
		var logs bytes.Buffer
		eh := handler.NewErrorHandler(logger.New(logger.WithOutput(&logs), logger.WithFormat(logger.FormatJSON)),
			handler.ErrorHandlerConfig{ErrorPage: page, ErrorToast: toast})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		eh(handler.NewContext(rec, req), errors.New("database exploded"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "page:Error interno del servidor", rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "exploded")
		assert.Contains(t, logs.String(), "database exploded")
		assert.Contains(t, logs.String(), `"level":"ERROR"`)
	})

	t.Run("client errors log at warn", func(t *testing.T) {
		var logs bytes.Buffer
		eh := handler.NewErrorHandler(logger.New(logger.WithOutput(&logs), logger.WithFormat(logger.FormatJSON)),
			handler.ErrorHandlerConfig{ErrorPage: page})

		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/x", nil)), handler.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, logs.String(), `"level":"WARN"`)
	})

	t.Run("toast for datastar requests", func(t *testing.T) {
		eh := handler.NewErrorHandler(slog.New(slog.DiscardHandler), handler.ErrorHandlerConfig{ErrorPage: page, ErrorToast: toast})

		rec := httptest.NewRecorder()
		req := dataStarRequest(http.MethodPost, "/login", nil)
		eh(handler.NewContext(rec, req), handler.ErrBadRequest)

		assert.Contains(t, rec.Body.String(), "Solicitud no válida")
		assert.Contains(t, rec.Body.String(), "#toast")
	})

	t.Run("plain text without components", func(t *testing.T) {
		eh := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{})
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Página no encontrada")
	})
}
