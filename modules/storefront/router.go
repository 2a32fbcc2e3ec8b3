package storefront

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vertextrade/storefront/handler"
	"github.com/vertextrade/storefront/pkg/clientip"
	"github.com/vertextrade/storefront/pkg/environment"
	"github.com/vertextrade/storefront/pkg/httpserver"
	"github.com/vertextrade/storefront/pkg/logger"
	"github.com/vertextrade/storefront/pkg/requestid"
	"github.com/vertextrade/storefront/svc/authstate"
)

// ErrSessionPending is reported by /readyz until the store has resolved its
// initial session.
var ErrSessionPending = errors.New("storefront: initial session not resolved")

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures the storefront router. Store is required: every
// page reads the session from it.
type RouterOptions struct {
	Store       *authstate.Store
	Pages       Mountable
	Environment environment.Environment
	Logger      *slog.Logger

	// ReadinessChecks run on /readyz in addition to the store check.
	ReadinessChecks []func(context.Context) error

	// ErrorHandler renders unknown routes. Defaults to plain text.
	ErrorHandler handler.ErrorHandler[handler.Context]
}

// Router builds the application router.
//
//	pages := storefront.NewPageService(actions, products, nil, log)
//	r := storefront.Router(storefront.RouterOptions{
//	    Store: store,
//	    Pages: pages,
//	    ErrorHandler: pages.ErrorHandler(),
//	})
func Router(opts RouterOptions) chi.Router {
	if opts.Store == nil {
		panic("storefront: router requires a session store")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	if opts.Environment != "" {
		r.Use(environment.Middleware(opts.Environment))
	}

	if opts.ErrorHandler != nil {
		notFound := handler.Wrap(func(handler.Context, struct{}) handler.Response {
			return handler.Error(handler.ErrNotFound)
		}, handler.WithErrorHandler[handler.Context, struct{}](opts.ErrorHandler))
		r.NotFound(notFound)
	}

	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	checks := append([]func(context.Context) error{storeReady(opts.Store)}, opts.ReadinessChecks...)
	r.Get("/readyz", httpserver.HealthCheckHandler(log, checks...))

	r.Group(func(r chi.Router) {
		r.Use(authstate.Middleware(opts.Store))
		if opts.Pages != nil {
			r.Mount("/", opts.Pages.Handle())
		}
	})

	return r
}

func storeReady(s *authstate.Store) func(context.Context) error {
	return func(context.Context) error {
		select {
		case <-s.Ready():
			return nil
		default:
			return ErrSessionPending
		}
	}
}
