package storefront

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/vertextrade/storefront/handler"
	"github.com/vertextrade/storefront/modules/storefront/views"
	"github.com/vertextrade/storefront/pkg/binder"
	"github.com/vertextrade/storefront/pkg/logger"
	"github.com/vertextrade/storefront/svc/account"
	"github.com/vertextrade/storefront/svc/authstate"
	"github.com/vertextrade/storefront/svc/catalog"
)

// Actions are the authentication operations behind the forms.
type Actions interface {
	SignIn(ctx context.Context, c account.Credentials) account.Status
	DemoSignIn(ctx context.Context) account.Status
	Register(ctx context.Context, c account.Credentials) account.Status
	SignOut(ctx context.Context)
}

// Catalog lists the products shown on the home page.
type Catalog interface {
	List(ctx context.Context) []catalog.Product
}

// PageService serves the storefront pages, the form actions and the live
// navigation stream. Every handler reads the session from the store that
// authstate.Middleware put in the request context.
type PageService struct {
	actions      Actions
	catalog      Catalog
	views        *Views
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
}

func NewPageService(actions Actions, products Catalog, v *Views, log *slog.Logger) *PageService {
	if log == nil {
		log = logger.Discard()
	}
	v = v.withDefaults()
	return &PageService{
		actions: actions,
		catalog: products,
		views:   v,
		errorHandler: handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
			ErrorPage:  v.ErrorPage,
			ErrorToast: v.ErrorToast,
		}),
		log: log.With(logger.Component("storefront")),
	}
}

// ErrorHandler is the handler used for every page route.
func (s *PageService) ErrorHandler() handler.ErrorHandler[handler.Context] {
	return s.errorHandler
}

func (s *PageService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(s.home,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.Get("/login", handler.Wrap(s.loginPage,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/login", handler.Wrap(s.login,
		handler.WithBinders[handler.Context, account.Credentials](binder.Form()),
		handler.WithErrorHandler[handler.Context, account.Credentials](s.errorHandler),
	))
	r.Post("/login/demo", handler.Wrap(s.demoLogin,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.Get("/register", handler.Wrap(s.registerPage,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/register", handler.Wrap(s.register,
		handler.WithBinders[handler.Context, account.Credentials](binder.Form()),
		handler.WithErrorHandler[handler.Context, account.Credentials](s.errorHandler),
	))

	r.Post("/logout", handler.Wrap(s.logout,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.Get("/session/stream", handler.Wrap(s.sessionStream,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	return r
}

// page wraps body in the layout for the current session.
func (s *PageService) page(ctx context.Context, title string, body templ.Component) (templ.Component, error) {
	session, err := authstate.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.views.Layout(views.LayoutParams{Title: title, Session: session}, body), nil
}

func (s *PageService) home(ctx handler.Context, _ struct{}) handler.Response {
	full, err := s.page(ctx, "", s.views.Catalog(s.catalog.List(ctx)))
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(full)
}

func (s *PageService) loginPage(ctx handler.Context, _ struct{}) handler.Response {
	return s.authResult(ctx, "Iniciar Sesión", s.views.LoginPage, views.AuthFormParams{})
}

func (s *PageService) login(ctx handler.Context, req account.Credentials) handler.Response {
	st := s.actions.SignIn(ctx, req)
	return s.authResult(ctx, "Iniciar Sesión", s.views.LoginPage, views.AuthFormParams{Email: req.Email, Status: st})
}

func (s *PageService) demoLogin(ctx handler.Context, _ struct{}) handler.Response {
	st := s.actions.DemoSignIn(ctx)
	return s.authResult(ctx, "Iniciar Sesión", s.views.LoginPage, views.AuthFormParams{Status: st})
}

func (s *PageService) registerPage(ctx handler.Context, _ struct{}) handler.Response {
	return s.authResult(ctx, "Registro", s.views.RegisterPage, views.AuthFormParams{})
}

func (s *PageService) register(ctx handler.Context, req account.Credentials) handler.Response {
	st := s.actions.Register(ctx, req)
	return s.authResult(ctx, "Registro", s.views.RegisterPage, views.AuthFormParams{Email: req.Email, Status: st})
}

// authResult answers DataStar form posts with just the message and
// everything else with the whole page. The full page is built after the
// action ran, so its navigation bar already reflects the new session.
func (s *PageService) authResult(
	ctx handler.Context,
	title string,
	form func(views.AuthFormParams) templ.Component,
	p views.AuthFormParams,
) handler.Response {
	full, err := s.page(ctx, title, form(p))
	if err != nil {
		return handler.Error(err)
	}
	return handler.TemplPartial(s.views.AuthMessage(p.Status), full, handler.WithTarget("#auth-message"))
}

func (s *PageService) logout(ctx handler.Context, _ struct{}) handler.Response {
	s.actions.SignOut(ctx)
	return handler.Redirect("/")
}

// sessionStream keeps the navigation bar in sync with the session until
// the client disconnects or the store closes.
func (s *PageService) sessionStream(ctx handler.Context, _ struct{}) handler.Response {
	store, err := authstate.FromContext(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SSE(func(stream handler.StreamContext) error {
		sub := store.Subscribe(stream)
		defer sub.Close()

		session, err := store.Session()
		if err != nil {
			return err
		}
		if err := stream.SendComponent(s.views.Nav(session)); err != nil {
			return err
		}

		for msg := range sub.Receive(stream) {
			s.log.DebugContext(stream, "pushing navigation update", logger.AuthEvent(string(msg.Data.Event)))
			if err := stream.SendComponent(s.views.Nav(msg.Data.Session)); err != nil {
				return err
			}
		}
		return nil
	})
}
