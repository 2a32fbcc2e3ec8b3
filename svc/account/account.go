package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vertextrade/storefront/pkg/backend"
	"github.com/vertextrade/storefront/pkg/logger"
)

const (
	MsgSignedIn     = "¡Inicio de sesión exitoso!"
	MsgDemoSignedIn = "¡Inicio de sesión como Demo exitoso!"
	MsgRegistered   = "¡Registro exitoso! Revisa tu correo electrónico para confirmar tu cuenta."
)

// Authenticator is the part of the backend client the actions call.
type Authenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (*backend.Session, error)
	SignUp(ctx context.Context, email, password string) (*backend.SignUpResult, error)
	SignOut(ctx context.Context) error
}

// Config holds the demo account credentials.
type Config struct {
	DemoEmail    string `env:"DEMO_EMAIL" envDefault:"demo@ejemplo.com"`
	DemoPassword string `env:"DEMO_PASSWORD" envDefault:"password123"`
}

// Credentials is the login and registration form.
type Credentials struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Actions performs the user-facing authentication operations. They never
// touch the session store: the store learns about the outcome from the
// backend client's change notifications.
type Actions struct {
	auth Authenticator
	cfg  Config
	log  *slog.Logger
}

// Option configures Actions.
type Option func(*Actions)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Actions) {
		if l != nil {
			a.log = l
		}
	}
}

func NewActions(auth Authenticator, cfg Config, opts ...Option) *Actions {
	if cfg.DemoEmail == "" {
		cfg.DemoEmail = "demo@ejemplo.com"
	}
	if cfg.DemoPassword == "" {
		cfg.DemoPassword = "password123"
	}
	a := &Actions{auth: auth, cfg: cfg, log: logger.Discard()}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With(logger.Component("account"))
	return a
}

// SignIn signs in with the submitted credentials.
func (a *Actions) SignIn(ctx context.Context, c Credentials) Status {
	if _, err := a.auth.SignInWithPassword(ctx, strings.TrimSpace(c.Email), c.Password); err != nil {
		a.log.InfoContext(ctx, "sign-in failed", logger.Error(err))
		return Failure(err)
	}
	return Success(MsgSignedIn)
}

// DemoSignIn signs in with the configured demo account.
func (a *Actions) DemoSignIn(ctx context.Context) Status {
	if _, err := a.auth.SignInWithPassword(ctx, a.cfg.DemoEmail, a.cfg.DemoPassword); err != nil {
		a.log.InfoContext(ctx, "demo sign-in failed", logger.Error(err))
		return Failure(err)
	}
	return Success(MsgDemoSignedIn)
}

// Register creates an account. The success message is only shown when the
// backend returns the new user.
func (a *Actions) Register(ctx context.Context, c Credentials) Status {
	res, err := a.auth.SignUp(ctx, strings.TrimSpace(c.Email), c.Password)
	if err != nil {
		a.log.InfoContext(ctx, "registration failed", logger.Error(err))
		return Failure(err)
	}
	if res == nil || res.User == nil {
		return Status{}
	}
	a.log.InfoContext(ctx, "account registered", logger.UserID(res.User.ID))
	return Success(MsgRegistered)
}

// SignOut ends the session. Failures are logged and otherwise ignored.
func (a *Actions) SignOut(ctx context.Context) {
	if err := a.auth.SignOut(ctx); err != nil {
		a.log.WarnContext(ctx, "sign-out failed", logger.Error(err))
	}
}
