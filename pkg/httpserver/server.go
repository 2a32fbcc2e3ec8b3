package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/vertextrade/storefront/pkg/logger"
)

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
	startHooks      []func(*slog.Logger)
	stopHooks       []func(context.Context, *slog.Logger)
}

func defaultConfig() *config {
	return &config{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
	}
}

// Server wraps http.Server with signal handling, graceful shutdown and
// lifecycle hooks.
type Server struct {
	cfg  *config
	srv  *http.Server
	once sync.Once
	mu   sync.Mutex
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Discard()
	}
	return &Server{cfg: cfg}
}

// Run starts the HTTP server and blocks until ctx is cancelled, SIGINT or
// SIGTERM arrives, or the listener fails. Stop hooks run after the server
// has drained, on every exit path.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}
	s.srv = &http.Server{
		Addr:         s.cfg.addr,
		Handler:      handler,
		ReadTimeout:  s.cfg.readTimeout,
		WriteTimeout: s.cfg.writeTimeout,
		IdleTimeout:  s.cfg.idleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
	srv := s.srv
	s.mu.Unlock()

	for _, h := range s.cfg.startHooks {
		h(s.cfg.logger)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-ctx.Done():
		s.cfg.logger.Info("context cancelled, shutting down", logger.Component("httpserver"))
		_ = s.Shutdown(context.Background())
		runErr = <-errCh
	case sig := <-stop:
		s.cfg.logger.Info("signal received, shutting down",
			logger.Component("httpserver"),
			slog.String("signal", sig.String()),
		)
		_ = s.Shutdown(context.Background())
		runErr = <-errCh
	case runErr = <-errCh:
		_ = s.Shutdown(context.Background())
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

// Shutdown drains the server within the configured timeout and runs the stop
// hooks. It is safe for repeated calls.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()

		if srv != nil {
			err = srv.Shutdown(ctx)
		}
		for _, h := range s.cfg.stopHooks {
			h(ctx, s.cfg.logger)
		}
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
