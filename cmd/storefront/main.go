package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vertextrade/storefront/modules/storefront"
	"github.com/vertextrade/storefront/pkg/backend"
	"github.com/vertextrade/storefront/pkg/clientip"
	"github.com/vertextrade/storefront/pkg/config"
	"github.com/vertextrade/storefront/pkg/environment"
	"github.com/vertextrade/storefront/pkg/httpserver"
	"github.com/vertextrade/storefront/pkg/logger"
	"github.com/vertextrade/storefront/pkg/redis"
	"github.com/vertextrade/storefront/pkg/requestid"
	"github.com/vertextrade/storefront/svc/account"
	"github.com/vertextrade/storefront/svc/authstate"
	"github.com/vertextrade/storefront/svc/catalog"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"storefront"`
	LogLevel string `env:"LOG_LEVEL"`
}

type configs struct {
	app     appConfig
	http    httpserver.Config
	redis   redis.Config
	backend backend.Config
	account account.Config
	catalog catalog.Config
}

func loadConfigs() (configs, error) {
	var c configs
	err := errors.Join(
		config.Load(&c.app),
		config.Load(&c.http),
		config.Load(&c.redis),
		config.Load(&c.backend),
		config.Load(&c.account),
		config.Load(&c.catalog),
	)
	return c, err
}

func main() {
	if err := run(); err != nil {
		slog.Error("storefront stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfigs()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	env := environment.Parse(cfg.app.Env)
	log := logger.New(
		logger.WithEnvironment(string(env), cfg.app.Name),
		logger.WithLevelName(cfg.app.LogLevel),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			authstate.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var storage backend.SessionStorage = backend.NewMemoryStorage()
	var redisClient *goredis.Client
	if cfg.redis.Enabled() {
		redisClient, err = redis.Connect(ctx, cfg.redis)
		if err != nil {
			return err
		}
		defer func() { _ = redisClient.Close() }()
		storage = redis.NewStorage(redisClient, 0)
		log.InfoContext(ctx, "session storage: redis")
	}

	client, err := backend.New(cfg.backend,
		backend.WithStorage(storage),
		backend.WithLogger(log),
	)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	store := authstate.New(client, authstate.WithLogger(log))
	if err := store.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	pages := storefront.NewPageService(
		account.NewActions(client, cfg.account, account.WithLogger(log)),
		catalog.NewService(client, cfg.catalog, catalog.WithLogger(log)),
		storefront.DefaultViews(),
		log,
	)

	readiness := []func(context.Context) error{client.Healthcheck}
	if redisClient != nil {
		readiness = append(readiness, redis.Healthcheck(redisClient))
	}

	router := storefront.Router(storefront.RouterOptions{
		Store:           store,
		Pages:           pages,
		Environment:     env,
		Logger:          log,
		ReadinessChecks: readiness,
		ErrorHandler:    pages.ErrorHandler(),
	})

	srv := httpserver.NewFromConfig(cfg.http,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(_ context.Context, l *slog.Logger) {
			if err := store.Close(); err != nil {
				l.Error("failed to close session store", logger.Error(err))
			}
		}),
	)
	return srv.Run(ctx, router)
}
