// Package httpserver runs the storefront's http.Handler with graceful
// shutdown.
//
// Run blocks until its context is cancelled or SIGINT/SIGTERM arrives, then
// drains connections within the shutdown timeout and runs stop hooks. The
// entry point uses a stop hook to tear down the session store, so the backend
// subscription is released on every exit path.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(ctx context.Context, log *slog.Logger) {
//			_ = store.Close()
//		}),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler provides /healthz and /readyz probes.
package httpserver
