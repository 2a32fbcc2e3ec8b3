// Package logger builds *slog.Logger instances for the storefront.
//
// New takes functional options for format, level, static attributes and
// context extractors. WithEnvironment picks text/debug output for development
// and JSON/info output for staging and production. The decorator installed by
// New runs every ContextExtractor on each record, which is how request IDs
// end up in log lines without being threaded through call sites.
//
// Attribute helpers in attr.go keep key names consistent:
//
//	log.InfoContext(ctx, "session changed",
//		logger.Component("authstate"),
//		logger.AuthEvent(string(ev)),
//		logger.UserID(sess.User.ID),
//	)
package logger
