// Package logger builds the structured loggers used across flashkit.
//
// Loggers are log/slog loggers writing JSON (or text) to stdout. Request
// scoped values are added by context extractors on every call, and warnings
// and errors are forwarded to Sentry when a DSN is configured.
//
//	log, err := logger.FromConfig(cfg.Log, logger.StringExtractor("request_id", internal.RequestID))
//	if err != nil {
//		return err
//	}
//	log.InfoContext(ctx, "entry recorded", slog.Int("page", 42))
//	// {"level":"INFO","msg":"entry recorded","page":42,"request_id":"..."}
//
// Without a DSN Sentry stays disabled and only local output is written, so
// development and production share one code path. Call Flush before exit to
// deliver buffered Sentry events.
//
// Packages that accept a logger default to NewNope.
package logger
