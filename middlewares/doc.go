// Package middlewares provides HTTP middleware for flashkit applications.
//
// # Request ID
//
// RequestID assigns each request an ID, reusing X-Request-ID or
// X-Correlation-ID when an upstream proxy set one. Pair it with
// RequestIDExtractor so every log line of the request carries request_id:
//
//	log := logger.New(logger.WithExtractors(middlewares.RequestIDExtractor()))
//	app := flashkit.New(
//	    flashkit.WithLogger(log),
//	    flashkit.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover turns handler panics into *PanicError, which the app's error
// handler renders as a 500 page. WithSentryReport forwards the panic to
// Sentry when a client is configured.
//
//	flashkit.WithMiddleware(middlewares.Recover(middlewares.WithSentryReport()))
//
// # Page ready
//
// PageReady runs the page-ready routine on the server: HTML responses are
// parsed, the flash banner, focus and sparkline are rendered into the
// markup and the flash cookie is erased with Set-Cookie. It is a plain
// net/http middleware because it replaces the ResponseWriter:
//
//	flashkit.WithHTTPMiddleware(middlewares.PageReady(
//	    middlewares.WithPageReadyLogger(log),
//	    middlewares.WithPageReadySecureCookies(true),
//	))
package middlewares
