// Command server runs the reading tracker.
//
// The browser bundle in web/static is built with go generate.
//
//go:generate sh -c "GOOS=js GOARCH=wasm go build -o ../../web/static/flashwasm.wasm ../flashwasm"
//go:generate sh -c "cp \"$(go env GOROOT)/lib/wasm/wasm_exec.js\" ../../web/static/"
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/dmitrymomot/flashkit"
	"github.com/dmitrymomot/flashkit/internal/config"
	"github.com/dmitrymomot/flashkit/internal/handlers"
	"github.com/dmitrymomot/flashkit/internal/reading"
	"github.com/dmitrymomot/flashkit/middlewares"
	"github.com/dmitrymomot/flashkit/pkg/cookie"
	"github.com/dmitrymomot/flashkit/pkg/jar"
	"github.com/dmitrymomot/flashkit/pkg/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.FromConfig(cfg.Log, middlewares.RequestIDExtractor())
	if err != nil {
		return err
	}
	defer logger.Flush(cfg.ShutdownTimeout)

	book, deadline := cfg.Reading()
	entries := reading.NewLog(book, deadline)

	appHandlers := []flashkit.Handler{
		handlers.NewReading(entries),
		handlers.NewContact(),
	}
	var httpMiddleware []func(http.Handler) http.Handler
	if cfg.StaticDir != "" {
		static := handlers.NewStatic(cfg.StaticDir)
		appHandlers = append(appHandlers, static)
		if static.Bundled() {
			httpMiddleware = append(httpMiddleware, static.ScriptMiddleware())
		} else {
			log.Warn("browser bundle not built, pages rely on server render",
				slog.String("dir", cfg.StaticDir),
			)
		}
	}

	opts := []flashkit.Option{
		flashkit.WithLogger(log),
		flashkit.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(middlewares.WithSentryReport()),
		),
		flashkit.WithHandlers(appHandlers...),
		flashkit.WithErrorHandler(handlers.ErrorPage),
		flashkit.WithNotFoundHandler(handlers.NotFound),
		flashkit.WithCookieOptions(cookie.WithSecure(cfg.CookieSecure)),
	}

	if cfg.ServerRender {
		httpMiddleware = append(httpMiddleware, middlewares.PageReady(
			middlewares.WithPageReadyLogger(log),
			middlewares.WithPageReadySecureCookies(cfg.CookieSecure),
		))
	}
	opts = append(opts, flashkit.WithHTTPMiddleware(httpMiddleware...))

	runOpts := []flashkit.RunOption{flashkit.ShutdownTimeout(cfg.ShutdownTimeout)}
	var readiness []flashkit.HealthOption
	if cfg.JarDSN != "" {
		cookies, err := jar.OpenSQLite(ctx, cfg.JarDSN)
		if err != nil {
			return err
		}
		readiness = append(readiness, flashkit.WithReadinessCheck("jar", cookies.Healthcheck))
		runOpts = append(runOpts, flashkit.ShutdownHook(func(context.Context) error {
			return cookies.Close()
		}))
	}
	opts = append(opts, flashkit.WithHealthChecks(readiness...))

	app := flashkit.New(opts...)
	log.Info("starting server",
		slog.String("addr", cfg.Addr),
		slog.String("book", book.Slug),
		slog.Bool("server_render", cfg.ServerRender),
	)
	return app.Run(ctx, cfg.Addr, runOpts...)
}
