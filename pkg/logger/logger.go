package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// ErrInvalidLevel is returned for an unknown LOG_LEVEL value.
var ErrInvalidLevel = errors.New("logger: invalid level")

// Config is the logging configuration read from the environment.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Sentry SentryConfig
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return l, nil
}

type options struct {
	w          io.Writer
	level      slog.Level
	text       bool
	sentry     SentryConfig
	extractors []ContextExtractor
}

// Option configures New.
type Option func(*options)

// WithWriter sets the log output. Defaults to stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.w = w
		}
	}
}

// WithLevel sets the minimum level. Defaults to info.
func WithLevel(l slog.Level) Option {
	return func(o *options) {
		o.level = l
	}
}

// WithTextFormat switches from JSON to logfmt-style text output.
func WithTextFormat() Option {
	return func(o *options) {
		o.text = true
	}
}

// WithSentry forwards warnings and errors to Sentry. Errors become issues.
// An empty DSN leaves Sentry disabled.
func WithSentry(cfg SentryConfig) Option {
	return func(o *options) {
		o.sentry = cfg
	}
}

// WithExtractors adds context extractors.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// New creates a logger. Sentry initialisation failures are reported on the
// returned logger and logging continues locally.
func New(opts ...Option) *slog.Logger {
	o := options{w: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&o)
	}

	hopts := &slog.HandlerOptions{Level: o.level}
	var local slog.Handler = slog.NewJSONHandler(o.w, hopts)
	if o.text {
		local = slog.NewTextHandler(o.w, hopts)
	}

	if o.sentry.DSN == "" {
		return slog.New(NewContextHandler(local, o.extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         o.sentry.DSN,
		Environment: o.sentry.Environment,
		EnableLogs:  true,
	}); err != nil {
		l := slog.New(NewContextHandler(local, o.extractors...))
		l.Error("sentry disabled", slog.String("error", err.Error()))
		return l
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(fanout{local, remote}, o.extractors...))
}

// FromConfig creates a logger from environment configuration.
func FromConfig(cfg Config, extractors ...ContextExtractor) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithLevel(level),
		WithSentry(cfg.Sentry),
		WithExtractors(extractors...),
	}
	switch strings.ToLower(cfg.Format) {
	case "", "json":
	case "text":
		opts = append(opts, WithTextFormat())
	default:
		return nil, fmt.Errorf("logger: invalid format %q", cfg.Format)
	}
	return New(opts...), nil
}

// Flush waits for buffered Sentry events. It is a no-op without Sentry.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
