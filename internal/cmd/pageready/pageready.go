// Package pageready runs the page-ready routine over an HTML file with a
// memory or SQLite cookie jar, for previewing flash banners offline.
package pageready

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/flashkit/pkg/cookie"
	"github.com/dmitrymomot/flashkit/pkg/dom"
	"github.com/dmitrymomot/flashkit/pkg/escape"
	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/jar"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/page"
)

// ErrUsage is returned for invalid flag combinations.
var ErrUsage = errors.New("pageready: usage")

// Config holds the command configuration.
type Config struct {
	JarDSN       string
	DocumentPath string
	Flash        string
	Markdown     bool
	RawHTML      bool
	Verbose      bool
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses flags into a Config. JAR_DSN is used when -jar is unset.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	var cfg Config
	dsn := ""
	if lookup != nil {
		if v, ok := lookup("JAR_DSN"); ok {
			dsn = v
		}
	}

	fs.StringVar(&cfg.JarDSN, "jar", dsn, "SQLite cookie jar DSN (default: in-memory jar)")
	fs.StringVar(&cfg.DocumentPath, "path", "/", "document path used for cookie scoping")
	fs.StringVar(&cfg.Flash, "flash", "", "store this flash message before running")
	fs.BoolVar(&cfg.Markdown, "markdown", false, "render -flash as markdown")
	fs.BoolVar(&cfg.RawHTML, "raw", false, "insert the flash message without sanitizing")
	fs.BoolVar(&cfg.Verbose, "v", false, "log at debug level")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Markdown && cfg.Flash == "" {
		return Config{}, fmt.Errorf("%w: -markdown needs -flash", ErrUsage)
	}
	return cfg, nil
}

// Run reads HTML from in, runs the page-ready routine and writes the
// resulting HTML to out. A summary line goes to errOut.
func Run(ctx context.Context, cfg Config, in io.Reader, out, errOut io.Writer) (err error) {
	if errOut == nil {
		errOut = io.Discard
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := logger.New(logger.WithWriter(errOut), logger.WithTextFormat(), logger.WithLevel(level))

	cookies, closeJar, err := openJar(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeJar(); cerr != nil && err == nil {
			err = fmt.Errorf("pageready: jar: %w", cerr)
		}
	}()

	if cfg.Flash != "" {
		msg := cfg.Flash
		if cfg.Markdown {
			if msg, err = flash.Markdown(msg); err != nil {
				return err
			}
		}
		cookie.NewStore(cookies, cookie.WithStorePath(cfg.DocumentPath)).
			Create(flash.CookieName, escape.Escape(msg), 0)
	}

	doc, err := dom.Parse(in)
	if err != nil {
		return fmt.Errorf("pageready: parse html: %w", err)
	}

	var flashOpts []flash.Option
	if cfg.RawHTML {
		flashOpts = append(flashOpts, flash.WithRawHTML())
	}
	res := page.Ready(ctx, doc, cookies,
		page.WithLogger(log),
		page.WithStoreOptions(cookie.WithStorePath(cfg.DocumentPath)),
		page.WithFlashOptions(flashOpts...),
	)

	if err := doc.Render(out); err != nil {
		return fmt.Errorf("pageready: render html: %w", err)
	}

	log.InfoContext(ctx, "page ready",
		slog.Bool("focused", res.Focused),
		slog.Bool("graph", res.Graph),
		slog.Bool("flash", res.Flash),
	)
	return nil
}

// openJar returns the jar and a closer reporting any write failure the
// SQLite jar recorded along the way.
func openJar(ctx context.Context, cfg Config) (cookie.Jar, func() error, error) {
	opts := []jar.Option{jar.WithDocumentPath(cfg.DocumentPath)}
	if cfg.JarDSN == "" {
		return jar.NewMemory(opts...), func() error { return nil }, nil
	}

	j, err := jar.OpenSQLite(ctx, cfg.JarDSN, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("pageready: open jar: %w", err)
	}
	return j, func() error { return errors.Join(j.Err(), j.Close()) }, nil
}
