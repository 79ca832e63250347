// Package config loads the server configuration from the environment with
// caarlos0/env.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/flashkit/internal/reading"
	"github.com/dmitrymomot/flashkit/pkg/logger"
)

// ErrInvalid is returned for a configuration that parses but cannot run.
var ErrInvalid = errors.New("config: invalid")

const dateLayout = "2006-01-02"

// Config is the server configuration.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// CookieSecure marks flash cookies Secure. Enable behind TLS.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"false"`

	// ServerRender runs the page-ready routine on the server so pages show
	// the flash banner without the browser binary.
	ServerRender bool `env:"FLASH_SERVER_RENDER" envDefault:"true"`

	// JarDSN opens a SQLite cookie jar used by the readiness probe and the
	// pageready CLI. Empty disables it.
	JarDSN string `env:"JAR_DSN"`

	// StaticDir holds flashwasm.js and wasm_exec.js. Empty disables /static/.
	StaticDir string `env:"STATIC_DIR" envDefault:"web/static"`

	Book Book

	Log logger.Config
}

// Book describes the book being read and its current deadline.
type Book struct {
	Title             string `env:"BOOK_TITLE" envDefault:"Infinite Jest"`
	Pages             int    `env:"BOOK_PAGES" envDefault:"1079"`
	DeadlineStartPage int    `env:"DEADLINE_START_PAGE" envDefault:"1"`
	DeadlinePage      int    `env:"DEADLINE_PAGE" envDefault:"63"`
	DeadlineEndsOn    string `env:"DEADLINE_ENDS_ON"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	b := c.Book
	switch {
	case b.Pages <= 0:
		return fmt.Errorf("%w: BOOK_PAGES must be positive", ErrInvalid)
	case b.DeadlineStartPage < 0 || b.DeadlineStartPage > b.DeadlinePage:
		return fmt.Errorf("%w: DEADLINE_START_PAGE must be between 0 and DEADLINE_PAGE", ErrInvalid)
	case b.DeadlinePage > b.Pages:
		return fmt.Errorf("%w: DEADLINE_PAGE is past BOOK_PAGES", ErrInvalid)
	}
	if b.DeadlineEndsOn != "" {
		if _, err := time.Parse(dateLayout, b.DeadlineEndsOn); err != nil {
			return fmt.Errorf("%w: DEADLINE_ENDS_ON: %w", ErrInvalid, err)
		}
	}
	return nil
}

// Reading returns the book and deadline described by the configuration.
func (c Config) Reading() (reading.Book, reading.Deadline) {
	d := reading.Deadline{StartPage: c.Book.DeadlineStartPage, Page: c.Book.DeadlinePage}
	if t, err := time.Parse(dateLayout, c.Book.DeadlineEndsOn); err == nil {
		d.EndsOn = t
	}
	return reading.NewBook(c.Book.Title, c.Book.Pages), d
}
