package cookie

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/flashkit/pkg/escape"
)

// FlashName is the cookie carrying a one-shot flash message to the next page.
const FlashName = "flash_message"

// Manager writes and reads cookies on HTTP requests and responses.
type Manager struct {
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a cookie Manager with the given options.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     defaultPath,
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.path = path
		}
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithHTTPOnly sets the HttpOnly flag.
// Flash cookies ignore it: page script has to read them.
func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) {
		m.httpOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// Get returns a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set sets a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.cookie(name, value, maxAge))
}

// Delete removes a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

// SetFlash stores message for the next page render.
// The value is written with the legacy escape so the page-ready banner can
// decode it; it is a session cookie readable by page script.
func (m *Manager) SetFlash(w http.ResponseWriter, message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrBadFlash
	}
	c := m.cookie(FlashName, escape.Escape(message), 0)
	c.HttpOnly = false
	http.SetCookie(w, c)
	return nil
}

// Flash reads and deletes the flash message in one step.
// Returns ErrNotFound if the request carries no flash cookie.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request) (string, error) {
	raw, err := m.Get(r, FlashName)
	if err != nil {
		return "", err
	}
	m.Delete(w, FlashName)
	if raw == "" {
		return "", ErrNotFound
	}
	return escape.Unescape(raw), nil
}

// cookie creates a cookie with the manager's defaults.
func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}
