package jar

import (
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/flashkit/pkg/cookie"
)

// HTTP is a request-scoped jar for rendering a page on the server.
// Cookie serves the request's cookies; SetCookie emits a Set-Cookie header
// and updates what later Cookie calls return.
type HTTP struct {
	w      http.ResponseWriter
	now    func() time.Time
	pairs  []cookie.Pair
	secure bool
	mu     sync.Mutex
}

// HTTPOption configures an HTTP jar.
type HTTPOption func(*HTTP)

// WithHTTPClock sets the time source used to turn expiry dates into Max-Age.
func WithHTTPClock(now func() time.Time) HTTPOption {
	return func(h *HTTP) {
		if now != nil {
			h.now = now
		}
	}
}

// WithSecureCookies marks emitted cookies as Secure.
func WithSecureCookies(secure bool) HTTPOption {
	return func(h *HTTP) {
		h.secure = secure
	}
}

// NewHTTP returns a jar seeded from r that writes to w.
func NewHTTP(w http.ResponseWriter, r *http.Request, opts ...HTTPOption) *HTTP {
	h := &HTTP{w: w, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	if r != nil {
		for _, c := range r.Cookies() {
			h.pairs = append(h.pairs, cookie.Pair{Name: c.Name, Value: c.Value})
		}
	}
	return h
}

// Cookie returns the current cookies as "a=1; b=2".
func (h *HTTP) Cookie() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	parts := make([]string, 0, len(h.pairs))
	for _, p := range h.pairs {
		parts = append(parts, p.Name+"="+p.Value)
	}
	return strings.Join(parts, "; ")
}

// SetCookie emits the assignment as a Set-Cookie header.
// Malformed assignments are ignored.
func (h *HTTP) SetCookie(assignment string) {
	a, err := cookie.ParseAssignment(assignment)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	c := &http.Cookie{
		Name:     a.Name,
		Value:    a.Value,
		Path:     a.Path,
		Domain:   a.Domain,
		Secure:   a.Secure || h.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if c.Path == "" {
		c.Path = "/"
	}

	if a.Expired(now) {
		c.MaxAge = -1
		h.pairs = slices.DeleteFunc(h.pairs, func(p cookie.Pair) bool { return p.Name == a.Name })
	} else {
		if a.MaxAge != nil {
			c.MaxAge = *a.MaxAge
		} else if a.Expires != nil {
			c.Expires = *a.Expires
		}
		if i := slices.IndexFunc(h.pairs, func(p cookie.Pair) bool { return p.Name == a.Name }); i >= 0 {
			h.pairs[i].Value = a.Value
		} else {
			h.pairs = append(h.pairs, cookie.Pair{Name: a.Name, Value: a.Value})
		}
	}

	if h.w != nil {
		http.SetCookie(h.w, c)
	}
}
