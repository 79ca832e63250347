package jar

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/flashkit/pkg/cookie"
)

// Cookie is one record held by a jar.
type Cookie struct {
	Created time.Time
	Expires *time.Time
	Name    string
	Value   string
	Path    string
}

// Memory is an in-process jar with browser semantics: cookies are keyed by
// name and path, expired assignments delete, and Cookie lists the cookies
// visible on the document path with longer paths first.
// Memory is safe for concurrent use.
type Memory struct {
	now     func() time.Time
	docPath string
	cookies []Cookie
	mu      sync.Mutex
}

// Option configures a jar.
type Option func(*options)

type options struct {
	now     func() time.Time
	docPath string
}

// WithClock sets the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithDocumentPath sets the path of the page the jar belongs to.
// Defaults to "/".
func WithDocumentPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.docPath = path
		}
	}
}

func newOptions(opts ...Option) options {
	o := options{now: time.Now, docPath: "/"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewMemory returns an empty in-memory jar.
func NewMemory(opts ...Option) *Memory {
	o := newOptions(opts...)
	return &Memory{now: o.now, docPath: o.docPath}
}

// Cookie returns the visible cookies as "a=1; b=2".
func (m *Memory) Cookie() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	visible := m.visibleLocked()
	parts := make([]string, 0, len(visible))
	for _, c := range visible {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

// SetCookie applies one assignment. Malformed assignments are ignored.
func (m *Memory) SetCookie(assignment string) {
	a, err := cookie.ParseAssignment(assignment)
	if err != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	path := a.Path
	if path == "" || path[0] != '/' {
		path = defaultPath(m.docPath)
	}

	idx := slices.IndexFunc(m.cookies, func(c Cookie) bool {
		return c.Name == a.Name && c.Path == path
	})

	if a.Expired(now) {
		if idx >= 0 {
			m.cookies = slices.Delete(m.cookies, idx, idx+1)
		}
		return
	}

	c := Cookie{
		Name:    a.Name,
		Value:   a.Value,
		Path:    path,
		Expires: expiresAt(a, now),
		Created: now,
	}
	if idx >= 0 {
		c.Created = m.cookies[idx].Created
		m.cookies[idx] = c
		return
	}
	m.cookies = append(m.cookies, c)
}

// Cookies returns a snapshot of every live cookie, visible or not.
func (m *Memory) Cookies() []Cookie {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purgeLocked()
	return slices.Clone(m.cookies)
}

// Len returns the number of live cookies.
func (m *Memory) Len() int {
	return len(m.Cookies())
}

func (m *Memory) visibleLocked() []Cookie {
	m.purgeLocked()

	out := make([]Cookie, 0, len(m.cookies))
	for _, c := range m.cookies {
		if pathMatches(m.docPath, c.Path) {
			out = append(out, c)
		}
	}
	// Longer paths first, then earlier creation; the stable sort keeps
	// insertion order for equal creation times.
	slices.SortStableFunc(out, func(a, b Cookie) int {
		if len(a.Path) != len(b.Path) {
			return len(b.Path) - len(a.Path)
		}
		return a.Created.Compare(b.Created)
	})
	return out
}

func (m *Memory) purgeLocked() {
	now := m.now()
	m.cookies = slices.DeleteFunc(m.cookies, func(c Cookie) bool {
		return c.Expires != nil && !c.Expires.After(now)
	})
}

func expiresAt(a cookie.Assignment, now time.Time) *time.Time {
	if a.MaxAge != nil {
		t := now.Add(time.Duration(*a.MaxAge) * time.Second)
		return &t
	}
	return a.Expires
}
