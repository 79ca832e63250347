package flash

import (
	"context"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/flashkit/pkg/cookie"
	"github.com/dmitrymomot/flashkit/pkg/dom"
	"github.com/dmitrymomot/flashkit/pkg/escape"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/sanitizer"
)

// Markup contract of the banner.
const (
	CookieName   = cookie.FlashName
	RegionID     = "bd"
	ContainerID  = "flash-message"
	CloseID      = "flash-message-close"
	ButtonID     = "flash-message-button"
	DismissTitle = "dismiss this message"
	DismissLabel = "X"
)

// State is the banner state of the current page.
type State int

const (
	// Idle means no banner is on the page.
	Idle State = iota
	// Shown means a banner is on the page, waiting to be dismissed.
	Shown
)

func (s State) String() string {
	if s == Shown {
		return "shown"
	}
	return "idle"
}

// Banner shows the flash message cookie once per page load.
type Banner struct {
	store     *cookie.Store
	sanitize  func(string) string
	logger    *slog.Logger
	region    string
	name      string
	container dom.Element
	state     State
}

// Option configures a Banner.
type Option func(*Banner)

// WithSanitizer replaces the markup sanitizer applied to decoded messages.
func WithSanitizer(fn func(string) string) Option {
	return func(b *Banner) {
		if fn != nil {
			b.sanitize = fn
		}
	}
}

// WithPolicy sanitizes decoded messages with a custom bluemonday policy.
// A nil policy is ignored.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(b *Banner) {
		if p != nil {
			b.sanitize = func(s string) string {
				return sanitizer.SanitizeHTMLCustom(s, p)
			}
		}
	}
}

// WithRawHTML inserts decoded messages without sanitizing them.
// Only use it when every writer of the flash cookie is trusted.
func WithRawHTML() Option {
	return func(b *Banner) {
		b.sanitize = func(s string) string { return s }
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Banner) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithRegion sets the id of the element the banner is prepended to.
// Defaults to "bd".
func WithRegion(id string) Option {
	return func(b *Banner) {
		if id != "" {
			b.region = id
		}
	}
}

// WithCookieName sets the cookie carrying the message.
// Defaults to "flash_message".
func WithCookieName(name string) Option {
	return func(b *Banner) {
		if name != "" {
			b.name = name
		}
	}
}

// New returns an idle Banner reading from store.
func New(store *cookie.Store, opts ...Option) *Banner {
	b := &Banner{
		store:    store,
		sanitize: sanitizer.FlashHTML,
		logger:   logger.NewNope(),
		region:   RegionID,
		name:     CookieName,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State returns the banner state.
func (b *Banner) State() State {
	return b.state
}

// Container returns the banner element while it is shown.
func (b *Banner) Container() (dom.Element, bool) {
	if b.state != Shown {
		return nil, false
	}
	return b.container, true
}

// Ready runs on page ready. If the flash cookie holds a message it decodes
// it, prepends the banner to the region and erases the cookie, and reports
// true. An absent or empty cookie leaves the page untouched.
func (b *Banner) Ready(ctx context.Context, t dom.Tree) bool {
	raw, ok := b.store.Read(b.name)
	if !ok || raw == "" {
		return false
	}
	defer b.store.Erase(b.name)

	region, ok := t.ByID(b.region)
	if !ok {
		b.logger.DebugContext(ctx, "flash region missing, message dropped",
			slog.String("region", b.region),
		)
		return false
	}

	message := b.sanitize(escape.Unescape(raw))
	container := b.build(ctx, t, message)
	t.Prepend(region, container)

	b.container = container
	b.state = Shown
	b.logger.DebugContext(ctx, "flash message shown", slog.Int("length", len(message)))
	return true
}

// Attach binds the dismiss control of a banner already present in t, such
// as one rendered on the server before the cookie was erased. It reports
// false when the page has no banner or this Banner already owns one.
func (b *Banner) Attach(ctx context.Context, t dom.Tree) bool {
	if b.state == Shown {
		return false
	}
	container, ok := t.ByID(ContainerID)
	if !ok {
		return false
	}
	button, ok := t.ByID(ButtonID)
	if !ok {
		return false
	}

	t.OnClick(button, func(ev *dom.Event) {
		b.dismiss(t, ev)
	})
	b.container = container
	b.state = Shown
	b.logger.DebugContext(ctx, "flash banner attached")
	return true
}

// build assembles
//
//	<div id="flash-message">
//	  <div id="flash-message-close"><a title="..." id="flash-message-button" href="#">X</a></div>
//	  message
//	</div>
func (b *Banner) build(ctx context.Context, t dom.Tree, message string) dom.Element {
	container := t.Create("div", dom.A("id", ContainerID))
	closer := t.Create("div", dom.A("id", CloseID))
	button := t.Create("a",
		dom.A("title", DismissTitle),
		dom.A("id", ButtonID),
		dom.A("href", "#"),
	)
	t.SetText(button, DismissLabel)
	t.Append(closer, button)
	t.Append(container, closer)

	if err := t.AppendHTML(container, message); err != nil {
		b.logger.WarnContext(ctx, "flash message is not valid markup, showing it as text",
			slog.String("error", err.Error()),
		)
		text := t.Create("span")
		t.SetText(text, message)
		t.Append(container, text)
	}

	t.OnClick(button, func(ev *dom.Event) {
		b.dismiss(t, ev)
	})
	return container
}

// dismiss removes the banner. The button the handler is bound to sits two
// levels below the container; the placeholder href must not navigate.
func (b *Banner) dismiss(t dom.Tree, ev *dom.Event) {
	ev.PreventDefault()

	anchor := ev.Current
	if anchor == nil {
		anchor = ev.Target
	}
	container, ok := dom.Ancestor(t, anchor, 2)
	if !ok {
		return
	}
	t.Remove(container)
	b.container = nil
	b.state = Idle
}
