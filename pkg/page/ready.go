package page

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/flashkit/pkg/cookie"
	"github.com/dmitrymomot/flashkit/pkg/dom"
	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/sparkline"
)

// Page markup hooks.
const (
	FocusClass = "first"
	GraphID    = "graph"
)

// Result reports which page-ready steps changed the page.
type Result struct {
	Focused bool
	Graph   bool
	Flash   bool
	// Attached reports that a banner already on the page, rendered before
	// the cookie was erased, got its dismiss control bound.
	Attached bool
	// Banner is the banner of this page load, useful to observe dismissal.
	Banner *flash.Banner
}

type options struct {
	logger     *slog.Logger
	storeOpts  []cookie.StoreOption
	flashOpts  []flash.Option
	chartOpts  []sparkline.Option
	focusClass string
	graphID    string
}

// Option configures Ready.
type Option func(*options)

// WithLogger sets the logger shared by every step.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStoreOptions configures the cookie store wrapped around the jar.
func WithStoreOptions(opts ...cookie.StoreOption) Option {
	return func(o *options) {
		o.storeOpts = append(o.storeOpts, opts...)
	}
}

// WithFlashOptions configures the flash banner.
func WithFlashOptions(opts ...flash.Option) Option {
	return func(o *options) {
		o.flashOpts = append(o.flashOpts, opts...)
	}
}

// WithSparklineOptions configures the graph.
func WithSparklineOptions(opts ...sparkline.Option) Option {
	return func(o *options) {
		o.chartOpts = append(o.chartOpts, opts...)
	}
}

// WithFocusClass sets the class of the element focused on load.
func WithFocusClass(class string) Option {
	return func(o *options) {
		if class != "" {
			o.focusClass = class
		}
	}
}

// WithGraphID sets the id of the sparkline element.
func WithGraphID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.graphID = id
		}
	}
}

// Ready runs the page-ready routine against t: focus the first ".first"
// element, draw the "#graph" sparkline and show the flash banner stored in
// jar. The steps are independent; a step whose element is missing is skipped.
func Ready(ctx context.Context, t dom.Tree, jar cookie.Jar, opts ...Option) Result {
	o := options{
		logger:     logger.NewNope(),
		focusClass: FocusClass,
		graphID:    GraphID,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var res Result

	if el, ok := t.FirstByClass(o.focusClass); ok {
		t.Focus(el)
		res.Focused = true
	}

	res.Graph = sparkline.Init(t, o.graphID, o.chartOpts...)

	store := cookie.NewStore(jar, o.storeOpts...)
	flashOpts := append([]flash.Option{flash.WithLogger(o.logger)}, o.flashOpts...)
	res.Banner = flash.New(store, flashOpts...)
	res.Flash = res.Banner.Ready(ctx, t)
	if !res.Flash {
		res.Attached = res.Banner.Attach(ctx, t)
	}

	o.logger.DebugContext(ctx, "page ready",
		slog.Bool("focused", res.Focused),
		slog.Bool("graph", res.Graph),
		slog.Bool("flash", res.Flash),
		slog.Bool("attached", res.Attached),
	)
	return res
}
