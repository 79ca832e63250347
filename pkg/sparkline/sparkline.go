package sparkline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrymomot/flashkit/pkg/dom"
)

// Defaults of a tristate chart.
const (
	DefaultBarWidth   = 4
	DefaultBarSpacing = 1
	DefaultHeight     = 16
	DefaultPosColor   = "#6f6"
	DefaultNegColor   = "#f44"
	DefaultZeroColor  = "#999"
)

// Tristate draws win/loss charts: every value becomes a bar in the top half
// (positive), the bottom half (negative) or a short centred bar (zero).
type Tristate struct {
	barWidth   int
	barSpacing int
	height     int
	posColor   string
	negColor   string
	zeroColor  string
}

// Option configures a Tristate.
type Option func(*Tristate)

// WithBarWidth sets the bar width in pixels.
func WithBarWidth(px int) Option {
	return func(s *Tristate) {
		if px > 0 {
			s.barWidth = px
		}
	}
}

// WithBarSpacing sets the gap between bars in pixels.
func WithBarSpacing(px int) Option {
	return func(s *Tristate) {
		if px >= 0 {
			s.barSpacing = px
		}
	}
}

// WithHeight sets the chart height in pixels.
func WithHeight(px int) Option {
	return func(s *Tristate) {
		if px > 1 {
			s.height = px
		}
	}
}

// WithColors sets the positive, negative and zero bar colours.
// Empty values keep the defaults.
func WithColors(pos, neg, zero string) Option {
	return func(s *Tristate) {
		if pos != "" {
			s.posColor = pos
		}
		if neg != "" {
			s.negColor = neg
		}
		if zero != "" {
			s.zeroColor = zero
		}
	}
}

// New returns a Tristate with the default geometry and colours.
func New(opts ...Option) *Tristate {
	s := &Tristate{
		barWidth:   DefaultBarWidth,
		barSpacing: DefaultBarSpacing,
		height:     DefaultHeight,
		posColor:   DefaultPosColor,
		negColor:   DefaultNegColor,
		zeroColor:  DefaultZeroColor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Values parses a comma separated series and reduces each value to its sign.
// Blank and unparseable tokens count as zero.
func Values(text string) []int {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	tokens := strings.Split(text, ",")
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		switch {
		case err != nil:
			out[i] = 0
		case v > 0:
			out[i] = 1
		case v < 0:
			out[i] = -1
		}
	}
	return out
}

// Bar is one rendered bar.
type Bar struct {
	Left   int
	Top    int
	Height int
	Color  string
}

// Layout computes the bars for values.
func (s *Tristate) Layout(values []int) []Bar {
	half := s.height / 2
	bars := make([]Bar, len(values))
	for i, v := range values {
		b := Bar{Left: i * (s.barWidth + s.barSpacing)}
		switch {
		case v > 0:
			b.Top, b.Height, b.Color = 0, half, s.posColor
		case v < 0:
			b.Top, b.Height, b.Color = half, s.height-half, s.negColor
		default:
			b.Top, b.Height, b.Color = half-1, 2, s.zeroColor
		}
		bars[i] = b
	}
	return bars
}

// Width returns the chart width for n values.
func (s *Tristate) Width(n int) int {
	if n == 0 {
		return 0
	}
	return n*(s.barWidth+s.barSpacing) - s.barSpacing
}

// Render replaces the text of el, read as a comma separated series, with the
// chart. The original series is kept in the data-values attribute, which
// takes precedence over the text so an already drawn chart is redrawn from
// the same series. It returns the parsed values.
func (s *Tristate) Render(t dom.Tree, el dom.Element) []int {
	text, drawn := el.Attr("data-values")
	if !drawn {
		text = strings.TrimSpace(t.Text(el))
	}
	values := Values(text)

	t.SetAttr(el, "data-values", text)
	t.SetText(el, "")

	chart := t.Create("span",
		dom.A("class", "sparkline"),
		dom.A("style", fmt.Sprintf(
			"display:inline-block;position:relative;width:%dpx;height:%dpx",
			s.Width(len(values)), s.height,
		)),
	)
	for _, b := range s.Layout(values) {
		bar := t.Create("span", dom.A("style", fmt.Sprintf(
			"position:absolute;left:%dpx;top:%dpx;width:%dpx;height:%dpx;background-color:%s",
			b.Left, b.Top, s.barWidth, b.Height, b.Color,
		)))
		t.Append(chart, bar)
	}
	t.Append(el, chart)
	return values
}

// Init renders a chart into the element with the given id.
// It reports false when the element does not exist.
func Init(t dom.Tree, id string, opts ...Option) bool {
	el, ok := t.ByID(id)
	if !ok {
		return false
	}
	New(opts...).Render(t, el)
	return true
}
