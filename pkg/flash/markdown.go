package flash

import (
	"bytes"
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrEmptyMessage is returned when a notice renders to nothing.
var ErrEmptyMessage = errors.New("flash: empty message")

// Raw HTML in the source is omitted by the default renderer.
var md = goldmark.New(
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Markdown renders a short markdown notice to the HTML stored in the flash
// cookie. A single paragraph is unwrapped so the banner reads as one line.
func Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", errors.Join(ErrEmptyMessage, err)
	}

	out := strings.TrimSpace(buf.String())
	if out == "" {
		return "", ErrEmptyMessage
	}
	if strings.Count(out, "<p>") == 1 && strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out, nil
}
