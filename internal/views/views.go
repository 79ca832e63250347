// Package views renders the reading tracker pages. Every page shares a
// layout whose #bd region receives the flash banner; the first form field
// carries class "first" and the progress graph is #graph.
package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/flashkit/internal/reading"
)

// ScriptPath is where the layout loads the browser page-ready binary from.
const ScriptPath = "/static/flashwasm.js"

type scriptKey struct{}

// WithScript makes Layout load src. Pages rendered without it carry no
// script tag and rely on the server-side page-ready pass.
func WithScript(ctx context.Context, src string) context.Context {
	return context.WithValue(ctx, scriptKey{}, src)
}

// Script returns the script source set with WithScript.
func Script(ctx context.Context) (string, bool) {
	src, ok := ctx.Value(scriptKey{}).(string)
	return src, ok && src != ""
}

// Layout wraps body in the shared page chrome.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var script string
		if src, ok := Script(ctx); ok {
			script = fmt.Sprintf(`<script src="%s" defer></script>`, templ.EscapeString(src))
		}
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html><head><meta charset="utf-8"><title>%s</title>%s</head><body>`+
				`<div id="hd"><a href="/">Home</a> <a href="/contact">Contact</a></div><div id="bd">`,
			templ.EscapeString(title), script); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></body></html>`)
		return err
	})
}

// IndexData is the reading progress shown on the home page.
type IndexData struct {
	Book     reading.Book
	Deadline reading.Deadline
	Status   string
	Percent  float64
	Graph    string
	Entries  []reading.Entry
}

// Index renders the progress page with the page entry form.
func Index(d IndexData) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<h1>%s</h1>`, templ.EscapeString(d.Book.Title))
		fmt.Fprintf(&b, `<p class="status">%s: %.1f%% <span id="graph">%s</span></p>`,
			templ.EscapeString(d.Status), d.Percent, templ.EscapeString(d.Graph))
		fmt.Fprintf(&b, `<p class="deadline">%s</p>`, templ.EscapeString(d.Deadline.String()))
		b.WriteString(`<form method="post" action="/entries">` +
			`<label for="page">Page</label> <input class="first" type="text" id="page" name="page"> ` +
			`<button type="submit">Record</button></form>`)
		if len(d.Entries) > 0 {
			b.WriteString(`<ul class="entries">`)
			for _, e := range d.Entries {
				fmt.Fprintf(&b, `<li>Page %d <time datetime="%s">%s</time></li>`,
					e.Page, e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"), e.CreatedAt.Format("Jan 2, 15:04"))
			}
			b.WriteString(`</ul>`)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
	return Layout(d.Book.Title, body)
}

// Contact renders the contact form.
func Contact() templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Contact</h1><form method="post" action="/contact">`+
			`<label for="from">From</label> <input class="first" type="email" id="from" name="from">`+
			`<label for="subject">Subject</label> <input type="text" id="subject" name="subject">`+
			`<label for="body">Message</label> <textarea id="body" name="body"></textarea>`+
			`<button type="submit">Send</button></form>`)
		return err
	})
	return Layout("Contact", body)
}

// Error renders an error page with a heading and a detail line.
func Error(header, detail string) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>%s</h1><p class="detail">%s</p>`,
			templ.EscapeString(header), templ.EscapeString(detail))
		return err
	})
	return Layout(header, body)
}
