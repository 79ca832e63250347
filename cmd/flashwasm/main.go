//go:build js && wasm

// Command flashwasm runs the page-ready routine in the browser: it focuses
// the first ".first" field, draws the "#graph" sparkline and shows the
// flash_message cookie as a dismissible banner.
//
// Build with GOOS=js GOARCH=wasm and load it next to wasm_exec.js.
package main

import (
	"context"
	"log/slog"
	"syscall/js"

	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/page"
)

func main() {
	doc := js.Global().Get("document")
	log := logger.New(logger.WithWriter(consoleWriter{}), logger.WithTextFormat())

	ready := func() {
		res := page.Ready(context.Background(), newTree(doc), documentJar{doc: doc}, page.WithLogger(log))
		log.Debug("page ready",
			slog.Bool("focused", res.Focused),
			slog.Bool("graph", res.Graph),
			slog.Bool("flash", res.Flash),
			slog.Bool("attached", res.Attached),
		)
	}

	if doc.Get("readyState").String() == "loading" {
		var onReady js.Func
		onReady = js.FuncOf(func(js.Value, []js.Value) any {
			onReady.Release()
			ready()
			return nil
		})
		doc.Call("addEventListener", "DOMContentLoaded", onReady)
	} else {
		ready()
	}

	// Click handlers call back into Go for the lifetime of the page.
	select {}
}

// documentJar is the document.cookie jar.
type documentJar struct {
	doc js.Value
}

func (j documentJar) Cookie() string {
	return j.doc.Get("cookie").String()
}

func (j documentJar) SetCookie(assignment string) {
	j.doc.Set("cookie", assignment)
}

// consoleWriter sends log lines to console.log.
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", string(p))
	return len(p), nil
}
