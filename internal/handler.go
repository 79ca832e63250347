package internal

import (
	"context"
	"io"
)

// Handler declares routes on a router.
//
// Example:
//
//	type EntryHandler struct {
//	    log *reading.Log
//	}
//
//	func (h *EntryHandler) Routes(r flashkit.Router) {
//	    r.POST("/entries", h.create)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands the error to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error

// Component is anything that renders HTML. templ.Component satisfies it.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}
