package handlers

import (
	"net/http"

	"github.com/dmitrymomot/flashkit/internal"
	"github.com/dmitrymomot/flashkit/internal/views"
)

// NotFoundMessage is the detail line of the 404 page.
const NotFoundMessage = "Sorry, we couldn't find your document."

// ErrorPage renders handler errors as the HTML error page. Server errors
// are logged with their cause; the reader only sees the generic message.
func ErrorPage(c internal.Context, err error) error {
	herr := internal.ToHTTPError(err)
	if herr.Code >= http.StatusInternalServerError {
		c.LogError("request failed",
			"error", err,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
		)
	}
	return c.Render(herr.Code, views.Error(herr.StatusText(), herr.Message))
}

// NotFound is the 404 handler.
func NotFound(c internal.Context) error {
	return internal.ErrNotFound(NotFoundMessage)
}
