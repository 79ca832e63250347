package flashkit_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashkit"
	"github.com/dmitrymomot/flashkit/middlewares"
	"github.com/dmitrymomot/flashkit/pkg/dom"
	"github.com/dmitrymomot/flashkit/pkg/flash"
)

type contactHandler struct{}

func (contactHandler) Routes(r flashkit.Router) {
	r.GET("/", func(c flashkit.Context) error {
		return c.Render(http.StatusOK, page(`<div id="bd"><p>home</p></div>`))
	})
	r.POST("/contact", func(c flashkit.Context) error {
		if err := c.SetFlash("Your message was successfully sent."); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/")
	})
	r.GET("/broken", func(c flashkit.Context) error {
		return errors.New("disk full")
	})
	r.GET("/gone", func(c flashkit.Context) error {
		return flashkit.ErrNotFound("That page was removed.", flashkit.WithTitle("Gone"))
	})
}

type page string

func (p page) Render(_ context.Context, w io.Writer) error {
	_, err := w.Write([]byte("<html><body>" + string(p) + "</body></html>"))
	return err
}

func TestApp_FlashRoundTrip(t *testing.T) {
	t.Parallel()

	app := flashkit.New(
		flashkit.WithHTTPMiddleware(middlewares.PageReady()),
		flashkit.WithHandlers(contactHandler{}),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contact", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	var stored *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == flash.CookieName {
			stored = c
		}
	}
	require.NotNil(t, stored)
	assert.False(t, stored.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: stored.Name, Value: stored.Value})
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := dom.ParseString(rec.Body.String())
	require.NoError(t, err)
	banner := doc.Find("#bd > #flash-message")
	require.Len(t, banner, 1)
	assert.Equal(t, "XYour message was successfully sent.", doc.Text(banner[0]))

	var erased bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == flash.CookieName && c.MaxAge < 0 {
			erased = true
		}
	}
	assert.True(t, erased)
}

func TestApp_Errors(t *testing.T) {
	t.Parallel()

	app := flashkit.New(flashkit.WithHandlers(contactHandler{}))

	tests := []struct {
		path string
		code int
		body string
	}{
		{path: "/broken", code: http.StatusInternalServerError, body: "An unexpected error occurred. Please try again."},
		{path: "/gone", code: http.StatusNotFound, body: "That page was removed."},
		{path: "/nowhere", code: http.StatusNotFound, body: "Sorry, we couldn't find your document."},
	}

	for _, tt := range tests {
		t.Run(strings.TrimPrefix(tt.path, "/"), func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestToHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	herr := flashkit.ToHTTPError(cause)
	require.NotNil(t, herr)
	assert.Equal(t, http.StatusInternalServerError, herr.Code)
	assert.Equal(t, "Server Error", herr.StatusText())
	assert.ErrorIs(t, herr, cause)

	notFound := flashkit.ErrNotFound("missing")
	assert.Same(t, notFound, flashkit.AsHTTPError(notFound))
}
