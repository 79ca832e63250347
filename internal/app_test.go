package internal_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashkit/internal"
	"github.com/dmitrymomot/flashkit/pkg/cookie"
)

type testHandler struct{}

func (testHandler) Routes(r internal.Router) {
	r.GET("/", func(c internal.Context) error {
		return c.String(http.StatusOK, "home")
	})
	r.GET("/fail", func(c internal.Context) error {
		return errors.New("database on fire")
	})
	r.GET("/missing", func(c internal.Context) error {
		return c.Error(http.StatusNotFound, "no such book")
	})
	r.POST("/flash", func(c internal.Context) error {
		if err := c.SetFlash(c.Form("message")); err != nil {
			return internal.ErrBadRequest("empty message", internal.WithError(err))
		}
		return c.Redirect(http.StatusFound, "/")
	})
	r.POST("/flash-md", func(c internal.Context) error {
		if err := c.SetFlashMarkdown(c.Form("message")); err != nil {
			return err
		}
		return c.Redirect(http.StatusFound, "/")
	})
	r.GET("/flash", func(c internal.Context) error {
		msg, err := c.Flash()
		if errors.Is(err, cookie.ErrNotFound) {
			return c.NoContent(http.StatusNoContent)
		}
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, msg)
	})
	r.Route("/books", func(r internal.Router) {
		r.GET("/{slug}", func(c internal.Context) error {
			return c.String(http.StatusOK, c.Param("slug"))
		})
	})
	r.Group(func(r internal.Router) {
		r.Use(tag("group"))
		r.GET("/tagged", func(c internal.Context) error {
			v, _ := c.Get(tagKey{}).(string)
			return c.String(http.StatusOK, v)
		}, tag("route"))
	})
}

type tagKey struct{}

func tag(v string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			tags := v
			if prev, _ := c.Get(tagKey{}).(string); prev != "" {
				tags = prev + "," + v
			}
			c.Set(tagKey{}, tags)
			return next(c)
		}
	}
}

func serve(t *testing.T, app http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestAppRouting(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(testHandler{}))

	rec := serve(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "home", rec.Body.String())

	rec = serve(t, app, http.MethodGet, "/books/infinite-jest", nil)
	assert.Equal(t, "infinite-jest", rec.Body.String())

	rec = serve(t, app, http.MethodGet, "/tagged", nil)
	assert.Equal(t, "group,route", rec.Body.String())
}

func TestAppDefaultErrors(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(testHandler{}))

	rec := serve(t, app, http.MethodGet, "/fail", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "database on fire")

	rec = serve(t, app, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no such book", rec.Body.String())

	rec = serve(t, app, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, app, http.MethodDelete, "/", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAppCustomErrorHandler(t *testing.T) {
	t.Parallel()

	var seen error
	app := internal.New(
		internal.WithHandlers(testHandler{}),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			seen = err
			he := internal.ToHTTPError(err)
			return c.String(he.Code, "custom: "+he.StatusText())
		}),
		internal.WithNotFoundHandler(func(c internal.Context) error {
			return c.String(http.StatusNotFound, "custom 404")
		}),
	)

	rec := serve(t, app, http.MethodGet, "/fail", nil)
	assert.Equal(t, "custom: Server Error", rec.Body.String())
	assert.EqualError(t, seen, "database on fire")

	rec = serve(t, app, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, "custom 404", rec.Body.String())
}

func TestAppFlash(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithHandlers(testHandler{}),
		internal.WithCookieOptions(cookie.WithSecure(true)),
	)

	form := url.Values{"message": {"Your message was successfully sent."}}
	rec := serve(t, app, http.MethodPost, "/flash", strings.NewReader(form.Encode()))
	require.Equal(t, http.StatusFound, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookie.FlashName, cookies[0].Name)
	assert.Equal(t, "Your%20message%20was%20successfully%20sent.", cookies[0].Value)
	assert.False(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)

	req := httptest.NewRequest(http.MethodGet, "/flash", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Equal(t, "Your message was successfully sent.", rec.Body.String())
	deleted := rec.Result().Cookies()
	require.Len(t, deleted, 1)
	assert.Equal(t, -1, deleted[0].MaxAge)

	rec = serve(t, app, http.MethodGet, "/flash", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAppFlashValidation(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(testHandler{}))

	rec := serve(t, app, http.MethodPost, "/flash", strings.NewReader("message=+"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAppFlashMarkdown(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(testHandler{}))

	form := url.Values{"message": {"Recorded page **42**."}}
	rec := serve(t, app, http.MethodPost, "/flash-md", strings.NewReader(form.Encode()))
	require.Equal(t, http.StatusFound, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "Recorded%20page%20%3Cstrong%3E42%3C/strong%3E.", cookies[0].Value)
}

func TestAppHealth(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHealthChecks(
		internal.WithReadinessCheck("jar", func(context.Context) error { return errors.New("closed") }),
		internal.WithLivenessPath("/livez"),
	))

	rec := serve(t, app, http.MethodGet, "/livez", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, app, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAppHTTPMiddlewareRunsFirst(t *testing.T) {
	t.Parallel()

	var order []string
	app := internal.New(
		internal.WithHandlers(testHandler{}),
		internal.WithMiddleware(func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				order = append(order, "middleware")
				return next(c)
			}
		}),
		internal.WithHTTPMiddleware(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, "http")
				next.ServeHTTP(w, r)
			})
		}),
	)

	serve(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, []string{"http", "middleware"}, order)
}
