package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashkit/internal"
	"github.com/dmitrymomot/flashkit/internal/handlers"
	"github.com/dmitrymomot/flashkit/internal/reading"
	"github.com/dmitrymomot/flashkit/pkg/dom"
	"github.com/dmitrymomot/flashkit/pkg/escape"
	"github.com/dmitrymomot/flashkit/pkg/flash"
)

func newApp(t *testing.T) (*internal.App, *reading.Log) {
	t.Helper()

	log := reading.NewLog(reading.NewBook("Infinite Jest", 1079), reading.Deadline{StartPage: 100, Page: 200})
	app := internal.New(
		internal.WithHandlers(handlers.NewReading(log), handlers.NewContact()),
		internal.WithErrorHandler(handlers.ErrorPage),
		internal.WithNotFoundHandler(handlers.NotFound),
	)
	return app, log
}

func postForm(app http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func flashOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == flash.CookieName {
			return escape.Unescape(c.Value)
		}
	}
	t.Fatalf("no %s cookie", flash.CookieName)
	return ""
}

func TestReading_Index(t *testing.T) {
	t.Parallel()

	app, log := newApp(t)
	for _, p := range []int{50, 150} {
		_, err := log.Record(p)
		require.NoError(t, err)
	}

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc, err := dom.ParseString(rec.Body.String())
	require.NoError(t, err)
	graph, ok := doc.ByID("graph")
	require.True(t, ok)
	assert.Equal(t, "-1,0", doc.Text(graph))
	assert.Len(t, doc.Find("ul.entries li"), 2)
	assert.Contains(t, rec.Body.String(), reading.StatusOnTrack)
}

func TestReading_Record(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    string
		flash   string
		entries int
	}{
		{name: "recorded", page: "p. 150", flash: "Recorded page <strong>150</strong>.", entries: 1},
		{name: "empty", page: "", flash: "Please specify a page."},
		{name: "zero", page: "0", flash: "Please specify a page."},
		{name: "past the end", page: "2000", flash: "Infinite Jest only has 1079 pages."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app, log := newApp(t)
			rec := postForm(app, "/entries", url.Values{"page": {tt.page}})

			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/", rec.Header().Get("Location"))
			assert.Equal(t, tt.flash, flashOf(t, rec))
			assert.Len(t, log.Graph(), tt.entries)
		})
	}
}

func TestReading_GetEntriesRedirects(t *testing.T) {
	t.Parallel()

	app, _ := newApp(t)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/entries", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestContact(t *testing.T) {
	t.Parallel()

	app, _ := newApp(t)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contact", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/contact"`)

	rec = postForm(app, "/contact", url.Values{
		"from":    {"hal@example.com"},
		"subject": {"Tennis"},
		"body":    {"Page 42 is great."},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Your message was successfully sent.", flashOf(t, rec))
}

func TestNotFoundPage(t *testing.T) {
	t.Parallel()

	app, _ := newApp(t)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	doc, err := dom.ParseString(rec.Body.String())
	require.NoError(t, err)
	h1 := doc.Find("#bd h1")
	require.Len(t, h1, 1)
	assert.Equal(t, "Not Found", doc.Text(h1[0]))
	assert.Contains(t, rec.Body.String(), "Sorry, we couldn&#39;t find your document.")
}

func TestErrorPage_ServerError(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithErrorHandler(handlers.ErrorPage),
		internal.WithHandlers(failing{}),
	)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	doc, err := dom.ParseString(rec.Body.String())
	require.NoError(t, err)
	h1 := doc.Find("#bd h1")
	require.Len(t, h1, 1)
	assert.Equal(t, "Server Error", doc.Text(h1[0]))
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

type failing struct{}

func (failing) Routes(r internal.Router) {
	r.GET("/", func(c internal.Context) error {
		return assert.AnError
	})
}
