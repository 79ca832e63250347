package middlewares

import (
	"bytes"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/flashkit/pkg/dom"
	"github.com/dmitrymomot/flashkit/pkg/jar"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/page"
)

// DefaultPageReadyMaxBody is the largest HTML body rewritten on the server.
const DefaultPageReadyMaxBody = 2 << 20

// PageReadyConfig configures the PageReady middleware.
type PageReadyConfig struct {
	Logger       *slog.Logger
	PageOptions  []page.Option
	MaxBody      int
	SecureCookie bool
}

// PageReadyOption configures PageReadyConfig.
type PageReadyOption func(*PageReadyConfig)

// WithPageReadyLogger sets the logger passed to the page routine.
func WithPageReadyLogger(l *slog.Logger) PageReadyOption {
	return func(cfg *PageReadyConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithPageOptions configures the page-ready routine.
func WithPageOptions(opts ...page.Option) PageReadyOption {
	return func(cfg *PageReadyConfig) {
		cfg.PageOptions = append(cfg.PageOptions, opts...)
	}
}

// WithPageReadyMaxBody sets the body size above which pages pass through.
func WithPageReadyMaxBody(n int) PageReadyOption {
	return func(cfg *PageReadyConfig) {
		if n > 0 {
			cfg.MaxBody = n
		}
	}
}

// WithPageReadySecureCookies marks the cookie erasures it emits as Secure.
func WithPageReadySecureCookies(secure bool) PageReadyOption {
	return func(cfg *PageReadyConfig) {
		cfg.SecureCookie = secure
	}
}

// PageReady runs the page-ready routine on HTML responses before they leave
// the server: the flash banner, focus and sparkline are rendered into the
// markup and the flash cookie is erased with a Set-Cookie header. Redirects,
// HEAD requests, non-HTML and oversized bodies pass through untouched.
func PageReady(opts ...PageReadyOption) func(http.Handler) http.Handler {
	cfg := &PageReadyConfig{
		Logger:  logger.NewNope(),
		MaxBody: DefaultPageReadyMaxBody,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			buf := &bufferedWriter{header: w.Header(), status: http.StatusOK}
			next.ServeHTTP(buf, r)

			body := buf.body.Bytes()
			if !rewritable(buf.status, w.Header(), len(body), cfg.MaxBody) {
				buf.flushTo(w, body)
				return
			}

			doc, err := dom.Parse(bytes.NewReader(body))
			if err != nil {
				cfg.Logger.WarnContext(r.Context(), "page ready skipped", slog.String("error", err.Error()))
				buf.flushTo(w, body)
				return
			}

			cookies := jar.NewHTTP(w, r, jar.WithSecureCookies(cfg.SecureCookie))
			pageOpts := append([]page.Option{page.WithLogger(cfg.Logger)}, cfg.PageOptions...)
			page.Ready(r.Context(), doc, cookies, pageOpts...)

			var out bytes.Buffer
			if err := doc.Render(&out); err != nil {
				cfg.Logger.ErrorContext(r.Context(), "page ready render failed", slog.String("error", err.Error()))
				buf.flushTo(w, body)
				return
			}
			buf.flushTo(w, out.Bytes())
		})
	}
}

func rewritable(status int, h http.Header, size, limit int) bool {
	if size == 0 || size > limit {
		return false
	}
	if status < http.StatusOK || status == http.StatusNoContent || status == http.StatusPartialContent ||
		(status >= http.StatusMultipleChoices && status < http.StatusBadRequest) {
		return false
	}
	if h.Get("Content-Encoding") != "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(h.Get("Content-Type"))
	return err == nil && mt == "text/html"
}

// bufferedWriter holds the response until the page routine has run.
// It shares the header map with the real writer so Set-Cookie headers
// emitted later still land in the response.
type bufferedWriter struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func (b *bufferedWriter) Header() http.Header {
	return b.header
}

func (b *bufferedWriter) WriteHeader(code int) {
	if b.wroteHeader {
		return
	}
	b.wroteHeader = true
	b.status = code
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	b.wroteHeader = true
	return b.body.Write(p)
}

func (b *bufferedWriter) flushTo(w http.ResponseWriter, body []byte) {
	if len(body) > 0 {
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	}
	w.WriteHeader(b.status)
	_, _ = w.Write(body)
}
