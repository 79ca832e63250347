package handlers

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/flashkit/internal"
	"github.com/dmitrymomot/flashkit/internal/views"
)

// Browser bundle files built into the static directory by go generate.
var bundle = []string{"flashwasm.js", "flashwasm.wasm", "wasm_exec.js"}

// Static serves files from dir under /static/, where the layout loads the
// browser page-ready binary. Directory listings are disabled.
type Static struct {
	dir string
}

// NewStatic returns a static file handler for dir.
func NewStatic(dir string) *Static {
	return &Static{dir: dir}
}

// Routes implements internal.Handler.
func (h *Static) Routes(r internal.Router) {
	files := http.FileServer(noListing{http.Dir(h.dir)})
	r.Mount("/static", http.StripPrefix("/static", files))
}

// Bundled reports whether dir holds every file of the browser bundle.
func (h *Static) Bundled() bool {
	for _, name := range bundle {
		st, err := os.Stat(filepath.Join(h.dir, name))
		if err != nil || st.IsDir() {
			return false
		}
	}
	return true
}

// ScriptMiddleware makes pages load the browser bundle when it is present.
// The check runs once; without a bundle the middleware is a no-op.
func (h *Static) ScriptMiddleware() func(http.Handler) http.Handler {
	bundled := h.Bundled()
	return func(next http.Handler) http.Handler {
		if !bundled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(views.WithScript(r.Context(), views.ScriptPath)))
		})
	}
}

type noListing struct {
	root http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.root.Open(name)
	if err != nil {
		return nil, err
	}
	if st, err := f.Stat(); err == nil && st.IsDir() {
		_ = f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
