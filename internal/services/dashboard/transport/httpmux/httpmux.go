// Package httpmux mounts dashboard route groups onto a root mux.
package httpmux

import (
	"io/fs"
	"net/http"

	"github.com/louisbranch/adpulse/internal/services/dashboard/routepath"
)

// MountStatic wires static asset serving into the root mux. Assets are
// immutable per build, so withCache may add caching headers.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS, withCache func(http.Handler) http.Handler) {
	if rootMux == nil || staticFS == nil {
		return
	}
	staticHandler := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(staticFS)))
	if withCache != nil {
		staticHandler = withCache(staticHandler)
	}
	rootMux.Handle(http.MethodGet+" "+routepath.StaticPrefix, staticHandler)
}

// MountHealth answers liveness probes.
func MountHealth(rootMux *http.ServeMux) {
	if rootMux == nil {
		return
	}
	rootMux.HandleFunc(http.MethodGet+" "+routepath.Healthz, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
}

// MountApp mounts application routes under the root path.
func MountApp(rootMux *http.ServeMux, app http.Handler) {
	if rootMux == nil || app == nil {
		return
	}
	rootMux.Handle(routepath.Root, app)
}
