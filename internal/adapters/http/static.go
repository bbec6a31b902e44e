package web

import (
	"net/http"
	"os"
	"path/filepath"
)

// registerStatic serves the built client app when PICKLE_STATIC_DIR is
// set. Paths that do not match a file fall back to index.html so
// client-side routes survive a refresh.
func registerStatic(mux *http.ServeMux) {
	dir := os.Getenv("PICKLE_STATIC_DIR")
	if dir == "" {
		return
	}
	fs := http.FileServer(http.Dir(dir))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		name := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	})
}
