package server

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
)

// StaticFileServer serves the frontend from a directory, falling back to
// index.html for unknown paths so client-side routing works. A missing
// directory disables static serving instead of failing the process; the
// game API and socket stay usable without a bundled frontend.
func StaticFileServer(dir string, fallbackPath string) http.Handler {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Printf("Server: static directory %s does not exist, static serving disabled", dir)
		return http.NotFoundHandler()
	}

	fs := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(filepath.Join(dir, r.URL.Path)); err == nil {
			fs.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, fallbackPath))
	})
}
