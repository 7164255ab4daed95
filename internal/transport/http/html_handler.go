package http

import (
	"net/http"
	"os"
	"path/filepath"
)

// ServeDashboardPage serves the dashboard single page
func ServeDashboardPage(webDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pagePath := filepath.Join(webDir, "templates", "dashboard.html")

		if _, err := os.Stat(pagePath); os.IsNotExist(err) {
			http.Error(w, "Dashboard page not found", http.StatusNotFound)
			return
		}

		serveHTML(w, r, pagePath)
	}
}

func serveHTML(w http.ResponseWriter, r *http.Request, path string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	http.ServeFile(w, r, path)
}
