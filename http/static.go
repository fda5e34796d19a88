package http

import (
	"net/http"
	"path/filepath"
)

const clientIndex = "app.html"

// newClientHandler 提供静态客户端，根路径返回app.html
func newClientHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.ServeFile(w, r, filepath.Join(dir, clientIndex))
			return
		}
		files.ServeHTTP(w, r)
	})
}
