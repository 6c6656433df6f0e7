package server

import (
	"embed"
	"mime"
	"net/http"
	"path"
	"strings"
)

//go:embed static
var staticFiles embed.FS

// handleStatic serves the embedded UI. Unknown paths fall back to index.html
// so client-side routes resolve.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" || name == "." {
		name = "index.html"
	}
	b, err := staticFiles.ReadFile(path.Join("static", name))
	if err != nil {
		name = "index.html"
		if b, err = staticFiles.ReadFile("static/index.html"); err != nil {
			http.NotFound(w, r)
			return
		}
	}
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		w.Header().Set("Content-Type", t)
	}
	w.Write(b)
}
