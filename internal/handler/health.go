package handler

import "net/http"

// Version is reported by the health endpoint. Overridable at build time:
//
//	go build -ldflags "-X .../internal/handler.Version=1.2.3"
var Version = "1.0.0"

// health handles GET /api/health.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": Version,
	})
}
