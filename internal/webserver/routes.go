package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/solarreach/goalscan/internal/webapi"
)

// registerRoutes mounts the goal API and a JSON 404 for everything else.
func registerRoutes(mux *http.ServeMux, cfg Config) {
	webapi.RegisterRoutes(mux, cfg.Store, cfg.Scanner, cfg.Logger)
	mux.HandleFunc("/", handleNotFound)
}

// handleNotFound keeps unknown paths JSON-shaped so API clients never have
// to parse an HTML error page.
func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(webapi.ErrorResponse{ //nolint:errcheck
		Error: "not found",
		Code:  http.StatusNotFound,
	})
}
