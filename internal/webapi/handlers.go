// Package webapi exposes the goal store and the goal scanner over HTTP.
package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/solarreach/goalscan/internal/goals"
	"github.com/solarreach/goalscan/internal/models"
)

// Version is set at build time or defaults to dev.
var Version = "dev"

// maxBodyBytes caps the replace-goals payload.
const maxBodyBytes = 1 << 20

// ReportScanner produces a fresh goal report.
type ReportScanner interface {
	Scan(ctx context.Context) ([]models.ReportEntry, error)
}

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store   goals.GoalStore
	scanner ReportScanner
	logger  *slog.Logger
}

// NewHandlers creates a new Handlers with the given store and scanner.
func NewHandlers(store goals.GoalStore, scanner ReportScanner, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{store: store, scanner: scanner, logger: logger}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleGetGoals returns the stored goal definitions.
func (h *Handlers) HandleGetGoals(w http.ResponseWriter, _ *http.Request) {
	list, err := h.store.Load()
	if err != nil {
		h.logger.Error("loading goals", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read goals")
		return
	}
	writeJSON(w, http.StatusOK, GoalsResponse{Goals: list})
}

// HandleReplaceGoals overwrites the stored goals with the posted array.
func (h *Handlers) HandleReplaceGoals(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req ReplaceGoalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.store.SaveRaw(req.Goals); err != nil {
		if errors.Is(err, goals.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("saving goals", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save goals")
		return
	}
	h.logger.Info("goals replaced")
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}

// HandleScan runs every detector and returns the merged report.
func (h *Handlers) HandleScan(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scanner.Scan(r.Context())
	if err != nil {
		h.logger.Error("scanning goals", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to scan goals")
		return
	}
	writeJSON(w, http.StatusOK, ReportResponse{Goals: entries})
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store goals.GoalStore, scanner ReportScanner, logger *slog.Logger) {
	h := NewHandlers(store, scanner, logger)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/goals", h.HandleGetGoals)
	mux.HandleFunc("POST /api/goals", h.HandleReplaceGoals)
	mux.HandleFunc("GET /api/goals/scan", h.HandleScan)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
