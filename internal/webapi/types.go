package webapi

import (
	"encoding/json"

	"github.com/solarreach/goalscan/internal/models"
)

// GoalsResponse is returned by the read-goals endpoint.
type GoalsResponse struct {
	Goals []models.Goal `json:"goals"`
}

// ReplaceGoalsRequest is the body accepted by the replace-goals endpoint.
// Goals is kept raw so a non-array payload can be rejected before decoding.
type ReplaceGoalsRequest struct {
	Goals json.RawMessage `json:"goals"`
}

// OKResponse acknowledges a successful write.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ReportResponse is returned by the scan endpoint.
type ReportResponse struct {
	Goals []models.ReportEntry `json:"goals"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
