package models

import "time"

// Status is the three-state verdict a detector reaches for a goal.
type Status string

const (
	StatusAchieved    Status = "achieved"
	StatusWarning     Status = "warning"
	StatusNotAchieved Status = "not_achieved"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusAchieved, StatusWarning, StatusNotAchieved:
		return true
	}
	return false
}

// Goal is a declared product or quality requirement tracked for completion.
type Goal struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Guidance    string `json:"guidance"`
}

// Evidence points at a single source line supporting a verdict.
type Evidence struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Snippet string `json:"snippet"`
}

// ScanResult is the live outcome of one detector run.
type ScanResult struct {
	Status   Status     `json:"status"`
	Evidence []Evidence `json:"evidence"`
	Notes    string     `json:"notes,omitempty"`
}

// ReportEntry is a goal merged with its latest scan result.
type ReportEntry struct {
	Goal
	Status           Status     `json:"status"`
	Evidence         []Evidence `json:"evidence"`
	Notes            string     `json:"notes,omitempty"`
	LastChecked      time.Time  `json:"lastChecked"`
	ClashDescription string     `json:"clashDescription"`
}
