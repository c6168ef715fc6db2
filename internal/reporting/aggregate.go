// Package reporting merges stored goals with live detector results and
// renders the merged report for people and CI systems.
package reporting

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/solarreach/goalscan/internal/checks"
	"github.com/solarreach/goalscan/internal/models"
)

// NoScannerNote is attached to goals that have no registered detector.
const NoScannerNote = "No scanner implemented for this goal"

// Aggregate merges goals with detector results into report entries. Stored
// goals come first in document order, followed by detector ids missing from
// the store in registry order. Every entry is stamped with now.
func Aggregate(goals []models.Goal, reg *checks.Registry, results map[string]models.ScanResult, now time.Time) []models.ReportEntry {
	entries := make([]models.ReportEntry, 0, len(goals)+reg.Len())
	seen := make(map[string]bool, len(goals)+reg.Len())

	for _, g := range goals {
		if seen[g.ID] {
			slog.Warn("duplicate goal id in store, keeping first definition", "id", g.ID)
			continue
		}
		seen[g.ID] = true

		var result models.ScanResult
		if _, registered := reg.Get(g.ID); registered {
			result = resultFor(results, g.ID)
		} else {
			result = models.ScanResult{Status: models.StatusWarning, Notes: NoScannerNote}
		}
		entries = append(entries, newEntry(g, result, now))
	}

	for _, d := range reg.Detectors() {
		if seen[d.ID()] {
			continue
		}
		seen[d.ID()] = true

		md := d.Metadata()
		g := models.Goal{
			ID:          d.ID(),
			Title:       md.Title,
			Description: md.Description,
			Category:    md.Category,
			Guidance:    md.Guidance,
		}
		entries = append(entries, newEntry(g, resultFor(results, d.ID()), now))
	}

	return entries
}

// resultFor returns the detector result for id, or a not_achieved result when
// the detector produced none.
func resultFor(results map[string]models.ScanResult, id string) models.ScanResult {
	if r, ok := results[id]; ok {
		return r
	}
	return models.ScanResult{Status: models.StatusNotAchieved, Notes: "detector did not run"}
}

func newEntry(g models.Goal, r models.ScanResult, now time.Time) models.ReportEntry {
	evidence := r.Evidence
	if evidence == nil {
		evidence = []models.Evidence{}
	}
	return models.ReportEntry{
		Goal:             g,
		Status:           r.Status,
		Evidence:         evidence,
		Notes:            r.Notes,
		LastChecked:      now,
		ClashDescription: Describe(r),
	}
}

// Describe summarizes a scan result in one human-readable sentence.
func Describe(r models.ScanResult) string {
	if r.Status == models.StatusAchieved {
		return "No issues detected"
	}
	if len(r.Evidence) == 0 {
		if r.Notes != "" {
			return r.Notes
		}
		if r.Status == models.StatusWarning {
			return "Needs review"
		}
		return "Goal not achieved"
	}

	first := r.Evidence[0]
	where := first.File
	if first.Line > 0 {
		where = fmt.Sprintf("%s:%d", first.File, first.Line)
	}
	noun := "issue"
	if r.Status == models.StatusWarning {
		noun = "potential issue"
	}
	return fmt.Sprintf("%d %s(s) found, first at %s: %s",
		len(r.Evidence), noun, where, strings.TrimSpace(first.Snippet))
}

// Summary counts report entries per status.
type Summary struct {
	Total       int `json:"total"`
	Achieved    int `json:"achieved"`
	Warning     int `json:"warning"`
	NotAchieved int `json:"notAchieved"`
}

// Summarize counts entries per status.
func Summarize(entries []models.ReportEntry) Summary {
	s := Summary{Total: len(entries)}
	for _, e := range entries {
		switch e.Status {
		case models.StatusAchieved:
			s.Achieved++
		case models.StatusWarning:
			s.Warning++
		default:
			s.NotAchieved++
		}
	}
	return s
}
