package reporting

import (
	"fmt"
	"strings"

	"github.com/solarreach/goalscan/internal/models"
)

// InterpretSummary returns a plain-language verdict for a whole report.
func InterpretSummary(s Summary) string {
	switch {
	case s.Total == 0:
		return "No goals are tracked yet."
	case s.Achieved == s.Total:
		return fmt.Sprintf("All %d goals achieved.", s.Total)
	case s.NotAchieved == 0:
		return fmt.Sprintf("No failing goals, %d need review.", s.Warning)
	default:
		return fmt.Sprintf("%d of %d goals not achieved.", s.NotAchieved, s.Total)
	}
}

// StatusIcon returns the marker used for a status in text output.
func StatusIcon(s models.Status) string {
	switch s {
	case models.StatusAchieved:
		return "✓"
	case models.StatusWarning:
		return "!"
	default:
		return "✗"
	}
}

// FormatSummaryReport produces a plain-language interpretation of a report.
func FormatSummaryReport(entries []models.ReportEntry) string {
	var b strings.Builder
	s := Summarize(entries)

	b.WriteString("=== Interpretation ===\n\n")
	b.WriteString(InterpretSummary(s))
	b.WriteString("\n")
	if s.Total > 0 {
		b.WriteString(fmt.Sprintf("Goals: %d achieved, %d warning, %d not achieved out of %d total\n",
			s.Achieved, s.Warning, s.NotAchieved, s.Total))
	}

	var failing []models.ReportEntry
	for _, e := range entries {
		if e.Status != models.StatusAchieved {
			failing = append(failing, e)
		}
	}
	if len(failing) > 0 {
		b.WriteString("\nWhat to fix:\n")
		for _, e := range failing {
			b.WriteString(fmt.Sprintf("  %s %s: %s\n", StatusIcon(e.Status), e.ID, e.ClashDescription))
			if e.Guidance != "" {
				b.WriteString(fmt.Sprintf("      → %s\n", e.Guidance))
			}
		}
	}
	return b.String()
}
