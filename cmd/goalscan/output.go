package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/solarreach/goalscan/internal/models"
	"github.com/solarreach/goalscan/internal/reporting"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// maxIDWidth caps the id column so one long id can't push the table off screen.
const maxIDWidth = 32

// reportDocument is the JSON shape shared with GET /api/goals/scan.
type reportDocument struct {
	Goals []models.ReportEntry `json:"goals"`
}

func writeJSONReport(w io.Writer, entries []models.ReportEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reportDocument{Goals: entries}); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// writeTextReport prints one row per goal followed by the interpretation
// block. color adds ANSI status colours.
func writeTextReport(w io.Writer, root string, entries []models.ReportEntry, color bool) {
	fmt.Fprintf(w, "Goal Scan: %s\n", root) //nolint:errcheck
	if len(entries) > 0 {
		fmt.Fprintf(w, "Checked:   %s\n", entries[0].LastChecked.Format("2006-01-02 15:04:05 MST")) //nolint:errcheck
	}
	fmt.Fprintln(w) //nolint:errcheck

	idWidth := len("GOAL")
	for _, e := range entries {
		if sw := runewidth.StringWidth(truncateName(e.ID, maxIDWidth)); sw > idWidth {
			idWidth = sw
		}
	}
	statusWidth := len(models.StatusNotAchieved)

	fmt.Fprintf(w, "   %s  %s  %s\n", padRight("GOAL", idWidth), padRight("STATUS", statusWidth), "DETAILS") //nolint:errcheck
	for _, e := range entries {
		icon := reporting.StatusIcon(e.Status)
		status := padRight(string(e.Status), statusWidth)
		if color {
			c := statusColor(e.Status)
			icon = c + icon + colorReset
			status = c + status + colorReset
		}
		fmt.Fprintf(w, " %s %s  %s  %s\n", icon, padRight(truncateName(e.ID, maxIDWidth), idWidth), status, e.ClashDescription) //nolint:errcheck
	}
	fmt.Fprintln(w)                                       //nolint:errcheck
	fmt.Fprint(w, reporting.FormatSummaryReport(entries)) //nolint:errcheck
}

func statusColor(s models.Status) string {
	switch s {
	case models.StatusAchieved:
		return colorGreen
	case models.StatusWarning:
		return colorYellow
	default:
		return colorRed
	}
}

// truncateName shortens a name to maxLen runes, replacing the last rune with "…" if needed.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
