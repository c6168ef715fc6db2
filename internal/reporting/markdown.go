package reporting

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/solarreach/goalscan/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// RenderMarkdown renders the report as a Markdown document.
func RenderMarkdown(entries []models.ReportEntry) string {
	var b strings.Builder
	s := Summarize(entries)

	b.WriteString("# Feature goal report\n\n")
	if len(entries) > 0 {
		fmt.Fprintf(&b, "_Checked %s._\n\n", entries[0].LastChecked.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "%s\n\n", InterpretSummary(s))

	b.WriteString("| Goal | Category | Status | Finding |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | %s %s | %s |\n",
			mdCell(titleOrID(e)), mdCell(e.Category), StatusIcon(e.Status), e.Status, mdCell(e.ClashDescription))
	}

	for _, e := range entries {
		if e.Status == models.StatusAchieved {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", mdText(titleOrID(e)))
		if e.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", mdText(e.Description))
		}
		if e.Notes != "" {
			fmt.Fprintf(&b, "**Notes:** %s\n\n", mdText(e.Notes))
		}
		if e.Guidance != "" {
			fmt.Fprintf(&b, "**Guidance:** %s\n\n", mdText(e.Guidance))
		}
		for _, ev := range e.Evidence {
			loc := ev.File
			if ev.Line > 0 {
				loc = fmt.Sprintf("%s:%d", ev.File, ev.Line)
			}
			fmt.Fprintf(&b, "- `%s` %s\n", strings.ReplaceAll(loc, "`", "'"), mdCode(ev.Snippet))
		}
	}
	return b.String()
}

// RenderHTML renders the Markdown report as a standalone HTML page.
func RenderHTML(entries []models.ReportEntry) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(RenderMarkdown(entries)), &body); err != nil {
		return "", fmt.Errorf("rendering HTML report: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString("Feature goal report"))
	b.WriteString("</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

func titleOrID(e models.ReportEntry) string {
	if e.Title != "" {
		return e.Title
	}
	return e.ID
}

// mdText neutralizes characters that would be read as inline HTML.
func mdText(s string) string {
	return html.EscapeString(s)
}

// mdCell escapes text for use inside a table cell.
func mdCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(mdText(s), "|", `\|`)
}

// mdCode wraps s in a code span, widening the fence when s contains backticks.
func mdCode(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	return fence + " " + s + " " + fence
}
