package checks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"

	"github.com/solarreach/goalscan/internal/corpus"
	"github.com/solarreach/goalscan/internal/models"
)

// TimestampSourceID is the goal id of the "Last Updated" source detector.
const TimestampSourceID = "timestamp-source"

const (
	DefaultTimestampLabel  = "Last Updated"
	DefaultTimestampFile   = "src/lib/gmb-status.ts"
	DefaultTimestampField  = `\blastSyncedAt\b`
	DefaultTimestampWindow = 10
)

// TimestampSourceArgs holds the arguments for the timestamp-source detector.
type TimestampSourceArgs struct {
	// UIDirs are searched for the label.
	UIDirs []string `mapstructure:"ui_dirs"`
	// Label is the literal UI text announcing a timestamp.
	Label string `mapstructure:"label"`
	// File is the module that must read the status timestamp field.
	File string `mapstructure:"file"`
	// Field is a regular expression for a reference to the status timestamp.
	Field string `mapstructure:"field"`
	// Window is how many lines above and below a label are searched for Field.
	Window int `mapstructure:"window"`
}

// TimestampSourceDetector cross-references two independent signals: every
// place the label is rendered should sit near a reference to the sync
// timestamp, and the status module must read that timestamp at all.
type TimestampSourceDetector struct {
	uiDirs    []string
	labelText string
	label     *regexp.Regexp
	file      string
	field     *regexp.Regexp
	window    int
}

// NewTimestampSourceDetector creates a [TimestampSourceDetector].
func NewTimestampSourceDetector(args TimestampSourceArgs) (*TimestampSourceDetector, error) {
	fieldExpr := orDefaultString(args.Field, DefaultTimestampField)
	field, err := regexp.Compile(fieldExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp field pattern %q: %w", fieldExpr, err)
	}
	if args.Window < 0 {
		return nil, fmt.Errorf("timestamp window must not be negative, got %d", args.Window)
	}
	window := args.Window
	if window == 0 {
		window = DefaultTimestampWindow
	}
	label := orDefaultString(args.Label, DefaultTimestampLabel)
	return &TimestampSourceDetector{
		uiDirs:    orDefault(args.UIDirs, DefaultUIDirs),
		labelText: label,
		label:     regexp.MustCompile(regexp.QuoteMeta(label)),
		file:      orDefaultString(args.File, DefaultTimestampFile),
		field:     field,
		window:    window,
	}, nil
}

var _ Detector = (*TimestampSourceDetector)(nil)

func (*TimestampSourceDetector) ID() string { return TimestampSourceID }

func (*TimestampSourceDetector) Metadata() Metadata {
	return Metadata{
		Title:       "\"Last Updated\" shows the real sync time",
		Description: "Every \"Last Updated\" label must be backed by the Google Business Profile sync timestamp, not the page render time.",
		Category:    "data",
		Guidance:    "Read lastSyncedAt from the status payload and pass it to the component that renders the label.",
	}
}

func (d *TimestampSourceDetector) Run(_ context.Context, c *corpus.Corpus) models.ScanResult {
	files, err := c.Files(d.uiDirs...)
	if err != nil {
		return failClosed(c, err)
	}

	var labels, suspicious []models.Evidence
	for _, f := range files {
		lines, err := corpus.ReadLines(f)
		if err != nil {
			return failClosed(c, err)
		}
		for i, line := range lines {
			if !d.label.MatchString(line) {
				continue
			}
			ev := models.Evidence{
				File:    c.Rel(f),
				Line:    i + 1,
				Snippet: corpus.Truncate(line, corpus.MaxSnippetLen),
			}
			labels = append(labels, ev)
			if !d.fieldNear(lines, i) {
				suspicious = append(suspicious, ev)
			}
		}
	}

	correct, err := d.usesField(c)
	if err != nil {
		return failClosed(c, err)
	}

	switch {
	case correct && len(suspicious) == 0:
		return achieved()
	case correct:
		return models.ScanResult{
			Status:   models.StatusWarning,
			Evidence: suspicious,
			Notes: fmt.Sprintf("%d of %d %q label(s) have no timestamp reference within %d lines",
				len(suspicious), len(labels), d.labelText, d.window),
		}
	case len(suspicious) > 0:
		return notAchieved(fmt.Sprintf("%s does not reference the sync timestamp", d.file), suspicious...)
	default:
		return notAchieved(fmt.Sprintf("%s does not reference the sync timestamp", d.file), models.Evidence{
			File:    d.file,
			Snippet: fmt.Sprintf("expected a match for %s", d.field.String()),
		})
	}
}

// fieldNear reports whether the field appears within the window around line i.
func (d *TimestampSourceDetector) fieldNear(lines []string, i int) bool {
	lo := max(0, i-d.window)
	hi := min(len(lines)-1, i+d.window)
	for j := lo; j <= hi; j++ {
		if d.field.MatchString(lines[j]) {
			return true
		}
	}
	return false
}

// usesField reports whether the status module references the field. A
// missing module counts as incorrect usage rather than a failure.
func (d *TimestampSourceDetector) usesField(c *corpus.Corpus) (bool, error) {
	lines, err := corpus.ReadLines(c.Path(d.file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	for _, line := range lines {
		if d.field.MatchString(line) {
			return true, nil
		}
	}
	return false, nil
}
