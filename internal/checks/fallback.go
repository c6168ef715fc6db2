package checks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/solarreach/goalscan/internal/corpus"
	"github.com/solarreach/goalscan/internal/models"
)

// FallbackCopyID is the goal id of the empty-reviews copy detector.
const FallbackCopyID = "fallback-copy"

const DefaultFallbackFile = "src/components/ReviewsPanel.tsx"

var (
	DefaultFallbackRequired  = []string{"No reviews yet", "Connect your Google Business Profile"}
	DefaultFallbackForbidden = []string{"Reviews coming soon"}
)

// FallbackCopyArgs holds the arguments for the fallback-copy detector.
type FallbackCopyArgs struct {
	// File is the component that renders the empty-state copy.
	File string `mapstructure:"file"`
	// Required phrases must all be present.
	Required []string `mapstructure:"required"`
	// Forbidden phrases are legacy copy that must be gone.
	Forbidden []string `mapstructure:"forbidden"`
}

// FallbackCopyDetector checks one component for the current empty-state
// wording. A forbidden phrase short-circuits to not_achieved.
type FallbackCopyDetector struct {
	file      string
	required  []string
	forbidden []string
}

// NewFallbackCopyDetector creates a [FallbackCopyDetector].
func NewFallbackCopyDetector(args FallbackCopyArgs) *FallbackCopyDetector {
	return &FallbackCopyDetector{
		file:      orDefaultString(args.File, DefaultFallbackFile),
		required:  orDefault(args.Required, DefaultFallbackRequired),
		forbidden: orDefault(args.Forbidden, DefaultFallbackForbidden),
	}
}

var _ Detector = (*FallbackCopyDetector)(nil)

func (*FallbackCopyDetector) ID() string { return FallbackCopyID }

func (*FallbackCopyDetector) Metadata() Metadata {
	return Metadata{
		Title:       "Reviews panel explains how to get reviews",
		Description: "When no reviews are available the panel must tell the operator to connect their Google Business Profile instead of promising future content.",
		Category:    "reviews",
		Guidance:    "Replace the legacy \"Reviews coming soon\" text with the connect-your-profile empty state.",
	}
}

func (d *FallbackCopyDetector) Run(_ context.Context, c *corpus.Corpus) models.ScanResult {
	lines, err := corpus.ReadLines(c.Path(d.file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return notAchieved(fmt.Sprintf("%s not found", d.file), models.Evidence{
				File:    d.file,
				Snippet: "file not found",
			})
		}
		return failClosed(c, err)
	}

	for _, phrase := range d.forbidden {
		for i, line := range lines {
			if strings.Contains(line, phrase) {
				return notAchieved(fmt.Sprintf("legacy copy %q is still present", phrase), models.Evidence{
					File:    d.file,
					Line:    i + 1,
					Snippet: corpus.Truncate(line, corpus.MaxSnippetLen),
				})
			}
		}
	}

	content := strings.Join(lines, "\n")
	var missing []string
	for _, phrase := range d.required {
		if !strings.Contains(content, phrase) {
			missing = append(missing, phrase)
		}
	}
	if len(missing) == 0 {
		return achieved()
	}
	return notAchieved(fmt.Sprintf("missing required copy: %s", strings.Join(missing, ", ")), models.Evidence{
		File:    d.file,
		Snippet: "required fallback conditions missing",
	})
}
