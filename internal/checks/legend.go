package checks

import (
	"context"
	"fmt"
	"regexp"

	"github.com/solarreach/goalscan/internal/corpus"
	"github.com/solarreach/goalscan/internal/models"
)

// LegendConsistencyID is the goal id of the ranking-legend detector.
const LegendConsistencyID = "legend-consistency"

// DefaultLegendPatterns are legend labels whose numeric range contradicts the
// bucket they name, e.g. "Top 3 (1-5)".
var DefaultLegendPatterns = []string{
	`Top\s*3\s*\(\s*1\s*[-–]\s*(?:[4-9]|\d{2,})\s*\)`,
	`Top\s*10\s*\(\s*1\s*[-–]\s*(?:1[1-9]|[2-9]\d|\d{3,})\s*\)`,
	`Page\s*1\s*\(\s*1\s*[-–]\s*(?:1[1-9]|[2-9]\d|\d{3,})\s*\)`,
}

// LegendConsistencyArgs holds the arguments for the legend-consistency detector.
type LegendConsistencyArgs struct {
	// ComponentDirs are the sub-trees holding chart and map components.
	ComponentDirs []string `mapstructure:"component_dirs"`
	// Patterns are regular expressions for known-bad legend labels.
	Patterns []string `mapstructure:"patterns"`
}

// LegendConsistencyDetector flags ranking legends with conflicting ranges.
type LegendConsistencyDetector struct {
	componentDirs []string
	patterns      []*regexp.Regexp
}

// NewLegendConsistencyDetector compiles the legend patterns.
func NewLegendConsistencyDetector(args LegendConsistencyArgs) (*LegendConsistencyDetector, error) {
	raw := orDefault(args.Patterns, DefaultLegendPatterns)
	patterns := make([]*regexp.Regexp, 0, len(raw))
	for _, p := range raw {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid legend pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}
	return &LegendConsistencyDetector{
		componentDirs: orDefault(args.ComponentDirs, DefaultComponentDirs),
		patterns:      patterns,
	}, nil
}

var _ Detector = (*LegendConsistencyDetector)(nil)

func (*LegendConsistencyDetector) ID() string { return LegendConsistencyID }

func (*LegendConsistencyDetector) Metadata() Metadata {
	return Metadata{
		Title:       "Ranking legends use consistent ranges",
		Description: "Heat-map and grid legends must not label a bucket with a range that contradicts its name.",
		Category:    "seo",
		Guidance:    "Use one source of truth for rank buckets (1-3, 4-10, 11-20, 20+) and render legend labels from it.",
	}
}

func (d *LegendConsistencyDetector) Run(_ context.Context, c *corpus.Corpus) models.ScanResult {
	files, err := c.Files(d.componentDirs...)
	if err != nil {
		return failClosed(c, err)
	}
	var evidence []models.Evidence
	for _, re := range d.patterns {
		found, err := c.Search(files, re)
		if err != nil {
			return failClosed(c, err)
		}
		evidence = append(evidence, found...)
	}
	if len(evidence) == 0 {
		return achieved()
	}
	return notAchieved(fmt.Sprintf("%d conflicting legend label(s)", len(evidence)), evidence...)
}
