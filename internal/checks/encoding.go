package checks

import (
	"context"
	"fmt"
	"regexp"

	"github.com/solarreach/goalscan/internal/corpus"
	"github.com/solarreach/goalscan/internal/models"
)

// EncodingCleanID is the goal id of the replacement-character detector.
const EncodingCleanID = "encoding-clean"

// replacementChar matches U+FFFD. Go's regexp also decodes invalid UTF-8
// bytes as U+FFFD, so mis-encoded files are reported too.
var replacementChar = regexp.MustCompile(`\x{FFFD}`)

// EncodingCleanArgs holds the arguments for the encoding-clean detector.
type EncodingCleanArgs struct {
	// UIDirs are the sub-trees, relative to the root, that render user-facing copy.
	UIDirs []string `mapstructure:"ui_dirs"`
}

// EncodingCleanDetector reports every U+FFFD in the UI tree.
type EncodingCleanDetector struct {
	uiDirs []string
}

// NewEncodingCleanDetector creates an [EncodingCleanDetector].
func NewEncodingCleanDetector(args EncodingCleanArgs) *EncodingCleanDetector {
	return &EncodingCleanDetector{uiDirs: orDefault(args.UIDirs, DefaultUIDirs)}
}

var _ Detector = (*EncodingCleanDetector)(nil)

func (*EncodingCleanDetector) ID() string { return EncodingCleanID }

func (*EncodingCleanDetector) Metadata() Metadata {
	return Metadata{
		Title:       "No garbled characters in dashboard copy",
		Description: "Rendered text must not contain the Unicode replacement character (U+FFFD).",
		Category:    "quality",
		Guidance:    "Re-save the listed files as UTF-8 and retype the affected characters (usually dashes, quotes or degree signs).",
	}
}

func (d *EncodingCleanDetector) Run(_ context.Context, c *corpus.Corpus) models.ScanResult {
	files, err := c.Files(d.uiDirs...)
	if err != nil {
		return failClosed(c, err)
	}
	evidence, err := c.Search(files, replacementChar)
	if err != nil {
		return failClosed(c, err)
	}
	if len(evidence) == 0 {
		return achieved()
	}
	return notAchieved(fmt.Sprintf("%d line(s) contain U+FFFD", len(evidence)), evidence...)
}
