package checks

import "fmt"

var (
	// DefaultUIDirs are the sub-trees that render dashboard pages.
	DefaultUIDirs = []string{"src/app", "src/components"}
	// DefaultComponentDirs hold shared chart, map and panel components.
	DefaultComponentDirs = []string{"src/components"}
)

// BuiltinRegistry returns the built-in detectors in display order. params
// holds optional per-detector overrides keyed by detector id.
func BuiltinRegistry(params map[string]map[string]any) (*Registry, error) {
	for id := range params {
		switch id {
		case EncodingCleanID, LegendConsistencyID, TimestampSourceID, FallbackCopyID:
		default:
			return nil, fmt.Errorf("unknown detector %q in configuration", id)
		}
	}

	var encArgs EncodingCleanArgs
	if err := decodeArgs(EncodingCleanID, params[EncodingCleanID], &encArgs); err != nil {
		return nil, err
	}

	var legendArgs LegendConsistencyArgs
	if err := decodeArgs(LegendConsistencyID, params[LegendConsistencyID], &legendArgs); err != nil {
		return nil, err
	}
	legend, err := NewLegendConsistencyDetector(legendArgs)
	if err != nil {
		return nil, err
	}

	var tsArgs TimestampSourceArgs
	if err := decodeArgs(TimestampSourceID, params[TimestampSourceID], &tsArgs); err != nil {
		return nil, err
	}
	timestamp, err := NewTimestampSourceDetector(tsArgs)
	if err != nil {
		return nil, err
	}

	var fbArgs FallbackCopyArgs
	if err := decodeArgs(FallbackCopyID, params[FallbackCopyID], &fbArgs); err != nil {
		return nil, err
	}

	return NewRegistry(
		NewEncodingCleanDetector(encArgs),
		legend,
		timestamp,
		NewFallbackCopyDetector(fbArgs),
	)
}
