package checks

import (
	"context"
	"testing"

	"github.com/solarreach/goalscan/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegendConsistency_DefaultPatterns(t *testing.T) {
	tests := []struct {
		line string
		bad  bool
	}{
		{"<LegendItem label=\"Top 3 (1-3)\" />", false},
		{"<LegendItem label=\"Top 3 (1-5)\" />", true},
		{"<LegendItem label=\"Top 3 (1–10)\" />", true},
		{"<LegendItem label=\"Top 10 (1-10)\" />", false},
		{"<LegendItem label=\"Top 10 (1-20)\" />", true},
		{"<LegendItem label=\"Top 10 (1 - 100)\" />", true},
		{"<LegendItem label=\"Top 30 (1-50)\" />", false},
		{"<LegendItem label=\"Page 1 (1-10)\" />", false},
		{"<LegendItem label=\"Page 1 (1-20)\" />", true},
		{"<LegendItem label=\"4-10\" />", false},
	}

	d, err := NewLegendConsistencyDetector(LegendConsistencyArgs{})
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c := newProject(t, map[string]string{"src/components/GeoGridLegend.tsx": tt.line})
			result := d.Run(context.Background(), c)
			if tt.bad {
				assert.Equal(t, models.StatusNotAchieved, result.Status)
				require.Len(t, result.Evidence, 1)
				assert.Equal(t, "src/components/GeoGridLegend.tsx", result.Evidence[0].File)
				assert.Equal(t, 1, result.Evidence[0].Line)
			} else {
				assert.Equal(t, models.StatusAchieved, result.Status)
				assert.Empty(t, result.Evidence)
			}
		})
	}
}

func TestLegendConsistency_OnlyScansComponents(t *testing.T) {
	c := newProject(t, map[string]string{
		"src/app/rankings/page.tsx": "Top 3 (1-5)",
		"docs/legend.md":            "Top 10 (1-20)",
	})
	d, err := NewLegendConsistencyDetector(LegendConsistencyArgs{})
	require.NoError(t, err)

	assert.Equal(t, models.StatusAchieved, d.Run(context.Background(), c).Status)
}

func TestLegendConsistency_CustomPatterns(t *testing.T) {
	c := newProject(t, map[string]string{
		"ui/Legend.tsx": "ok\nRank 1-3 | Rank 2-5",
	})
	d, err := NewLegendConsistencyDetector(LegendConsistencyArgs{
		ComponentDirs: []string{"ui"},
		Patterns:      []string{`Rank 1-3 \| Rank 2-`},
	})
	require.NoError(t, err)

	result := d.Run(context.Background(), c)
	assert.Equal(t, models.StatusNotAchieved, result.Status)
	require.Len(t, result.Evidence, 1)
	assert.Equal(t, 2, result.Evidence[0].Line)
}

func TestLegendConsistency_InvalidPattern(t *testing.T) {
	_, err := NewLegendConsistencyDetector(LegendConsistencyArgs{Patterns: []string{"("}})
	assert.Error(t, err)
}
