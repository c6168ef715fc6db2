package checks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/solarreach/goalscan/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAll_CollectsEveryDetector(t *testing.T) {
	reg, err := NewRegistry(
		&stubDetector{id: "ok", result: models.ScanResult{Status: models.StatusAchieved}},
		&stubDetector{id: "warn", result: models.ScanResult{
			Status:   models.StatusWarning,
			Evidence: []models.Evidence{{File: "a.ts", Line: 3, Snippet: "x"}},
		}},
	)
	require.NoError(t, err)

	results, err := RunAll(context.Background(), reg, newProject(t, nil), 1)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, models.StatusAchieved, results["ok"].Status)
	assert.NotNil(t, results["ok"].Evidence)
	assert.Equal(t, models.StatusWarning, results["warn"].Status)
	assert.Len(t, results["warn"].Evidence, 1)
}

func TestRunAll_PanicFailsClosed(t *testing.T) {
	reg, err := NewRegistry(
		&stubDetector{id: "boom", panics: true},
		&stubDetector{id: "fine", result: models.ScanResult{Status: models.StatusAchieved}},
	)
	require.NoError(t, err)

	results, err := RunAll(context.Background(), reg, newProject(t, nil), 0)
	require.NoError(t, err)

	assert.Equal(t, models.StatusNotAchieved, results["boom"].Status)
	assert.Contains(t, results["boom"].Notes, "panicked")
	assert.Equal(t, models.StatusAchieved, results["fine"].Status)
}

func TestRunAll_UnknownStatusFailsClosed(t *testing.T) {
	reg, err := NewRegistry(&stubDetector{id: "odd", result: models.ScanResult{Status: "maybe"}})
	require.NoError(t, err)

	results, err := RunAll(context.Background(), reg, newProject(t, nil), 0)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotAchieved, results["odd"].Status)
}

func TestRunAll_CancelledContext(t *testing.T) {
	reg, err := NewRegistry(&stubDetector{id: "a", result: models.ScanResult{Status: models.StatusAchieved}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = RunAll(ctx, reg, newProject(t, nil), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunAll_Idempotent(t *testing.T) {
	c := newProject(t, map[string]string{
		"src/app/page.tsx":                 "<p>Solar � savings</p>",
		"src/components/GeoGridLegend.tsx": "Top 3 (1-5)",
		"src/lib/gmb-status.ts":            "lastSyncedAt",
		DefaultFallbackFile:                "Reviews coming soon",
	})
	reg, err := BuiltinRegistry(nil)
	require.NoError(t, err)

	first, err := RunAll(context.Background(), reg, c, 4)
	require.NoError(t, err)
	second, err := RunAll(context.Background(), reg, c, 4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, models.StatusNotAchieved, first[EncodingCleanID].Status)
	assert.Equal(t, models.StatusNotAchieved, first[LegendConsistencyID].Status)
	assert.Equal(t, models.StatusAchieved, first[TimestampSourceID].Status)
	assert.Equal(t, models.StatusNotAchieved, first[FallbackCopyID].Status)
}

func TestRunAll_UnreadableFileFailsClosed(t *testing.T) {
	c := newProject(t, map[string]string{
		"src/app/page.tsx":                 "<p>Solar savings</p>",
		"src/components/GeoGridLegend.tsx": "Top 3 (1-3)",
		"src/lib/gmb-status.ts":            "lastSyncedAt",
		DefaultFallbackFile:                reviewsPanelGood,
	})
	broken := filepath.Join(c.Root, "src", "app", "broken.tsx")
	if err := os.Symlink(filepath.Join(c.Root, "does-not-exist.tsx"), broken); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	reg, err := BuiltinRegistry(nil)
	require.NoError(t, err)

	results, err := RunAll(context.Background(), reg, c, 4)
	require.NoError(t, err)
	require.Len(t, results, 4)

	enc := results[EncodingCleanID]
	assert.Equal(t, models.StatusNotAchieved, enc.Status)
	assert.Empty(t, enc.Evidence)
	assert.True(t, strings.HasPrefix(enc.Notes, "scan failed:"), enc.Notes)
	assert.Contains(t, enc.Notes, "broken.tsx")
	assert.NotContains(t, enc.Notes, c.Root, "notes must not expose absolute host paths")

	assert.Equal(t, models.StatusAchieved, results[LegendConsistencyID].Status)
	assert.Equal(t, models.StatusAchieved, results[FallbackCopyID].Status)
}
