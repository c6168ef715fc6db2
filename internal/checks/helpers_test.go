package checks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/solarreach/goalscan/internal/corpus"
	"github.com/solarreach/goalscan/internal/models"
	"github.com/stretchr/testify/require"
)

// newProject returns a corpus over a temp dir populated with files
// (slash-separated relative path -> content).
func newProject(t *testing.T, files map[string]string) *corpus.Corpus {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	c, err := corpus.New(root)
	require.NoError(t, err)
	return c
}

// stubDetector returns a fixed result.
type stubDetector struct {
	id     string
	result models.ScanResult
	panics bool
}

func (s *stubDetector) ID() string { return s.id }

func (s *stubDetector) Metadata() Metadata {
	return Metadata{Title: "stub " + s.id}
}

func (s *stubDetector) Run(context.Context, *corpus.Corpus) models.ScanResult {
	if s.panics {
		panic("boom")
	}
	return s.result
}
