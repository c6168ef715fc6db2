package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// healthyProject is a source tree on which every built-in detector passes.
var healthyProject = map[string]string{
	"data/feature-goals.json": `[
  {"id": "encoding-clean", "title": "No mojibake", "category": "quality"},
  {"id": "custom-goal", "title": "Something manual", "guidance": "ask the PM"}
]`,
	"src/app/page.tsx":                "export default function Page() { return <main>Hello</main> }\n",
	"src/lib/gmb-status.ts":           "export function status(s) {\n  return s.lastSyncedAt;\n}\n",
	"src/components/ReviewsPanel.tsx": "const empty = connected ? 'No reviews yet' : 'Connect your Google Business Profile';\n",
}

// writeProject creates files (slash-separated relative path -> content) in
// a fresh temp dir and returns its path.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func withFile(base map[string]string, rel, content string) map[string]string {
	out := make(map[string]string, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[rel] = content
	return out
}

// runCommand executes cmd with args and returns combined output.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}
