// Package corpus enumerates the source files eligible for scanning and finds
// lines in them that match a pattern.
package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/solarreach/goalscan/internal/models"
)

// MaxSnippetLen is the longest snippet, in characters, kept for a matched line.
const MaxSnippetLen = 200

// skipDirs are dependency caches and build output, skipped by exact name.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".next":        true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"coverage":     true,
	"vendor":       true,
	".vercel":      true,
	".turbo":       true,
}

// skipDirPrefixes are skipped when a directory name starts with one of them.
var skipDirPrefixes = []string{".cache", ".next"}

// allowedExts lists the source, markup, style and docs extensions that are scanned.
var allowedExts = map[string]bool{
	".ts":   true,
	".tsx":  true,
	".js":   true,
	".jsx":  true,
	".mjs":  true,
	".cjs":  true,
	".json": true,
	".css":  true,
	".scss": true,
	".html": true,
	".md":   true,
	".mdx":  true,
	".go":   true,
	".yaml": true,
	".yml":  true,
}

// lineBreak splits on CRLF, LF, or a lone CR.
var lineBreak = regexp.MustCompile(`\r\n|\n|\r`)

// Corpus is the scannable file set under a project root.
type Corpus struct {
	Root string
}

// New returns a Corpus rooted at root, resolved to an absolute path.
func New(root string) (*Corpus, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path: %w", err)
	}
	return &Corpus{Root: abs}, nil
}

// Path joins a slash-separated path relative to the root.
func (c *Corpus) Path(rel string) string {
	return filepath.Join(c.Root, filepath.FromSlash(rel))
}

// Rel returns path relative to the root using forward slashes. Paths outside
// the root are returned unchanged.
func (c *Corpus) Rel(path string) string {
	rel, err := filepath.Rel(c.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Files walks each sub-directory (relative to the root) and returns the
// eligible files in traversal order. A missing sub-directory contributes no
// files, and a file under overlapping sub-directories is listed once.
func (c *Corpus) Files(subdirs ...string) ([]string, error) {
	if len(subdirs) == 0 {
		return Walk(c.Root)
	}
	var files []string
	seen := make(map[string]bool)
	for _, sub := range subdirs {
		dir := c.Path(sub)
		if _, err := os.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", sub, err)
		}
		found, err := Walk(dir)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files, nil
}

// Search runs SearchInFile over files and rewrites evidence paths relative
// to the root. The first read failure aborts the search.
func (c *Corpus) Search(files []string, pattern *regexp.Regexp) ([]models.Evidence, error) {
	var evidence []models.Evidence
	for _, f := range files {
		found, err := SearchInFile(f, pattern)
		if err != nil {
			return nil, err
		}
		for i := range found {
			found[i].File = c.Rel(f)
		}
		evidence = append(evidence, found...)
	}
	return evidence, nil
}

// Walk returns every eligible file under root, recursively. Ordering follows
// filepath.WalkDir and callers must not rely on it for correctness.
func Walk(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("root path: %w", err)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if allowedExts[strings.ToLower(filepath.Ext(d.Name()))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", root, err)
	}
	return files, nil
}

func skipDir(name string) bool {
	if skipDirs[name] {
		return true
	}
	for _, p := range skipDirPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// SearchInFile returns one Evidence per line of path matching pattern. The
// file is read fresh on every call.
func SearchInFile(path string, pattern *regexp.Regexp) ([]models.Evidence, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	var evidence []models.Evidence
	for i, line := range lines {
		if pattern.MatchString(line) {
			evidence = append(evidence, models.Evidence{
				File:    path,
				Line:    i + 1,
				Snippet: Truncate(line, MaxSnippetLen),
			})
		}
	}
	return evidence, nil
}

// ReadLines reads path and splits it on CR/LF-tolerant line boundaries.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lineBreak.Split(string(data), -1), nil
}

// Truncate shortens s to at most n characters.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
