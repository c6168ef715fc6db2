// Package goals persists the list of declared feature goals as a single JSON
// document. Writes replace the whole document; there is no merge, versioning
// or locking, so the last writer wins.
package goals

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/solarreach/goalscan/internal/models"
	"github.com/solarreach/goalscan/internal/validation"
)

var (
	// ErrRead is returned when the goals document is missing or unparseable.
	ErrRead = errors.New("reading goals")
	// ErrValidation is returned when a replacement payload is not a valid goals array.
	ErrValidation = errors.New("invalid goals")
)

//go:generate go tool mockgen -source store.go -destination mock_store.go -package goals

// GoalStore provides access to the goal definitions.
type GoalStore interface {
	// Load returns every stored goal in document order.
	Load() ([]models.Goal, error)
	// SaveRaw validates a raw JSON goals array and overwrites the store with it.
	SaveRaw(raw json.RawMessage) error
}

// FileStore reads and writes goals from a JSON file on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (fs *FileStore) Path() string {
	return fs.path
}

// Load reads the goals document. It is re-read on every call so edits made
// by hand are picked up without a restart.
func (fs *FileStore) Load() ([]models.Goal, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	var goals []models.Goal
	if err := json.Unmarshal(data, &goals); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrRead, fs.path, err)
	}
	if goals == nil {
		// A literal null document is not an array.
		return nil, fmt.Errorf("%w: %s does not contain a goals array", ErrRead, fs.path)
	}
	return goals, nil
}

// Save overwrites the store with goals after validating them.
func (fs *FileStore) Save(goals []models.Goal) error {
	if goals == nil {
		goals = []models.Goal{}
	}
	raw, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("encoding goals: %w", err)
	}
	return fs.SaveRaw(raw)
}

// SaveRaw validates raw against the goals schema and, only when valid,
// overwrites the backing file with an indented copy of it.
func (fs *FileStore) SaveRaw(raw json.RawMessage) error {
	if err := Validate(raw); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	buf.WriteByte('\n')

	if err := writeFileAtomic(fs.path, buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", fs.path, err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file beside path and renames it into
// place, so concurrent readers see either the old or the new document.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close() //nolint:errcheck
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Validate reports whether raw is an array-shaped goals document.
func Validate(raw []byte) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("%w: goals must be an array", ErrValidation)
	}
	if errs := validation.ValidateGoalsBytes(raw); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(errs, "; "))
	}
	return nil
}

// Ensure FileStore satisfies GoalStore.
var _ GoalStore = (*FileStore)(nil)
