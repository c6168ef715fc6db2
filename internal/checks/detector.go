// Package checks provides the Detector capability, an ordered registry of
// detectors, and the built-in rule set that decides whether a feature goal
// is met by the current source tree.
package checks

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/solarreach/goalscan/internal/corpus"
	"github.com/solarreach/goalscan/internal/models"
)

// Metadata is the static description a detector contributes when its id is
// not declared in the goals document.
type Metadata struct {
	Title       string
	Description string
	Category    string
	Guidance    string
}

// Detector inspects the corpus and decides whether one goal is met.
// Run must not return partial failures as errors: read problems are folded
// into a not_achieved result.
type Detector interface {
	ID() string
	Metadata() Metadata
	Run(ctx context.Context, c *corpus.Corpus) models.ScanResult
}

// Registry is an ordered mapping from goal id to Detector.
type Registry struct {
	order []Detector
	byID  map[string]Detector
}

// NewRegistry registers detectors in the given order.
func NewRegistry(detectors ...Detector) (*Registry, error) {
	r := &Registry{byID: make(map[string]Detector, len(detectors))}
	for _, d := range detectors {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends d. Ids must be non-empty and unique.
func (r *Registry) Register(d Detector) error {
	id := d.ID()
	if id == "" {
		return fmt.Errorf("detector has an empty id")
	}
	if _, dup := r.byID[id]; dup {
		return fmt.Errorf("detector %q already registered", id)
	}
	r.byID[id] = d
	r.order = append(r.order, d)
	return nil
}

// Get returns the detector registered for id.
func (r *Registry) Get(id string) (Detector, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Detectors returns all detectors in registration order.
func (r *Registry) Detectors() []Detector {
	out := make([]Detector, len(r.order))
	copy(out, r.order)
	return out
}

// IDs returns detector ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	for i, d := range r.order {
		ids[i] = d.ID()
	}
	return ids
}

// Len returns the number of registered detectors.
func (r *Registry) Len() int { return len(r.order) }

func achieved() models.ScanResult {
	return models.ScanResult{Status: models.StatusAchieved, Evidence: []models.Evidence{}}
}

func notAchieved(notes string, evidence ...models.Evidence) models.ScanResult {
	if evidence == nil {
		evidence = []models.Evidence{}
	}
	return models.ScanResult{Status: models.StatusNotAchieved, Evidence: evidence, Notes: notes}
}

// failClosed converts a read failure into the detector's own verdict. The
// note is served over HTTP, so paths under the root are made relative; the
// full error goes to the log.
func failClosed(c *corpus.Corpus, err error) models.ScanResult {
	slog.Warn("detector failed", "root", c.Root, "error", err)
	msg := strings.ReplaceAll(err.Error(), c.Root+string(filepath.Separator), "")
	return notAchieved("scan failed: " + msg)
}
