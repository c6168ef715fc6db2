package checks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/solarreach/goalscan/internal/corpus"
	"github.com/solarreach/goalscan/internal/models"
	"golang.org/x/sync/errgroup"
)

// RunAll runs every registered detector concurrently and waits for all of
// them. At most workers detectors run at once; workers <= 0 means no limit.
// Detector failures never surface here; the only error is cancellation of ctx.
func RunAll(ctx context.Context, reg *Registry, c *corpus.Corpus, workers int) (map[string]models.ScanResult, error) {
	detectors := reg.Detectors()
	results := make([]models.ScanResult, len(detectors))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, d := range detectors {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = runDetector(gctx, d, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]models.ScanResult, len(detectors))
	for i, d := range detectors {
		out[d.ID()] = results[i]
	}
	return out, nil
}

// runDetector runs d, converting a panic into a not_achieved result so one
// broken detector cannot take the whole scan down.
func runDetector(ctx context.Context, d Detector, c *corpus.Corpus) (result models.ScanResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("detector panicked", "detector", d.ID(), "panic", r)
			result = failClosed(c, fmt.Errorf("detector panicked: %v", r))
		}
	}()

	result = d.Run(ctx, c)
	if !result.Status.Valid() {
		result = failClosed(c, fmt.Errorf("detector returned unknown status %q", result.Status))
	}
	if result.Evidence == nil {
		result.Evidence = []models.Evidence{}
	}
	slog.Debug("detector finished", "detector", d.ID(), "status", result.Status, "evidence", len(result.Evidence))
	return result
}
