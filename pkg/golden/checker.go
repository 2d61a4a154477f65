package golden

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/textnorm/pkg/textnorm"
)

// Mismatch is a case whose current output differs from its expectation.
type Mismatch struct {
	Case Case
	Got  string
}

// Report summarises a check run.
type Report struct {
	Total      int
	Passed     int
	Mismatches []Mismatch
}

// OK reports whether every case matched.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0
}

// Checker runs stored cases through a pipeline.
type Checker struct {
	store   *Store
	logger  *slog.Logger
	workers int
}

// NewChecker creates a Checker normalizing on up to workers goroutines.
func NewChecker(store *Store, logger *slog.Logger, workers int) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{store: store, logger: logger, workers: workers}
}

// Check normalizes every stored input and compares it with its expectation.
func (c *Checker) Check(ctx context.Context, p *textnorm.Pipeline) (*Report, error) {
	cases, got, err := c.run(ctx, p)
	if err != nil {
		return nil, err
	}

	report := &Report{Total: len(cases)}
	for i, gc := range cases {
		if got[i] == gc.Expected {
			report.Passed++
			continue
		}
		report.Mismatches = append(report.Mismatches, Mismatch{Case: gc, Got: got[i]})
		c.logger.Warn("golden mismatch",
			"id", gc.ID,
			"input", gc.Input,
			"expected", gc.Expected,
			"got", got[i],
		)
	}

	c.logger.Info("golden check complete", "total", report.Total, "passed", report.Passed, "failed", len(report.Mismatches))
	return report, nil
}

// Update re-records the expectation of every case whose output changed and
// returns how many were rewritten.
func (c *Checker) Update(ctx context.Context, p *textnorm.Pipeline) (int, error) {
	cases, got, err := c.run(ctx, p)
	if err != nil {
		return 0, err
	}

	var updated int
	for i, gc := range cases {
		if got[i] == gc.Expected {
			continue
		}
		if err := c.store.SetExpected(gc.ID, got[i]); err != nil {
			return updated, err
		}
		updated++
	}
	c.logger.Info("golden update complete", "total", len(cases), "updated", updated)
	return updated, nil
}

func (c *Checker) run(ctx context.Context, p *textnorm.Pipeline) ([]Case, []string, error) {
	cases, err := c.store.List()
	if err != nil {
		return nil, nil, err
	}
	inputs := make([]string, len(cases))
	for i, gc := range cases {
		inputs[i] = gc.Input
	}
	got, err := p.NormalizeAll(ctx, inputs, c.workers)
	if err != nil {
		return nil, nil, fmt.Errorf("golden run: %w", err)
	}
	return cases, got, nil
}
