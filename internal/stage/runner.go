// Package stage implements the enrichment stages as instantiations of
// one generic batch runner: contiguous batches, sentinel substitution
// on failure, and a guaranteed one-result-per-record output.
package stage

import (
	"context"
	"fmt"
	"os"

	"github.com/aipulse/aipulse/internal/clean"
	"github.com/aipulse/aipulse/internal/dataset"
	"github.com/aipulse/aipulse/internal/model"
)

// Stage is one enrichment step: it appends its columns to the table and
// never deletes or reorders rows.
type Stage interface {
	Name() string
	Enrich(ctx context.Context, t *dataset.Table) error
}

// Annotator produces the new column cells for a batch of texts, one row
// of cells per text, in order.
type Annotator interface {
	Columns() []string
	Annotate(ctx context.Context, texts []string) ([][]string, error)
	// Sentinel is the cell row substituted for every record of a failed
	// batch, so the output always has one row per input row.
	Sentinel() []string
}

// Progress reports completion without blocking the runner.
type Progress func(done, total int)

// Runner partitions a table's text column into contiguous batches and
// feeds them to an Annotator. Batches are submitted one at a time to
// respect external-service rate limits; a failed batch is logged and
// sentinel-filled, never propagated.
type Runner struct {
	BatchSize int
	// MaxChars truncates text at the inference boundary only. The
	// stored text column keeps its full length.
	MaxChars int
	Progress Progress
}

// Run enriches the table in place with the annotator's columns.
func (r *Runner) Run(ctx context.Context, name string, t *dataset.Table, a Annotator) error {
	texts, err := t.Column(model.ColText)
	if err != nil {
		return &model.SchemaError{Column: model.ColText}
	}

	batchSize := r.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}

	cols := a.Columns()
	values := make([][]string, len(cols))
	for i := range values {
		values[i] = make([]string, 0, len(texts))
	}

	total := len(texts)
	for start := 0; start < total; start += batchSize {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s interrupted: %w", name, err)
		}

		end := start + batchSize
		if end > total {
			end = total
		}
		batch := make([]string, end-start)
		for i, s := range texts[start:end] {
			batch[i] = truncate(clean.NormalizeHTML(s), r.MaxChars)
		}

		rows, err := a.Annotate(ctx, batch)
		if err == nil && len(rows) != len(batch) {
			err = fmt.Errorf("got %d results for %d texts", len(rows), len(batch))
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠ %s: batch %d-%d failed, writing sentinels: %v\n", name, start, end-1, err)
			sentinel := a.Sentinel()
			for range batch {
				for c := range cols {
					values[c] = append(values[c], sentinel[c])
				}
			}
		} else {
			for _, row := range rows {
				for c := range cols {
					values[c] = append(values[c], row[c])
				}
			}
		}

		if r.Progress != nil {
			r.Progress(end, total)
		}
	}

	for c, col := range cols {
		if err := t.AppendColumn(col, values[c]); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// truncate cuts s to at most max runes. max <= 0 means no limit.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
