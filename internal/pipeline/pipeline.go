// Package pipeline runs the enrichment stages in a fixed order, with
// each stage reading the previous stage's output file. The file is the
// interface between stages, so any single stage can be re-run alone.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/aipulse/aipulse/internal/dataset"
	"github.com/aipulse/aipulse/internal/stage"
	"github.com/oklog/ulid/v2"
)

// Step binds a stage to its input and output files.
type Step struct {
	Stage      stage.Stage
	InputPath  string
	OutputPath string
}

// StepResult reports the outcome of one step.
type StepResult struct {
	Name   string
	Status string
	Rows   int
	Err    error
}

// RunReport summarizes a pipeline run. BlockedAt names the first stage
// that was refused because its input was absent or stale, if any.
type RunReport struct {
	Steps     []StepResult
	BlockedAt string
}

// Succeeded reports whether every step completed or was skipped as an
// up-to-date checkpoint.
func (r *RunReport) Succeeded() bool {
	for _, s := range r.Steps {
		if s.Status != StatusCompleted && s.Status != StatusSkipped {
			return false
		}
	}
	return true
}

// Pipeline orchestrates the step sequence against the ledger.
type Pipeline struct {
	steps  []Step
	ledger *Ledger

	// KeepGoing restores the legacy fail-open behavior: after a failed
	// step, later steps still run against whatever input file exists,
	// even though it may be stale. Off by default because a stale input
	// produces coherent-looking but wrong output.
	KeepGoing bool

	entropy *rand.Rand
}

// New creates a pipeline over the given steps and ledger.
func New(steps []Step, ledger *Ledger) *Pipeline {
	return &Pipeline{
		steps:   steps,
		ledger:  ledger,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run executes all steps in order. Individual stage failures never
// panic out of the run; they are logged, recorded in the ledger, and
// block the downstream steps unless KeepGoing is set.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	runID := ulid.MustNew(ulid.Timestamp(time.Now()), p.entropy).String()
	report := &RunReport{}
	blocked := false

	for _, step := range p.steps {
		name := step.Stage.Name()

		if blocked && !p.KeepGoing {
			fmt.Fprintf(os.Stderr, "⚠ %s: skipped, pipeline blocked upstream\n", name)
			report.Steps = append(report.Steps, StepResult{Name: name, Status: StatusBlocked})
			continue
		}

		res := p.runStep(ctx, runID, step)
		report.Steps = append(report.Steps, res)

		switch res.Status {
		case StatusCompleted:
			fmt.Fprintf(os.Stderr, "✓ %s: %d rows → %s\n", name, res.Rows, step.OutputPath)
		case StatusSkipped:
			fmt.Fprintf(os.Stderr, "✓ %s: up to date, skipped\n", name)
		default:
			fmt.Fprintf(os.Stderr, "⚠ %s failed: %v\n", name, res.Err)
			if !blocked {
				blocked = true
				if !p.KeepGoing {
					report.BlockedAt = name
					fmt.Fprintf(os.Stderr, "⚠ pipeline blocked at %s\n", name)
				}
			}
		}
	}

	return report, nil
}

// RunStage executes a single named step independently of the others.
func (p *Pipeline) RunStage(ctx context.Context, name string) (StepResult, error) {
	runID := ulid.MustNew(ulid.Timestamp(time.Now()), p.entropy).String()
	for _, step := range p.steps {
		if step.Stage.Name() == name {
			return p.runStep(ctx, runID, step), nil
		}
	}
	return StepResult{}, fmt.Errorf("unknown stage %q", name)
}

func (p *Pipeline) runStep(ctx context.Context, runID string, step Step) StepResult {
	name := step.Stage.Name()

	inHash, err := hashFile(step.InputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("input %s does not exist", step.InputPath)
		}
		p.record(runID, step, "", 0, StatusFailed, err)
		return StepResult{Name: name, Status: StatusFailed, Err: err}
	}

	// A predecessor that last failed leaves its old output on disk;
	// running against that file would consume stale data. The same goes
	// for an input that no longer matches what the predecessor recorded
	// writing. Refused unless the operator explicitly asked to keep going.
	if !p.KeepGoing {
		if prev, ok := p.producerOf(step.InputPath); ok {
			var stale error
			switch {
			case prev.Status != StatusCompleted:
				stale = fmt.Errorf("input %s is stale: %s last ended with status %s", step.InputPath, prev.Stage, prev.Status)
			case prev.OutputSHA256 != "" && prev.OutputSHA256 != inHash:
				stale = fmt.Errorf("input %s does not match the output %s recorded writing", step.InputPath, prev.Stage)
			}
			if stale != nil {
				p.record(runID, step, inHash, 0, StatusBlocked, stale)
				return StepResult{Name: name, Status: StatusBlocked, Err: stale}
			}
		}
	}

	// Checkpoint: the stage already consumed exactly this input and its
	// output is still on disk, so re-running would only recompute.
	if prev, ok := p.ledger.Get(name); ok &&
		prev.Status == StatusCompleted && prev.InputSHA256 == inHash {
		if _, statErr := os.Stat(step.OutputPath); statErr == nil {
			return StepResult{Name: name, Status: StatusSkipped, Rows: prev.Rows}
		}
	}

	table, err := dataset.ReadCSV(step.InputPath)
	if err != nil {
		p.record(runID, step, inHash, 0, StatusFailed, err)
		return StepResult{Name: name, Status: StatusFailed, Err: err}
	}

	if err := step.Stage.Enrich(ctx, table); err != nil {
		p.record(runID, step, inHash, table.Len(), StatusFailed, err)
		return StepResult{Name: name, Status: StatusFailed, Err: err}
	}

	if err := dataset.WriteCSV(table, step.OutputPath); err != nil {
		p.record(runID, step, inHash, table.Len(), StatusFailed, err)
		return StepResult{Name: name, Status: StatusFailed, Err: err}
	}

	p.record(runID, step, inHash, table.Len(), StatusCompleted, nil)
	return StepResult{Name: name, Status: StatusCompleted, Rows: table.Len()}
}

// producerOf finds the ledger entry of the step that writes the given
// file, if that step is part of this pipeline and has run before.
func (p *Pipeline) producerOf(path string) (Entry, bool) {
	for _, step := range p.steps {
		if step.OutputPath == path {
			return p.ledger.Get(step.Stage.Name())
		}
	}
	return Entry{}, false
}

func (p *Pipeline) record(runID string, step Step, inHash string, rows int, status string, runErr error) {
	entry := Entry{
		RunID:       runID,
		Stage:       step.Stage.Name(),
		InputPath:   step.InputPath,
		InputSHA256: inHash,
		OutputPath:  step.OutputPath,
		Rows:        rows,
		CompletedAt: time.Now().UTC(),
		Status:      status,
	}
	if runErr != nil {
		entry.Error = runErr.Error()
	}
	if status == StatusCompleted {
		if outHash, err := hashFile(step.OutputPath); err == nil {
			entry.OutputSHA256 = outHash
		}
	}
	if err := p.ledger.Record(entry); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ ledger update failed: %v\n", err)
	}
}
