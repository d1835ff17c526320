package stage

import (
	"context"
	"fmt"
	"os"

	"github.com/aipulse/aipulse/internal/dataset"
	"github.com/aipulse/aipulse/internal/infer"
	"github.com/aipulse/aipulse/internal/model"
)

// Toxicity annotates each record with a toxicity score in [0,1], or
// null when the record was not scored. Nulls come from three distinct
// recoverable conditions: a missing credential (whole column null), the
// quota cap (first N records scored, remainder null), and per-record
// scorer failures. All three keep the row count intact.
type Toxicity struct {
	scorer   infer.ToxicityScorer // nil when the credential is missing
	quotaCap int
	runner   Runner

	scored      int
	quotaWarned bool
}

// NewToxicity creates the toxicity stage. A nil scorer means the
// credential is absent: the stage still runs and null-fills the column.
func NewToxicity(scorer infer.ToxicityScorer, quotaCap, maxChars int, progress Progress) *Toxicity {
	return &Toxicity{
		scorer:   scorer,
		quotaCap: quotaCap,
		runner: Runner{
			BatchSize: 1,
			MaxChars:  maxChars,
			Progress:  progress,
		},
	}
}

// Name implements Stage.
func (x *Toxicity) Name() string { return "toxicity" }

// Enrich implements Stage.
func (x *Toxicity) Enrich(ctx context.Context, t *dataset.Table) error {
	if x.scorer == nil {
		if !t.HasColumn(model.ColText) {
			return &model.SchemaError{Column: model.ColText}
		}
		fmt.Fprintf(os.Stderr, "⚠ toxicity: no scorer available, writing null scores for all %d rows\n", t.Len())
		return t.AppendColumn(model.ColToxicity, make([]string, t.Len()))
	}
	x.scored = 0
	x.quotaWarned = false
	return x.runner.Run(ctx, x.Name(), t, (*toxicityAnnotator)(x))
}

type toxicityAnnotator Toxicity

func (a *toxicityAnnotator) Columns() []string {
	return []string{model.ColToxicity}
}

func (a *toxicityAnnotator) Annotate(ctx context.Context, texts []string) ([][]string, error) {
	rows := make([][]string, len(texts))
	for i, text := range texts {
		if a.quotaCap > 0 && a.scored >= a.quotaCap {
			if !a.quotaWarned {
				a.quotaWarned = true
				qerr := &model.QuotaError{Service: "Perspective API", Limit: a.quotaCap}
				fmt.Fprintf(os.Stderr, "⚠ toxicity: %v; remaining records get null scores\n", qerr)
			}
			rows[i] = []string{""}
			continue
		}

		// A quota slot is consumed by the attempt, not the outcome, so
		// exactly the first N records are ever submitted.
		a.scored++
		score, err := a.scorer.ScoreToxicity(ctx, text)
		if err != nil {
			return nil, err
		}
		if score == nil {
			rows[i] = []string{""}
		} else {
			rows[i] = []string{formatScore(*score)}
		}
	}
	return rows, nil
}

func (a *toxicityAnnotator) Sentinel() []string {
	return []string{""}
}
