package assistant

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aipulse/aipulse/internal/dataset"
	"github.com/aipulse/aipulse/internal/model"
	"github.com/aipulse/aipulse/internal/summary"
)

// Context carries the dataset summary the assistant grounds its answers
// in. It is constructed explicitly and can be refreshed; nothing is
// bound to process startup.
type Context struct {
	Summary *summary.Summary
}

// NewContext builds an assistant context from a precomputed summary.
func NewContext(s *summary.Summary) *Context {
	return &Context{Summary: s}
}

// Refresh recomputes the summary from a freshly loaded table.
func (c *Context) Refresh(t *dataset.Table) error {
	s, err := summary.Compute(t)
	if err != nil {
		return fmt.Errorf("refresh context: %w", err)
	}
	c.Summary = s
	return nil
}

// Answer is one assistant reply. Source names what produced it: the
// provider's name, or "local" for the deterministic fallback.
type Answer struct {
	Text   string
	Source string
}

// Assistant answers questions using the provider when available and the
// local fallback otherwise. provider may be nil (external service
// disabled or misconfigured).
type Assistant struct {
	provider Provider
	context  *Context
}

// New creates an assistant over the given context.
func New(provider Provider, c *Context) *Assistant {
	return &Assistant{provider: provider, context: c}
}

// Ask answers one question. Provider failures are not fatal: the local
// fallback answers from the summary statistics, and the answer's Source
// records which path produced it.
func (a *Assistant) Ask(ctx context.Context, question string) (Answer, error) {
	if a.provider != nil {
		text, err := a.provider.Generate(ctx, a.prompt(question))
		if err == nil {
			return Answer{Text: text, Source: a.provider.Name()}, nil
		}
		fmt.Fprintf(os.Stderr, "⚠ assistant provider failed, answering locally: %v\n", err)
	}
	return Answer{Text: a.localAnswer(question), Source: "local"}, nil
}

// prompt builds the context-grounded prompt for the provider.
func (a *Assistant) prompt(question string) string {
	return fmt.Sprintf(`Use the dataset summary below to answer questions about public attitudes toward AI across social-media platforms.

CONTEXT:
%s

QUESTION:
%s`, a.contextBlock(), question)
}

func (a *Assistant) contextBlock() string {
	s := a.context.Summary
	if s == nil || s.NoData() {
		return "No data available for summary."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Records analyzed: %d\n", s.Records)
	for _, p := range s.Platforms {
		fmt.Fprintf(&b, "%s: %d records, mean sentiment %s, mean toxicity %s\n",
			p.Platform, p.Records, fmtOpt(p.MeanSentiment), fmtOpt(p.MeanToxicity))
	}
	if len(s.SentimentDist) > 0 {
		fmt.Fprintf(&b, "Sentiment distribution: %s\n", fmtDist(s.SentimentDist))
	}
	if v, ok := s.MeanSentiment(); ok {
		fmt.Fprintf(&b, "Overall mean sentiment: %.3f\n", v)
	}
	if v, ok := s.MeanToxicity(); ok {
		fmt.Fprintf(&b, "Overall mean toxicity: %.3f\n", v)
	}
	return b.String()
}

// localAnswer computes a deterministic reply from the summary, routing
// on question keywords the way analysts actually phrase them.
func (a *Assistant) localAnswer(question string) string {
	s := a.context.Summary
	if s == nil || s.NoData() {
		return "No data is available yet. Run the pipeline first."
	}

	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "compare"):
		return "Platform comparison:\n" + a.contextBlock()

	case strings.Contains(q, "most positive") || strings.Contains(q, "best"):
		return a.extremeAnswer("The most positive platform", s.MostPositive, func(p summary.PlatformStats) *float64 { return p.MeanSentiment }, "sentiment")

	case strings.Contains(q, "most negative") || strings.Contains(q, "worst"):
		return a.extremeAnswer("The most negative platform", s.MostNegative, func(p summary.PlatformStats) *float64 { return p.MeanSentiment }, "sentiment")

	case strings.Contains(q, "toxic"):
		return a.extremeAnswer("The most toxic platform", s.MostToxic, func(p summary.PlatformStats) *float64 { return p.MeanToxicity }, "toxicity")

	default:
		return "Dataset summary:\n" + a.contextBlock()
	}
}

func (a *Assistant) extremeAnswer(lead string, query func() (model.Platform, error), metric func(summary.PlatformStats) *float64, name string) string {
	platform, err := query()
	if err != nil {
		if errors.Is(err, model.ErrNoData) {
			return fmt.Sprintf("No %s scores are available to answer that.", name)
		}
		return fmt.Sprintf("Unable to answer: %v", err)
	}
	for _, p := range a.context.Summary.Platforms {
		if p.Platform == platform {
			return fmt.Sprintf("%s is %s (%s %.3f).", lead, platform, name, *metric(p))
		}
	}
	return fmt.Sprintf("%s is %s.", lead, platform)
}

func fmtOpt(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", *v)
}

func fmtDist(dist map[string]float64) string {
	labels := make([]string, 0, len(dist))
	for label := range dist {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = fmt.Sprintf("%s %.1f%%", label, dist[label]*100)
	}
	return strings.Join(parts, ", ")
}
