package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aipulse/aipulse/internal/dataset"
	"github.com/aipulse/aipulse/internal/model"
	"github.com/aipulse/aipulse/internal/summary"
)

type fakeProvider struct {
	reply string
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testContext(t *testing.T) *Context {
	t.Helper()
	table := dataset.New([]string{
		model.ColPlatform, model.ColText,
		model.ColSentimentLabel, model.ColSentimentScore,
		model.ColToxicity,
	})
	rows := [][]string{
		{"reddit", "excited about AI", "positive", "0.9", "0.1"},
		{"twitter", "AI will ruin us", "negative", "0.1", "0.8"},
		{"hacker news", "mixed feelings", "neutral", "0.5", ""},
	}
	for _, row := range rows {
		if err := table.AppendRow(row); err != nil {
			t.Fatal(err)
		}
	}
	s, err := summary.Compute(table)
	if err != nil {
		t.Fatal(err)
	}
	return NewContext(s)
}

func TestAsk_ProviderAnswer(t *testing.T) {
	provider := &fakeProvider{reply: "Reddit leans positive."}
	a := New(provider, testContext(t))

	answer, err := a.Ask(context.Background(), "how does reddit feel about AI?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer.Text != "Reddit leans positive." {
		t.Errorf("unexpected answer: %q", answer.Text)
	}
	if answer.Source != "fake" {
		t.Errorf("expected provider source, got %q", answer.Source)
	}
}

func TestAsk_FallsBackWhenProviderFails(t *testing.T) {
	provider := &fakeProvider{err: errors.New("rate limited")}
	a := New(provider, testContext(t))

	answer, err := a.Ask(context.Background(), "which platform is most positive?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer.Source != "local" {
		t.Errorf("expected local source, got %q", answer.Source)
	}
	if !strings.Contains(answer.Text, "Reddit") {
		t.Errorf("expected Reddit in fallback answer: %q", answer.Text)
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.calls)
	}
}

func TestAsk_NilProviderAnswersLocally(t *testing.T) {
	a := New(nil, testContext(t))

	answer, err := a.Ask(context.Background(), "what is the most toxic platform?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer.Source != "local" {
		t.Errorf("expected local source, got %q", answer.Source)
	}
	if !strings.Contains(answer.Text, "Twitter") {
		t.Errorf("expected Twitter in toxicity answer: %q", answer.Text)
	}
}

func TestLocalAnswer_Routing(t *testing.T) {
	a := New(nil, testContext(t))

	cases := []struct {
		question string
		want     string
	}{
		{"which platform is most positive about AI?", "Reddit"},
		{"which platform is the worst?", "Twitter"},
		{"compare the platforms", "Platform comparison"},
		{"tell me about the data", "Dataset summary"},
	}
	for _, tc := range cases {
		got := a.localAnswer(tc.question)
		if !strings.Contains(got, tc.want) {
			t.Errorf("localAnswer(%q) = %q, want substring %q", tc.question, got, tc.want)
		}
	}
}

func TestLocalAnswer_NoData(t *testing.T) {
	s, err := summary.Compute(dataset.New([]string{model.ColPlatform, model.ColText}))
	if err != nil {
		t.Fatal(err)
	}
	a := New(nil, NewContext(s))

	got := a.localAnswer("compare the platforms")
	if !strings.Contains(got, "No data") {
		t.Errorf("expected no-data reply, got %q", got)
	}
}

func TestLocalAnswer_NoToxicityScores(t *testing.T) {
	table := dataset.New([]string{
		model.ColPlatform, model.ColText,
		model.ColSentimentLabel, model.ColSentimentScore,
		model.ColToxicity,
	})
	if err := table.AppendRow([]string{"reddit", "a", "positive", "0.9", ""}); err != nil {
		t.Fatal(err)
	}
	s, err := summary.Compute(table)
	if err != nil {
		t.Fatal(err)
	}
	a := New(nil, NewContext(s))

	got := a.localAnswer("which platform is most toxic?")
	if !strings.Contains(got, "No toxicity scores") {
		t.Errorf("expected missing-scores reply, got %q", got)
	}
}

func TestContext_Refresh(t *testing.T) {
	c := testContext(t)
	before := c.Summary.Records

	table := dataset.New([]string{model.ColPlatform, model.ColText})
	if err := table.AppendRow([]string{"reddit", "new record"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Refresh(table); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if c.Summary.Records == before {
		t.Error("summary not recomputed")
	}
	if c.Summary.Records != 1 {
		t.Errorf("expected 1 record after refresh, got %d", c.Summary.Records)
	}
}

func TestPrompt_ContainsContext(t *testing.T) {
	a := New(nil, testContext(t))

	prompt := a.prompt("is sentiment improving?")
	for _, want := range []string{"CONTEXT:", "QUESTION:", "Records analyzed: 3", "is sentiment improving?"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
