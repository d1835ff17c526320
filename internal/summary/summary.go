// Package summary computes the aggregate statistics the dashboard and
// the assistant consume from the final enriched table.
package summary

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aipulse/aipulse/internal/dataset"
	"github.com/aipulse/aipulse/internal/model"
)

// PlatformStats holds per-platform aggregates. A nil mean marks a
// metric with no scored records on that platform (nulls are excluded
// from means, never counted as zero).
type PlatformStats struct {
	Platform      model.Platform
	Records       int
	MeanSentiment *float64
	MeanToxicity  *float64

	// Scored counts back the means: nulls and failure sentinels are
	// excluded, so these can be smaller than Records.
	ScoredSentiment int
	ScoredToxicity  int
}

// Summary is the full derived-metrics result. Consumers must check the
// availability flags: any enrichment column may be absent when a stage
// failed, and each visualization degrades independently.
type Summary struct {
	Records   int
	Platforms []PlatformStats

	// SentimentDist maps sentiment label to relative frequency.
	SentimentDist map[string]float64

	HasSentiment bool
	HasToxicity  bool
}

// NoData reports whether there is nothing to aggregate.
func (s *Summary) NoData() bool { return s.Records == 0 }

// Compute derives the summary from an enriched table. An empty table
// yields an explicit no-data summary; missing columns clear the
// corresponding availability flag instead of failing.
func Compute(t *dataset.Table) (*Summary, error) {
	s := &Summary{
		Records:       t.Len(),
		SentimentDist: make(map[string]float64),
		HasSentiment:  t.HasColumn(model.ColSentimentScore),
		HasToxicity:   t.HasColumn(model.ColToxicity),
	}
	if s.NoData() {
		return s, nil
	}

	platforms, err := t.Column(model.ColPlatform)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	type acc struct {
		records  int
		sentSum  float64
		sentN    int
		toxSum   float64
		toxN     int
	}
	byPlatform := make(map[model.Platform]*acc)

	var sentScores, toxScores, sentLabels []string
	if s.HasSentiment {
		sentScores, _ = t.Column(model.ColSentimentScore)
	}
	if s.HasToxicity {
		toxScores, _ = t.Column(model.ColToxicity)
	}
	if t.HasColumn(model.ColSentimentLabel) {
		sentLabels, _ = t.Column(model.ColSentimentLabel)
	}

	labelCounts := make(map[string]int)
	labelTotal := 0

	for i, raw := range platforms {
		platform, err := model.ParsePlatform(raw)
		if err != nil {
			return nil, fmt.Errorf("summary row %d: %w", i, err)
		}
		a := byPlatform[platform]
		if a == nil {
			a = &acc{}
			byPlatform[platform] = a
		}
		a.records++

		if sentScores != nil {
			// Sentiment failures carry the ERROR label with a 0.0
			// score; excluding them keeps the mean honest.
			if sentLabels == nil || sentLabels[i] != model.SentimentError {
				if v, err := strconv.ParseFloat(sentScores[i], 64); err == nil {
					a.sentSum += v
					a.sentN++
				}
			}
		}
		if toxScores != nil && toxScores[i] != "" {
			if v, err := strconv.ParseFloat(toxScores[i], 64); err == nil {
				a.toxSum += v
				a.toxN++
			}
		}
		if sentLabels != nil && sentLabels[i] != "" && sentLabels[i] != model.SentimentError {
			labelCounts[sentLabels[i]]++
			labelTotal++
		}
	}

	for _, platform := range model.Platforms() {
		a, ok := byPlatform[platform]
		if !ok {
			continue
		}
		stats := PlatformStats{
			Platform:        platform,
			Records:         a.records,
			ScoredSentiment: a.sentN,
			ScoredToxicity:  a.toxN,
		}
		if a.sentN > 0 {
			mean := a.sentSum / float64(a.sentN)
			stats.MeanSentiment = &mean
		}
		if a.toxN > 0 {
			mean := a.toxSum / float64(a.toxN)
			stats.MeanToxicity = &mean
		}
		s.Platforms = append(s.Platforms, stats)
	}

	if labelTotal > 0 {
		for label, n := range labelCounts {
			s.SentimentDist[label] = float64(n) / float64(labelTotal)
		}
	}
	return s, nil
}

// MostPositive returns the platform with the highest mean sentiment.
// Ties resolve to the first platform in canonical order.
func (s *Summary) MostPositive() (model.Platform, error) {
	return s.pick(func(p PlatformStats) *float64 { return p.MeanSentiment }, func(a, b float64) bool { return a > b })
}

// MostNegative returns the platform with the lowest mean sentiment.
func (s *Summary) MostNegative() (model.Platform, error) {
	return s.pick(func(p PlatformStats) *float64 { return p.MeanSentiment }, func(a, b float64) bool { return a < b })
}

// MostToxic returns the platform with the highest mean toxicity.
func (s *Summary) MostToxic() (model.Platform, error) {
	return s.pick(func(p PlatformStats) *float64 { return p.MeanToxicity }, func(a, b float64) bool { return a > b })
}

func (s *Summary) pick(metric func(PlatformStats) *float64, better func(a, b float64) bool) (model.Platform, error) {
	var best model.Platform
	var bestVal float64
	found := false
	for _, stats := range s.Platforms {
		v := metric(stats)
		if v == nil {
			continue
		}
		if !found || better(*v, bestVal) {
			best = stats.Platform
			bestVal = *v
			found = true
		}
	}
	if !found {
		return "", model.ErrNoData
	}
	return best, nil
}

// MeanSentiment returns the overall mean sentiment score across all
// scored records.
func (s *Summary) MeanSentiment() (float64, bool) {
	return s.overallMean(func(p PlatformStats) *float64 { return p.MeanSentiment }, func(p PlatformStats) int { return p.ScoredSentiment })
}

// MeanToxicity returns the overall mean toxicity across all scored
// records.
func (s *Summary) MeanToxicity() (float64, bool) {
	return s.overallMean(func(p PlatformStats) *float64 { return p.MeanToxicity }, func(p PlatformStats) int { return p.ScoredToxicity })
}

func (s *Summary) overallMean(metric func(PlatformStats) *float64, weight func(PlatformStats) int) (float64, bool) {
	var sum float64
	var n int
	for _, stats := range s.Platforms {
		if v := metric(stats); v != nil {
			w := weight(stats)
			sum += *v * float64(w)
			n += w
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Render formats the summary as a human-readable block.
func (s *Summary) Render() string {
	if s.NoData() {
		return "No data available.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Records: %d\n", s.Records)
	fmt.Fprintf(&b, "\nPer-platform means:\n")
	for _, p := range s.Platforms {
		fmt.Fprintf(&b, "  %-12s %6d rows  sentiment=%s  toxicity=%s\n",
			p.Platform, p.Records, fmtMean(p.MeanSentiment), fmtMean(p.MeanToxicity))
	}

	if len(s.SentimentDist) > 0 {
		fmt.Fprintf(&b, "\nSentiment distribution:\n")
		labels := make([]string, 0, len(s.SentimentDist))
		for label := range s.SentimentDist {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			fmt.Fprintf(&b, "  %-12s %.1f%%\n", label, s.SentimentDist[label]*100)
		}
	}
	return b.String()
}

func fmtMean(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 3, 64)
}
