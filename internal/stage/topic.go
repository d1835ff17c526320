package stage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aipulse/aipulse/internal/clean"
	"github.com/aipulse/aipulse/internal/dataset"
	"github.com/aipulse/aipulse/internal/infer"
	"github.com/aipulse/aipulse/internal/model"
)

// Topic assigns each record a cluster id and writes the model-level
// topic table to a side file. Unlike the other stages the model needs
// the whole corpus in one call, so there is no per-batch sentinel: a
// failed fit (including a corpus below the model's minimum) fails the
// stage, keeping topic_id -1 unambiguous as "outlier".
type Topic struct {
	modeler  infer.TopicModeler
	infoPath string
	maxChars int
}

// NewTopic creates the topic stage. infoPath receives the topic-id to
// label/keywords table.
func NewTopic(modeler infer.TopicModeler, infoPath string, maxChars int) *Topic {
	return &Topic{modeler: modeler, infoPath: infoPath, maxChars: maxChars}
}

// Name implements Stage.
func (s *Topic) Name() string { return "topics" }

// Enrich implements Stage.
func (s *Topic) Enrich(ctx context.Context, t *dataset.Table) error {
	texts, err := t.Column(model.ColText)
	if err != nil {
		return &model.SchemaError{Column: model.ColText}
	}

	corpus := make([]string, len(texts))
	for i, s2 := range texts {
		corpus[i] = truncate(clean.NormalizeHTML(s2), s.maxChars)
	}

	result, err := s.modeler.FitTopics(ctx, corpus)
	if err != nil {
		return fmt.Errorf("fit topics: %w", err)
	}

	ids := make([]string, len(result.IDs))
	for i, id := range result.IDs {
		ids[i] = strconv.Itoa(id)
	}
	if err := t.AppendColumn(model.ColTopicID, ids); err != nil {
		return err
	}

	if s.infoPath != "" {
		if err := writeTopicInfo(result.Topics, s.infoPath); err != nil {
			return fmt.Errorf("write topic info: %w", err)
		}
	}
	return nil
}

func writeTopicInfo(topics []infer.TopicInfo, path string) error {
	info := dataset.New([]string{"topic_id", "label", "keywords", "count"})
	for _, topic := range topics {
		row := []string{
			strconv.Itoa(topic.TopicID),
			topic.Label,
			strings.Join(topic.Keywords, " "),
			strconv.Itoa(topic.Count),
		}
		if err := info.AppendRow(row); err != nil {
			return err
		}
	}
	return dataset.WriteCSV(info, path)
}
