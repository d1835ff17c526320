package stage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aipulse/aipulse/internal/dataset"
	"github.com/aipulse/aipulse/internal/infer"
	"github.com/aipulse/aipulse/internal/model"
)

type fakeModeler struct {
	minDocs int
}

func (f *fakeModeler) FitTopics(ctx context.Context, texts []string) (*infer.TopicResult, error) {
	if len(texts) < f.minDocs {
		return nil, &model.InsufficientDataError{Need: f.minDocs, Got: len(texts)}
	}
	ids := make([]int, len(texts))
	for i := range ids {
		if i == 0 {
			ids[i] = model.TopicOutlier
		} else {
			ids[i] = i % 2
		}
	}
	return &infer.TopicResult{
		IDs: ids,
		Topics: []infer.TopicInfo{
			{TopicID: -1, Label: "outliers", Keywords: []string{"misc"}, Count: 1},
			{TopicID: 0, Label: "regulation", Keywords: []string{"law", "policy"}, Count: 2},
			{TopicID: 1, Label: "jobs", Keywords: []string{"work", "hiring"}, Count: 2},
		},
	}, nil
}

func TestTopic_AssignsIDsAndWritesInfo(t *testing.T) {
	infoPath := filepath.Join(t.TempDir(), "topic_info.csv")
	tbl := textTable("a", "b", "c", "d", "e")

	s := NewTopic(&fakeModeler{minDocs: 2}, infoPath, 0)
	if err := s.Enrich(context.Background(), tbl); err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}

	ids, err := tbl.Column(model.ColTopicID)
	if err != nil {
		t.Fatalf("topic_id column missing: %v", err)
	}
	if ids[0] != "-1" {
		t.Errorf("expected outlier -1 for first doc, got %q", ids[0])
	}

	info, err := dataset.ReadCSV(infoPath)
	if err != nil {
		t.Fatalf("topic info side file missing: %v", err)
	}
	if info.Len() != 3 {
		t.Errorf("expected 3 topic rows, got %d", info.Len())
	}
	label, _ := info.Cell(1, "label")
	if label != "regulation" {
		t.Errorf("unexpected topic label: %q", label)
	}
}

func TestTopic_InsufficientCorpusFailsStage(t *testing.T) {
	tbl := textTable("only one")
	s := NewTopic(&fakeModeler{minDocs: 10}, "", 0)

	err := s.Enrich(context.Background(), tbl)
	var insErr *model.InsufficientDataError
	if !errors.As(err, &insErr) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if tbl.HasColumn(model.ColTopicID) {
		t.Error("failed stage should not append a topic_id column")
	}
}

func TestTopic_MissingTextColumn(t *testing.T) {
	tbl := dataset.New([]string{"platform"})
	s := NewTopic(&fakeModeler{}, "", 0)
	err := s.Enrich(context.Background(), tbl)
	var schemaErr *model.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}
