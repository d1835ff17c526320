package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Entry records one stage execution: which input file (by content hash)
// it consumed and what it produced. The ledger is what lets the
// orchestrator refuse to run a stage against stale or absent input
// instead of silently producing a coherent-looking wrong result.
type Entry struct {
	RunID        string    `json:"run_id"`
	Stage        string    `json:"stage"`
	InputPath    string    `json:"input_path"`
	InputSHA256  string    `json:"input_sha256"`
	OutputPath   string    `json:"output_path"`
	OutputSHA256 string    `json:"output_sha256,omitempty"`
	Rows         int       `json:"rows"`
	CompletedAt  time.Time `json:"completed_at"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
}

// Entry statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusBlocked   = "blocked"
	StatusSkipped   = "skipped"
)

// Ledger persists the latest entry per stage as a JSON file next to the
// processed data. The filesystem stays the sole coordination medium.
type Ledger struct {
	path    string
	Entries map[string]Entry `json:"entries"`
}

// LoadLedger reads the ledger at path, returning an empty ledger when
// the file does not exist yet.
func LoadLedger(path string) (*Ledger, error) {
	l := &Ledger{path: path, Entries: make(map[string]Entry)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if err := json.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", path, err)
	}
	if l.Entries == nil {
		l.Entries = make(map[string]Entry)
	}
	return l, nil
}

// Record stores the entry for its stage and writes the ledger to disk.
func (l *Ledger) Record(e Entry) error {
	l.Entries[e.Stage] = e
	return l.save()
}

// Get returns the latest entry for a stage.
func (l *Ledger) Get(stage string) (Entry, bool) {
	e, ok := l.Entries[stage]
	return e, ok
}

func (l *Ledger) save() error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create ledger dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}

// hashFile returns the sha256 of a file's contents, or "" with
// os.ErrNotExist wrapped when the file is absent.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
