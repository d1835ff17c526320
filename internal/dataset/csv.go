package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aipulse/aipulse/internal/model"
)

// ReadCSV loads a UTF-8 CSV file with a header row. Every cell is kept
// as a string; missing trailing cells read as "", and a row wider than
// the header is a parse error. A nonexistent file is reported as
// model.ErrMissingInput so callers can distinguish "skip this source"
// from a genuinely malformed file.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrMissingInput, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := r.Read()
	if err == io.EOF {
		return New(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	t := New(header)
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		// A row wider than the header is a malformed file; dropping the
		// extra cells would lose data silently.
		if err := t.AppendRow(row); err != nil {
			return nil, fmt.Errorf("read %s line %d: %w", path, line, err)
		}
	}
	return t, nil
}

// WriteCSV writes the table as UTF-8 CSV with a header row, creating
// parent directories as needed.
func WriteCSV(t *Table, path string) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(t.header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, row := range t.rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
