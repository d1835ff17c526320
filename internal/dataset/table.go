package dataset

import "fmt"

// Table is an ordered tabular dataset with string-typed cells, matching
// the CSV files the pipeline moves between stages. Rows are never
// deleted or reordered once loaded; stages enrich a table only by
// appending columns, so per-record provenance survives end to end.
type Table struct {
	header []string
	rows   [][]string
	index  map[string]int
}

// New creates an empty table with the given header.
func New(header []string) *Table {
	t := &Table{header: append([]string(nil), header...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.header))
	for i, name := range t.header {
		t.index[name] = i
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Header returns a copy of the column names in order.
func (t *Table) Header() []string {
	return append([]string(nil), t.header...)
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the values of the named column, one per row.
func (t *Table) Column(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Cell returns the value at the given row in the named column.
func (t *Table) Cell(row int, name string) (string, error) {
	i, ok := t.index[name]
	if !ok {
		return "", fmt.Errorf("no column %q", name)
	}
	if row < 0 || row >= len(t.rows) {
		return "", fmt.Errorf("row %d out of range (%d rows)", row, len(t.rows))
	}
	return t.rows[row][i], nil
}

// AppendRow adds a row. Short rows are padded with empty cells so that
// a source file with fewer columns still aligns with the header.
func (t *Table) AppendRow(row []string) error {
	if len(row) > len(t.header) {
		return fmt.Errorf("row has %d cells, header has %d columns", len(row), len(t.header))
	}
	padded := make([]string, len(t.header))
	copy(padded, row)
	t.rows = append(t.rows, padded)
	return nil
}

// SetColumn overwrites every cell of an existing column, or appends the
// column if it does not exist yet. Used by the merger to force the
// platform column to the canonical source name.
func (t *Table) SetColumn(name string, value string) {
	i, ok := t.index[name]
	if !ok {
		t.header = append(t.header, name)
		t.reindex()
		i = t.index[name]
		for r := range t.rows {
			t.rows[r] = append(t.rows[r], "")
		}
	}
	for r := range t.rows {
		t.rows[r][i] = value
	}
}

// AppendColumn adds a new column with one value per row. Appending over
// an existing name or with a mismatched length is an error: stages may
// only grow the schema, never rewrite it.
func (t *Table) AppendColumn(name string, values []string) error {
	if t.HasColumn(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.rows))
	}
	t.header = append(t.header, name)
	t.reindex()
	for r := range t.rows {
		t.rows[r] = append(t.rows[r], values[r])
	}
	return nil
}

// MapColumn applies fn to every cell of an existing column in place.
func (t *Table) MapColumn(name string, fn func(string) string) error {
	i, ok := t.index[name]
	if !ok {
		return fmt.Errorf("no column %q", name)
	}
	for r := range t.rows {
		t.rows[r][i] = fn(t.rows[r][i])
	}
	return nil
}

// AppendFrom appends every row of other, aligning columns by name.
// Columns present in other but not in t are added first (empty-filled
// for existing rows); columns missing from other stay empty.
func (t *Table) AppendFrom(other *Table) {
	for _, name := range other.header {
		if !t.HasColumn(name) {
			t.header = append(t.header, name)
			t.reindex()
			for r := range t.rows {
				t.rows[r] = append(t.rows[r], "")
			}
		}
	}
	for _, row := range other.rows {
		padded := make([]string, len(t.header))
		for j, name := range other.header {
			padded[t.index[name]] = row[j]
		}
		t.rows = append(t.rows, padded)
	}
}
