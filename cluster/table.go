package cluster

import (
	"context"
	"encoding/csv"

	"github.com/grailbio/base/file"
	"github.com/pkg/errors"
)

// Table is an in-memory expression matrix: rows are cells, columns are named
// features. Cell values are kept as the strings read from the CSV, so
// cleaning selects and drops columns without ever rewriting a value.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadTable loads a CSV expression table. The first record is the header.
// Duplicate column names are rejected since column selection is by name.
func ReadTable(ctx context.Context, path string) (*Table, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "read table %s", path)
	}
	defer in.Close(ctx)
	r := csv.NewReader(in.Reader(ctx))
	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "read table %s: header", path)
	}
	seen := make(map[string]bool, len(header))
	for _, col := range header {
		if seen[col] {
			return nil, errors.Errorf("read table %s: duplicate column %q", path, col)
		}
		seen[col] = true
	}
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read table %s", path)
	}
	return &Table{Columns: header, Rows: rows}, nil
}

// Write saves the table as CSV, header first, no index column.
func (t *Table) Write(ctx context.Context, path string) error {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "write table %s", path)
	}
	w := csv.NewWriter(out.Writer(ctx))
	if err := w.Write(t.Columns); err != nil {
		return errors.Wrapf(err, "write table %s", path)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return errors.Wrapf(err, "write table %s", path)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "write table %s", path)
	}
	return out.Close(ctx)
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Select returns a new table holding exactly cols, in the given order. It
// fails with MissingColumnError if any requested column is absent.
func (t *Table) Select(cols []string) (*Table, error) {
	index := make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		index[col] = i
	}
	src := make([]int, len(cols))
	for i, col := range cols {
		j, ok := index[col]
		if !ok {
			return nil, &MissingColumnError{Column: col}
		}
		src[i] = j
	}
	out := &Table{Columns: append([]string(nil), cols...)}
	out.Rows = make([][]string, len(t.Rows))
	for n, row := range t.Rows {
		picked := make([]string, len(src))
		for i, j := range src {
			picked[i] = row[j]
		}
		out.Rows[n] = picked
	}
	return out, nil
}

// Drop returns a new table without the named columns, preserving the order
// of everything kept. Names not present in the table are ignored.
func (t *Table) Drop(cols []string) *Table {
	drop := make(map[string]bool, len(cols))
	for _, col := range cols {
		drop[col] = true
	}
	keep := make([]int, 0, len(t.Columns))
	out := &Table{}
	for i, col := range t.Columns {
		if !drop[col] {
			keep = append(keep, i)
			out.Columns = append(out.Columns, col)
		}
	}
	out.Rows = make([][]string, len(t.Rows))
	for n, row := range t.Rows {
		kept := make([]string, len(keep))
		for i, j := range keep {
			kept[i] = row[j]
		}
		out.Rows[n] = kept
	}
	return out
}
