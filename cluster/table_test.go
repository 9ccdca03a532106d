package cluster

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTableDuplicateColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dup.csv")
	require.NoError(t, os.WriteFile(path, []byte("CellID,CD3,CD3\n1,2,3\n"), 0o644))
	_, err := ReadTable(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")
}

func TestSelectOrder(t *testing.T) {
	table := &Table{
		Columns: []string{"A", "B", "C"},
		Rows:    [][]string{{"1", "2", "3"}, {"4", "5", "6"}},
	}
	// Output columns follow the requested order, not the table's.
	got, err := table.Select([]string{"C", "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, got.Columns)
	assert.Equal(t, [][]string{{"3", "1"}, {"6", "4"}}, got.Rows)

	_, err = table.Select([]string{"A", "D"})
	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "D", missing.Column)
}

func TestDrop(t *testing.T) {
	table := &Table{
		Columns: []string{"A", "B", "C", "D"},
		Rows:    [][]string{{"1", "2", "3", "4"}},
	}
	got := table.Drop([]string{"B", "D", "noSuchColumn"})
	assert.Equal(t, []string{"A", "C"}, got.Columns)
	assert.Equal(t, [][]string{{"1", "3"}}, got.Rows)
}

func TestTableRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	table := &Table{
		Columns: []string{"CellID", "notes"},
		Rows:    [][]string{{"1", "has, comma"}, {"2", `has "quote"`}},
	}
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, table.Write(ctx, path))
	got, err := ReadTable(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}
