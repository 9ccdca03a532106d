package cluster

import (
	"bufio"
	"context"
	"regexp"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/pkg/errors"
)

// CellID is the name of the column holding cell IDs. It always survives
// cleaning and is always the first column of an explicitly selected table.
const CellID = "CellID"

// featuresToRemove is the default denylist. A column is excluded from
// clustering when its name starts with one of these patterns, unless the
// user overrides the denylist with an explicit marker file.
var featuresToRemove = []*regexp.Regexp{
	regexp.MustCompile(`^X_centroid`), // morphological features
	regexp.MustCompile(`^Y_centroid`),
	regexp.MustCompile(`^column_centroid`),
	regexp.MustCompile(`^row_centroid`),
	regexp.MustCompile(`^Area`),
	regexp.MustCompile(`^MajorAxisLength`),
	regexp.MustCompile(`^MinorAxisLength`),
	regexp.MustCompile(`^Eccentricity`),
	regexp.MustCompile(`^Solidity`),
	regexp.MustCompile(`^Extent`),
	regexp.MustCompile(`^Orientation`),
	regexp.MustCompile(`^DNA`),     // DNA stains: DNA0, DNA1, ...
	regexp.MustCompile(`^Hoechst`), // Hoechst0, Hoechst1, ...
	regexp.MustCompile(`^DAP`),     // DAPI0, DAPI1, ...
	regexp.MustCompile(`^AF`),      // autofluorescence: AF488, AF555, ...
	regexp.MustCompile(`^A\d{3}`),  // secondary antibody staining only: A488, A555, ...
}

// ReadMarkers reads a marker list from a text file with one marker per line.
// Each name must correspond exactly to a column name in the input table.
// Blank lines are skipped.
func ReadMarkers(ctx context.Context, path string) ([]string, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "read markers %s", path)
	}
	defer in.Close(ctx)
	var markers []string
	scanner := bufio.NewScanner(in.Reader(ctx))
	for scanner.Scan() {
		if m := strings.TrimSpace(scanner.Text()); m != "" {
			markers = append(markers, m)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read markers %s", path)
	}
	return markers, nil
}

// NormalizeMarkers places CellID at the front of the marker list, prepending
// it if absent. The relative order of all other markers is preserved.
func NormalizeMarkers(markers []string) []string {
	idx := -1
	for i, m := range markers {
		if m == CellID {
			idx = i
			break
		}
	}
	out := make([]string, 0, len(markers)+1)
	out = append(out, CellID)
	if idx < 0 {
		return append(out, markers...)
	}
	out = append(out, markers[:idx]...)
	return append(out, markers[idx+1:]...)
}

// ExcludedColumns returns the columns matching the default denylist, in the
// table's own order. Columns matching no pattern are retained silently.
func ExcludedColumns(cols []string) []string {
	var drop []string
	for _, col := range cols {
		for _, re := range featuresToRemove {
			if re.MatchString(col) {
				drop = append(drop, col)
				break
			}
		}
	}
	return drop
}
