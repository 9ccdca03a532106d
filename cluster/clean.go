// Package cluster prepares mcmicro single-cell marker expression tables for
// clustering and drives the external FastPG clustering script.
//
// A run has three steps: resolve the log-transform mode, clean the input
// table down to the marker columns that should participate in clustering,
// and hand the cleaned table to FastPG, reading back its modularity score.
package cluster

import (
	"context"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
)

// Outputs lists the file names one clustering run generates under the output
// directory. Clean is written by this package; Cells and Clusters are
// written by the FastPG script.
type Outputs struct {
	Clean    string // cleaned expression table
	Cells    string // per-cell cluster assignment
	Clusters string // per-cluster mean expression of each feature
}

// OutputsFor derives the generated file names from the input table's name.
func OutputsFor(inputPath string) Outputs {
	prefix := DataName(inputPath)
	return Outputs{
		Clean:    prefix + "-clean.csv",
		Cells:    prefix + "-cells.csv",
		Clusters: prefix + "-clusters.csv",
	}
}

// DataName returns the input file's name without directory or extension,
// used as the prefix for all generated file names.
func DataName(path string) string {
	name := path
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}

// Clean reads the expression table at inputPath, restricts it to the columns
// that should participate in clustering, and writes the result to
// <outputDir>/<name>-clean.csv, returning that path.
//
// With a non-empty marker list the list acts as an allowlist: it is
// normalized so CellID comes first, and the output holds exactly the listed
// columns in list order. Any listed column absent from the table is a
// MissingColumnError. Without markers the default denylist applies: columns
// matching an exclusion pattern are dropped and everything else is kept in
// its original position. Either way the source table must contain CellID.
func Clean(ctx context.Context, inputPath, outputDir string, markers []string) (string, error) {
	log.Debug.Printf("cleaning %s", inputPath)
	table, err := ReadTable(ctx, inputPath)
	if err != nil {
		return "", err
	}
	if !table.HasColumn(CellID) {
		return "", &MissingIdentityColumnError{Path: inputPath}
	}
	var cleaned *Table
	if len(markers) > 0 {
		cleaned, err = table.Select(NormalizeMarkers(markers))
		if err != nil {
			return "", err
		}
	} else {
		cleaned = table.Drop(ExcludedColumns(table.Columns))
	}
	cleanPath := file.Join(outputDir, OutputsFor(inputPath).Clean)
	if err := cleaned.Write(ctx, cleanPath); err != nil {
		return "", err
	}
	log.Debug.Printf("cleaned data is in %s", cleanPath)
	return cleanPath, nil
}
