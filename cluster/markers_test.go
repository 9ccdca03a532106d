package cluster

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestNormalizeMarkers(t *testing.T) {
	// CellID absent: prepended.
	expect.EQ(t, NormalizeMarkers([]string{"CD3", "CD8"}), []string{"CellID", "CD3", "CD8"})
	// CellID present but not first: moved to the front, rest kept in order.
	expect.EQ(t, NormalizeMarkers([]string{"CD3", "CellID", "CD8"}), []string{"CellID", "CD3", "CD8"})
	expect.EQ(t, NormalizeMarkers([]string{"CD3", "CD8", "CellID"}), []string{"CellID", "CD3", "CD8"})
	// Already normalized: unchanged.
	expect.EQ(t, NormalizeMarkers([]string{"CellID", "CD3"}), []string{"CellID", "CD3"})
	// Empty list still selects the identity column.
	expect.EQ(t, NormalizeMarkers(nil), []string{"CellID"})
}

func TestExcludedColumns(t *testing.T) {
	cols := []string{
		"CellID",
		"X_centroid", "Y_centroid", "column_centroid", "row_centroid",
		"Area", "MajorAxisLength", "MinorAxisLength", "Eccentricity",
		"Solidity", "Extent", "Orientation",
		"DNA1", "Hoechst0", "DAPI2",
		"AF488", "A488", "A555ilastik",
		"CD3", "CD8", "panCK",
	}
	expect.EQ(t, ExcludedColumns(cols), []string{
		"X_centroid", "Y_centroid", "column_centroid", "row_centroid",
		"Area", "MajorAxisLength", "MinorAxisLength", "Eccentricity",
		"Solidity", "Extent", "Orientation",
		"DNA1", "Hoechst0", "DAPI2",
		"AF488", "A488", "A555ilastik",
	})
}

// The secondary-antibody pattern needs at least three digits right after the
// leading A. Two digits stay, three or more go, whatever the suffix.
func TestAntibodyPattern(t *testing.T) {
	expect.EQ(t, ExcludedColumns([]string{"A48"}), []string(nil))
	expect.EQ(t, ExcludedColumns([]string{"A488"}), []string{"A488"})
	expect.EQ(t, ExcludedColumns([]string{"A4885"}), []string{"A4885"})
	expect.EQ(t, ExcludedColumns([]string{"A488x"}), []string{"A488x"})
	expect.EQ(t, ExcludedColumns([]string{"A555ilastik"}), []string{"A555ilastik"})
}

// Pattern matching is anchored at the start of the name, so names merely
// containing a denylisted token survive.
func TestExclusionAnchoring(t *testing.T) {
	expect.EQ(t, ExcludedColumns([]string{"CD3_DNA1", "myArea", "xAF488"}), []string(nil))
	// Prefix matches are enough; the pattern need not cover the whole name.
	expect.EQ(t, ExcludedColumns([]string{"AreaShape", "DNA"}), []string{"AreaShape", "DNA"})
}

func TestReadMarkers(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := context.Background()

	path := filepath.Join(tmpdir, "markers.txt")
	assert.NoError(t, os.WriteFile(path, []byte("CD3\n CD8 \n\npanCK\n"), 0o644))
	markers, err := ReadMarkers(ctx, path)
	assert.NoError(t, err)
	expect.EQ(t, markers, []string{"CD3", "CD8", "panCK"})

	_, err = ReadMarkers(ctx, filepath.Join(tmpdir, "absent.txt"))
	expect.True(t, err != nil)
}
