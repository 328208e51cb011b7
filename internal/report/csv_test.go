package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteProducesTableAndSummary(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "results.csv")

	outputs, err := Write(out, sampleSolution())
	require.NoError(t, err)
	require.Equal(t, out, outputs["results_output_path"])
	require.Equal(t, filepath.Join(dir, "results_summary.csv"), outputs["summary_output_path"])

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + two timestamps
	require.Equal(t, tableColumns, records[0])

	sf, err := os.Open(outputs["summary_output_path"])
	require.NoError(t, err)
	defer sf.Close()
	summary, err := csv.NewReader(sf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Field", "Value"},
		{"status", "Optimal"},
		{"objective", "50"},
	}, summary)
}

func TestWriteFailsOnMissingDirectory(t *testing.T) {
	_, err := Write(filepath.Join(t.TempDir(), "missing", "results.csv"), sampleSolution())
	require.Error(t, err)
}

func TestSummaryPathFor(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/tmp/results.csv", "/tmp/results_summary.csv"},
		{"results.csv", "results_summary.csv"},
		{"/tmp/noext", "/tmp/noext_summary"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, summaryPathFor(tc.in))
	}
}
