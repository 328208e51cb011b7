package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JGunda88/battery-trade-optimiser/internal/model"
)

// Write persists the report: the merged time-series table at path, and the
// summary block alongside it with a "_summary" suffix. Returns the output
// locations keyed for the response payload.
func Write(path string, sol *model.OptimiserSolution) (map[string]string, error) {
	table := BuildTable(sol)
	if err := writeTableCSV(path, table); err != nil {
		return nil, err
	}

	summaryPath := summaryPathFor(path)
	if err := writeSummaryCSV(summaryPath, Summary{Status: sol.Status, Objective: sol.Objective}); err != nil {
		return nil, err
	}

	return map[string]string{
		"results_output_path": path,
		"summary_output_path": summaryPath,
	}, nil
}

func writeTableCSV(path string, table Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(table.Columns); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeSummaryCSV(path string, s Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	rows := [][]string{
		{"Field", "Value"},
		{"status", string(s.Status)},
		{"objective", strconv.FormatFloat(s.Objective, 'f', -1, 64)},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func summaryPathFor(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_summary" + ext
}
