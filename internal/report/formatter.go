// Package report reshapes an OptimiserSolution into the on-disk report and
// the response payload. It never computes new values.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/JGunda88/battery-trade-optimiser/internal/model"
)

// Columns of the merged time-series table, in output order.
var tableColumns = []string{
	"timestamp",
	"charge_power_m1",
	"discharge_power_m1",
	"charge_power_m2",
	"discharge_power_m2",
	"state_of_charge",
	"is_discharging",
}

// Table is the single time-ordered tabular structure merging every
// decision-variable series, outer-joined on timestamp.
type Table struct {
	Columns []string
	Rows    [][]string
}

// BuildTable outer-joins all solution series on timestamp, sorted ascending.
// A timestamp missing from some series leaves that cell empty.
func BuildTable(sol *model.OptimiserSolution) Table {
	series := []map[string]float64{
		sol.ChargePowerM1,
		sol.DischargePowerM1,
		sol.ChargePowerM2,
		sol.DischargePowerM2,
		sol.StateOfCharge,
	}

	seen := make(map[string]bool)
	var timestamps []string
	collect := func(ts string) {
		if !seen[ts] {
			seen[ts] = true
			timestamps = append(timestamps, ts)
		}
	}
	for _, s := range series {
		for ts := range s {
			collect(ts)
		}
	}
	for ts := range sol.IsDischarging {
		collect(ts)
	}
	sort.Strings(timestamps)

	rows := make([][]string, 0, len(timestamps))
	for _, ts := range timestamps {
		row := make([]string, 0, len(tableColumns))
		row = append(row, ts)
		for _, s := range series {
			if v, ok := s[ts]; ok {
				row = append(row, formatFloat(v))
			} else {
				row = append(row, "")
			}
		}
		if v, ok := sol.IsDischarging[ts]; ok {
			row = append(row, strconv.Itoa(v))
		} else {
			row = append(row, "")
		}
		rows = append(rows, row)
	}
	return Table{Columns: tableColumns, Rows: rows}
}

// Summary is the report's status/objective block.
type Summary struct {
	Status    model.SolveStatus
	Objective float64
}

// Response is the payload handed back to the transport layer.
type Response struct {
	JobStatus    model.JobStatus   `json:"job_status"`
	ObjectiveGBP *float64          `json:"objective_gbp"`
	Messages     []string          `json:"messages"`
	Outputs      map[string]string `json:"outputs"`
}

// BuildResponse assembles the response payload: job status, objective (absent
// on failure), human-readable diagnostics, and output locations.
func BuildResponse(sol *model.OptimiserSolution, backendName string, decimalPlaces int, outputs map[string]string) Response {
	jobStatus := model.JobStatusFor(sol.Status)

	var objective *float64
	if jobStatus == model.JobSuccess {
		v := sol.Objective
		objective = &v
	}

	runTime := strconv.FormatFloat(sol.RunTime.Seconds(), 'f', decimalPlaces, 64)
	messages := []string{
		fmt.Sprintf("solver used: %s", strings.ToUpper(backendName)),
		fmt.Sprintf("solver status: %s", sol.Status),
		fmt.Sprintf("optimiser run time (s): %s", runTime),
	}

	return Response{
		JobStatus:    jobStatus,
		ObjectiveGBP: objective,
		Messages:     messages,
		Outputs:      outputs,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
