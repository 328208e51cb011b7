package model

import (
	"strings"
	"time"
)

// SolveStatus is the terminal state reported by a solver backend for one model.
// The per-request lifecycle is BUILT -> SOLVING -> one of these.
type SolveStatus string

const (
	StatusOptimal    SolveStatus = "Optimal"
	StatusFeasible   SolveStatus = "Feasible"
	StatusInfeasible SolveStatus = "Infeasible"
	StatusUnbounded  SolveStatus = "Unbounded"
	StatusError      SolveStatus = "SolverError"
)

// JobStatus is the user-facing outcome of one optimisation request.
type JobStatus string

const (
	JobSuccess JobStatus = "SUCCESS"
	JobFailed  JobStatus = "FAILED"
)

// JobStatusFor classifies a solver status: optimal or feasible (case-insensitive)
// counts as SUCCESS, everything else as FAILED.
func JobStatusFor(s SolveStatus) JobStatus {
	switch strings.ToLower(string(s)) {
	case "optimal", "feasible":
		return JobSuccess
	}
	return JobFailed
}

// OptimiserSolution holds everything extracted from one solved model.
// Immutable once produced; consumed only by the result formatter.
type OptimiserSolution struct {
	Status    SolveStatus
	Objective float64 // profit in GBP, rounded for reporting

	// Time-indexed series, keyed by canonical half-hour timestamp.
	ChargePowerM1    map[string]float64 // MW
	DischargePowerM1 map[string]float64 // MW
	ChargePowerM2    map[string]float64 // MW
	DischargePowerM2 map[string]float64 // MW
	StateOfCharge    map[string]float64 // MWh
	IsDischarging    map[string]int     // 1 = discharging

	// RunTime covers the whole build+solve+extract sequence, not just the
	// backend's internal timer.
	RunTime time.Duration
}
