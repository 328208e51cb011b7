package milp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is a backend-reported solve outcome.
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusFeasible   Status = "Feasible" // incumbent found but optimality not proven
	StatusInfeasible Status = "Infeasible"
	StatusUnbounded  Status = "Unbounded"
	StatusNotSolved  Status = "NotSolved"
)

// Options are the external solve controls. None of them are defaulted here;
// the caller owns the configuration surface.
type Options struct {
	TimeLimit time.Duration // 0 = no limit
	MIPGap    float64       // relative optimality gap, 0 = solver default
	Threads   int           // 0 = solver default
	Presolve  bool
	WorkDir   string // scratch dir for model/solution files; empty = temp dir
}

// Result carries the terminal status and, when an incumbent exists, the
// variable assignment. Objective is recomputed from Values against the model's
// own objective expression so every backend reports it identically.
type Result struct {
	Status    Status
	Objective float64
	Values    map[string]float64
}

// ErrIISUnsupported is returned by backends that cannot extract an
// irreducible infeasible subsystem.
var ErrIISUnsupported = errors.New("milp: backend does not support IIS extraction")

// Backend is one interchangeable MILP solver engine. All backends accept the
// same model structure and return a status plus variable values.
type Backend interface {
	Name() string
	Solve(ctx context.Context, m *Model, opts Options) (*Result, error)
	// WriteIIS extracts an irreducible infeasible subsystem for an infeasible
	// model to path. Best-effort: callers must tolerate failure.
	WriteIIS(ctx context.Context, m *Model, path string) error
}

// BackendError marks a fatal engine failure (missing executable, crash,
// licence problem). Solve statuses such as Infeasible are not errors.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("solver backend %s: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// ForName selects a backend by its configured identifier. execPath overrides
// the default executable name when non-empty.
func ForName(name, execPath string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cbc":
		b := &CBC{Path: "cbc"}
		if execPath != "" {
			b.Path = execPath
		}
		return b, nil
	case "gurobi":
		b := &Gurobi{Path: "gurobi_cl"}
		if execPath != "" {
			b.Path = execPath
		}
		return b, nil
	case "cplex":
		b := &CPLEX{Path: "cplex"}
		if execPath != "" {
			b.Path = execPath
		}
		return b, nil
	}
	return nil, fmt.Errorf("milp: unknown solver backend %q", name)
}
