package optimise

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/JGunda88/battery-trade-optimiser/internal/milp"
)

// Invoker runs a built plan against one MILP backend under the configured
// budgets and persists diagnostics when the model turns out infeasible.
type Invoker struct {
	Backend milp.Backend
	Options milp.Options

	// LPPath and IISPath are the fixed diagnostic artifact locations,
	// overwritten per solve. Concurrent infeasible solves sharing them race;
	// that is a documented caveat, not a guarantee.
	LPPath  string
	IISPath string

	Log zerolog.Logger
}

// Solve transitions the plan BUILT -> SOLVING -> terminal status. Infeasible
// and unbounded outcomes are data, not errors; only a backend failure
// (missing executable, crash, licence problem) returns an error.
func (iv *Invoker) Solve(ctx context.Context, plan *Plan) (*milp.Result, error) {
	plan.State = StateSolving
	iv.Log.Info().
		Str("backend", iv.Backend.Name()).
		Int("variables", plan.Model.NumVars()).
		Int("constraints", plan.Model.NumConstraints()).
		Dur("time_budget", iv.Options.TimeLimit).
		Msg("solving model")

	res, err := iv.Backend.Solve(ctx, plan.Model, iv.Options)
	if err != nil {
		return nil, err
	}
	plan.State = State(res.Status)

	if res.Status == milp.StatusInfeasible || res.Status == milp.StatusUnbounded {
		iv.writeDiagnostics(ctx, plan)
	}
	return res, nil
}

// writeDiagnostics dumps the full model and, where the backend supports it,
// an irreducible infeasible subsystem. Diagnosis is advisory: every failure
// here is logged and swallowed so it can never mask the FAILED result.
func (iv *Invoker) writeDiagnostics(ctx context.Context, plan *Plan) {
	if iv.LPPath != "" {
		if err := os.MkdirAll(filepath.Dir(iv.LPPath), 0o755); err == nil {
			if err := plan.Model.WriteLPFile(iv.LPPath); err != nil {
				iv.Log.Warn().Err(err).Str("path", iv.LPPath).Msg("LP dump failed")
			} else {
				iv.Log.Info().Str("path", iv.LPPath).Msg("LP dump written")
			}
		} else {
			iv.Log.Warn().Err(err).Str("path", iv.LPPath).Msg("LP dump failed")
		}
	}

	if iv.IISPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(iv.IISPath), 0o755); err != nil {
		iv.Log.Warn().Err(err).Str("path", iv.IISPath).Msg("IIS extraction failed")
		return
	}
	err := iv.Backend.WriteIIS(ctx, plan.Model, iv.IISPath)
	switch {
	case err == nil:
		iv.Log.Info().Str("path", iv.IISPath).Msg("IIS written")
	case errors.Is(err, milp.ErrIISUnsupported):
		iv.Log.Debug().Str("backend", iv.Backend.Name()).Msg("backend has no IIS support")
	default:
		iv.Log.Warn().Err(err).Msg("IIS extraction failed")
	}
}
