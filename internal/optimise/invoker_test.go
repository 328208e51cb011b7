package optimise

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/JGunda88/battery-trade-optimiser/internal/milp"
)

// stubBackend returns a canned result without running any executable.
type stubBackend struct {
	result   *milp.Result
	err      error
	iisErr   error
	iisCalls int
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Solve(_ context.Context, _ *milp.Model, _ milp.Options) (*milp.Result, error) {
	return s.result, s.err
}

func (s *stubBackend) WriteIIS(_ context.Context, _ *milp.Model, path string) error {
	s.iisCalls++
	if s.iisErr != nil {
		return s.iisErr
	}
	return os.WriteFile(path, []byte("conflict\n"), 0o644)
}

func builtPlan(t *testing.T) *Plan {
	t.Helper()
	in := testInput(grid4, []float64{10, 50, 30, 40}, []float64{30, 30, 35, 35})
	plan, err := Build(in, hardOpts())
	require.NoError(t, err)
	return plan
}

func TestSolveTransitionsStateToTerminalStatus(t *testing.T) {
	plan := builtPlan(t)
	iv := &Invoker{
		Backend: &stubBackend{result: &milp.Result{Status: milp.StatusOptimal, Values: map[string]float64{}}},
		Log:     zerolog.Nop(),
	}

	res, err := iv.Solve(context.Background(), plan)
	require.NoError(t, err)
	require.Equal(t, milp.StatusOptimal, res.Status)
	require.Equal(t, State("Optimal"), plan.State)
}

func TestSolveBackendErrorPropagates(t *testing.T) {
	plan := builtPlan(t)
	wantErr := &milp.BackendError{Backend: "stub", Err: errors.New("executable not found")}
	iv := &Invoker{Backend: &stubBackend{err: wantErr}, Log: zerolog.Nop()}

	_, err := iv.Solve(context.Background(), plan)
	var be *milp.BackendError
	require.ErrorAs(t, err, &be)
	require.Equal(t, StateSolving, plan.State, "state stays SOLVING on engine failure")
}

func TestSolveInfeasibleWritesDiagnostics(t *testing.T) {
	plan := builtPlan(t)
	dir := t.TempDir()
	stub := &stubBackend{result: &milp.Result{Status: milp.StatusInfeasible, Values: map[string]float64{}}}
	iv := &Invoker{
		Backend: stub,
		LPPath:  filepath.Join(dir, "diag", "model.lp"),
		IISPath: filepath.Join(dir, "diag", "model.ilp"),
		Log:     zerolog.Nop(),
	}

	res, err := iv.Solve(context.Background(), plan)
	require.NoError(t, err, "infeasible is data, not an error")
	require.Equal(t, milp.StatusInfeasible, res.Status)

	lp, err := os.ReadFile(iv.LPPath)
	require.NoError(t, err)
	require.Contains(t, string(lp), "Maximize")
	require.FileExists(t, iv.IISPath)
	require.Equal(t, 1, stub.iisCalls)
}

func TestSolveInfeasibleSwallowsIISFailure(t *testing.T) {
	plan := builtPlan(t)
	dir := t.TempDir()
	stub := &stubBackend{
		result: &milp.Result{Status: milp.StatusInfeasible, Values: map[string]float64{}},
		iisErr: milp.ErrIISUnsupported,
	}
	iv := &Invoker{
		Backend: stub,
		LPPath:  filepath.Join(dir, "model.lp"),
		IISPath: filepath.Join(dir, "model.ilp"),
		Log:     zerolog.Nop(),
	}

	_, err := iv.Solve(context.Background(), plan)
	require.NoError(t, err)
	require.NoFileExists(t, iv.IISPath)
}

func TestSolveOptimalSkipsDiagnostics(t *testing.T) {
	plan := builtPlan(t)
	dir := t.TempDir()
	stub := &stubBackend{result: &milp.Result{Status: milp.StatusOptimal, Values: map[string]float64{}}}
	iv := &Invoker{
		Backend: stub,
		LPPath:  filepath.Join(dir, "model.lp"),
		IISPath: filepath.Join(dir, "model.ilp"),
		Log:     zerolog.Nop(),
	}

	_, err := iv.Solve(context.Background(), plan)
	require.NoError(t, err)
	require.NoFileExists(t, iv.LPPath)
	require.Equal(t, 0, stub.iisCalls)
}
