package milp

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Gurobi invokes the gurobi_cl command-line interface. Requires a licensed
// Gurobi installation.
type Gurobi struct {
	Path string
}

func (b *Gurobi) Name() string { return "gurobi" }

func (b *Gurobi) Solve(ctx context.Context, m *Model, opts Options) (*Result, error) {
	dir, cleanup, err := scratchDir(opts.WorkDir)
	if err != nil {
		return nil, &BackendError{Backend: b.Name(), Err: err}
	}
	defer cleanup()

	lpPath := filepath.Join(dir, "model.lp")
	solPath := filepath.Join(dir, "model.sol")
	if err := m.WriteLPFile(lpPath); err != nil {
		return nil, &BackendError{Backend: b.Name(), Err: err}
	}

	args := []string{"ResultFile=" + solPath}
	if opts.TimeLimit > 0 {
		args = append(args, fmt.Sprintf("TimeLimit=%d", int(opts.TimeLimit.Seconds())))
	}
	if opts.MIPGap > 0 {
		args = append(args, "MIPGap="+strconv.FormatFloat(opts.MIPGap, 'f', -1, 64))
	}
	if opts.Threads > 0 {
		args = append(args, fmt.Sprintf("Threads=%d", opts.Threads))
	}
	if !opts.Presolve {
		args = append(args, "Presolve=0")
	}
	args = append(args, lpPath)

	cmd := exec.CommandContext(ctx, b.Path, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, &BackendError{Backend: b.Name(), Err: fmt.Errorf("%w: %s", err, firstLine(out))}
	}

	status := gurobiStatus(string(out))
	values := map[string]float64{}
	if status == StatusOptimal || status == StatusFeasible {
		values, err = parseGurobiSolution(solPath)
		if err != nil {
			return nil, &BackendError{Backend: b.Name(), Err: err}
		}
	}
	return &Result{
		Status:    status,
		Objective: m.Objective().Eval(values),
		Values:    values,
	}, nil
}

// WriteIIS computes an irreducible infeasible subsystem; gurobi_cl writes one
// when the result file carries the .ilp extension.
func (b *Gurobi) WriteIIS(ctx context.Context, m *Model, path string) error {
	if !strings.HasSuffix(path, ".ilp") {
		path += ".ilp"
	}
	dir, cleanup, err := scratchDir("")
	if err != nil {
		return err
	}
	defer cleanup()

	lpPath := filepath.Join(dir, "model.lp")
	if err := m.WriteLPFile(lpPath); err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, b.Path, "ResultFile="+path, lpPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("gurobi IIS extraction: %w: %s", err, firstLine(out))
	}
	return nil
}

func gurobiStatus(out string) Status {
	o := strings.ToLower(out)
	switch {
	case strings.Contains(o, "optimal solution found"):
		return StatusOptimal
	case strings.Contains(o, "model is infeasible"):
		return StatusInfeasible
	case strings.Contains(o, "model is unbounded"), strings.Contains(o, "infeasible or unbounded"):
		return StatusUnbounded
	case strings.Contains(o, "time limit reached"), strings.Contains(o, "solution count"):
		return StatusFeasible
	}
	return StatusNotSolved
}

// parseGurobiSolution reads the plain "name value" .sol format; '#' lines are
// comments (one of them carries the objective, which we recompute anyway).
func parseGurobiSolution(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values := make(map[string]float64)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		values[fields[0]] = v
	}
	return values, sc.Err()
}
