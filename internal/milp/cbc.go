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

// CBC invokes the COIN-OR CBC command-line solver. This is the open-source
// default backend.
type CBC struct {
	// Path is the cbc executable (name on PATH or absolute).
	Path string
}

func (b *CBC) Name() string { return "cbc" }

func (b *CBC) Solve(ctx context.Context, m *Model, opts Options) (*Result, error) {
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

	args := []string{lpPath}
	if !opts.Presolve {
		args = append(args, "presolve", "off")
	}
	if opts.TimeLimit > 0 {
		args = append(args, "sec", strconv.Itoa(int(opts.TimeLimit.Seconds())))
	}
	if opts.Threads > 0 {
		args = append(args, "threads", strconv.Itoa(opts.Threads))
	}
	if opts.MIPGap > 0 {
		args = append(args, "ratio", strconv.FormatFloat(opts.MIPGap, 'f', -1, 64))
	}
	args = append(args, "branch", "printingOptions", "all", "solution", solPath)

	cmd := exec.CommandContext(ctx, b.Path, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		// CBC exits non-zero on genuine failures only; infeasible models
		// still produce a solution file with a status header.
		if _, statErr := os.Stat(solPath); statErr != nil {
			return nil, &BackendError{Backend: b.Name(), Err: fmt.Errorf("%w: %s", err, firstLine(out))}
		}
	}

	status, values, err := parseCBCSolution(solPath)
	if err != nil {
		return nil, &BackendError{Backend: b.Name(), Err: err}
	}
	return &Result{
		Status:    status,
		Objective: m.Objective().Eval(values),
		Values:    values,
	}, nil
}

// WriteIIS is unsupported: CBC has no IIS facility.
func (b *CBC) WriteIIS(ctx context.Context, m *Model, path string) error {
	return ErrIISUnsupported
}

// parseCBCSolution reads a CBC "printingOptions all" solution file. The first
// line is the status header, e.g.
//
//	Optimal - objective value 52.00000000
//	Infeasible - objective value 0.00000000
//	Stopped on time limit - objective value 12.50000000
//
// followed by one row per variable: index, name, value, reduced cost.
// Rows are prefixed with "**" when the value violates a bound.
func parseCBCSolution(path string) (Status, map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return StatusNotSolved, nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return StatusNotSolved, nil, fmt.Errorf("empty solution file %s", path)
	}
	status := cbcStatus(sc.Text())

	values := make(map[string]float64)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) > 0 && fields[0] == "**" {
			fields = fields[1:]
		}
		if len(fields) < 3 {
			continue
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			continue
		}
		values[fields[1]] = v
	}
	return status, values, sc.Err()
}

func cbcStatus(header string) Status {
	h := strings.ToLower(header)
	switch {
	case strings.HasPrefix(h, "optimal"):
		return StatusOptimal
	case strings.Contains(h, "infeasible"):
		return StatusInfeasible
	case strings.Contains(h, "unbounded"):
		return StatusUnbounded
	case strings.HasPrefix(h, "stopped") && strings.Contains(h, "objective value"):
		// Budget elapsed with an incumbent: best solution so far.
		return StatusFeasible
	}
	return StatusNotSolved
}

func scratchDir(workDir string) (string, func(), error) {
	if workDir != "" {
		if err := os.MkdirAll(workDir, 0o755); err != nil {
			return "", nil, err
		}
		return workDir, func() {}, nil
	}
	dir, err := os.MkdirTemp("", "milp-")
	if err != nil {
		return "", nil, err
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}

func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
