package milp

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// CPLEX invokes the IBM CPLEX interactive optimizer in batch mode.
type CPLEX struct {
	Path string
}

func (b *CPLEX) Name() string { return "cplex" }

func (b *CPLEX) Solve(ctx context.Context, m *Model, opts Options) (*Result, error) {
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

	cmds := []string{"read " + lpPath}
	if opts.TimeLimit > 0 {
		cmds = append(cmds, fmt.Sprintf("set timelimit %d", int(opts.TimeLimit.Seconds())))
	}
	if opts.MIPGap > 0 {
		cmds = append(cmds, "set mip tolerances mipgap "+strconv.FormatFloat(opts.MIPGap, 'f', -1, 64))
	}
	if opts.Threads > 0 {
		cmds = append(cmds, fmt.Sprintf("set threads %d", opts.Threads))
	}
	if !opts.Presolve {
		cmds = append(cmds, "set preprocessing presolve n")
	}
	cmds = append(cmds, "optimize", "write "+solPath, "quit")

	args := make([]string, 0, 2*len(cmds))
	for _, c := range cmds {
		args = append(args, "-c", c)
	}

	cmd := exec.CommandContext(ctx, b.Path, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, &BackendError{Backend: b.Name(), Err: fmt.Errorf("%w: %s", err, firstLine(out))}
	}

	// On infeasible/unbounded models CPLEX refuses to write a solution file;
	// classify from the log in that case.
	if _, statErr := os.Stat(solPath); statErr != nil {
		return &Result{
			Status: cplexLogStatus(string(out)),
			Values: map[string]float64{},
		}, nil
	}

	status, values, err := parseCPLEXSolution(solPath)
	if err != nil {
		return nil, &BackendError{Backend: b.Name(), Err: err}
	}
	return &Result{
		Status:    status,
		Objective: m.Objective().Eval(values),
		Values:    values,
	}, nil
}

// WriteIIS asks CPLEX for a conflict refinement and writes it to path.
func (b *CPLEX) WriteIIS(ctx context.Context, m *Model, path string) error {
	dir, cleanup, err := scratchDir("")
	if err != nil {
		return err
	}
	defer cleanup()

	lpPath := filepath.Join(dir, "model.lp")
	if err := m.WriteLPFile(lpPath); err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, b.Path,
		"-c", "read "+lpPath,
		"-c", "conflict",
		"-c", "write "+path+" clp",
		"-c", "quit",
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("cplex conflict extraction: %w: %s", err, firstLine(out))
	}
	return nil
}

type cplexSolutionXML struct {
	Header struct {
		StatusString string `xml:"solutionStatusString,attr"`
	} `xml:"header"`
	Variables []struct {
		Name  string  `xml:"name,attr"`
		Value float64 `xml:"value,attr"`
	} `xml:"variables>variable"`
}

func parseCPLEXSolution(path string) (Status, map[string]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return StatusNotSolved, nil, err
	}
	var sol cplexSolutionXML
	if err := xml.Unmarshal(raw, &sol); err != nil {
		return StatusNotSolved, nil, fmt.Errorf("parse CPLEX solution %s: %w", path, err)
	}
	values := make(map[string]float64, len(sol.Variables))
	for _, v := range sol.Variables {
		values[v.Name] = v.Value
	}
	return cplexStatus(sol.Header.StatusString), values, nil
}

func cplexStatus(s string) Status {
	l := strings.ToLower(s)
	switch {
	case strings.Contains(l, "optimal"):
		return StatusOptimal
	case strings.Contains(l, "infeasible"):
		return StatusInfeasible
	case strings.Contains(l, "unbounded"):
		return StatusUnbounded
	case strings.Contains(l, "feasible"), strings.Contains(l, "time limit"):
		return StatusFeasible
	}
	return StatusNotSolved
}

func cplexLogStatus(out string) Status {
	o := strings.ToLower(out)
	switch {
	case strings.Contains(o, "infeasible"):
		return StatusInfeasible
	case strings.Contains(o, "unbounded"):
		return StatusUnbounded
	}
	return StatusNotSolved
}
