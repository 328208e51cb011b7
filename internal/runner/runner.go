// Package runner orchestrates one optimisation request: validate paths, align
// input, build the MILP, solve it, extract the solution, and write the report.
// Each run is a fresh, independent pipeline with no shared mutable state.
package runner

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/JGunda88/battery-trade-optimiser/internal/align"
	"github.com/JGunda88/battery-trade-optimiser/internal/config"
	"github.com/JGunda88/battery-trade-optimiser/internal/fileio"
	"github.com/JGunda88/battery-trade-optimiser/internal/metrics"
	"github.com/JGunda88/battery-trade-optimiser/internal/milp"
	"github.com/JGunda88/battery-trade-optimiser/internal/optimise"
	"github.com/JGunda88/battery-trade-optimiser/internal/report"
)

// Request names the tabular inputs and the report destination for one run.
type Request struct {
	BatteryPath    string
	HalfHourlyPath string
	HourlyPath     string
	OutputPath     string
}

// Runner executes requests against a fixed configuration. Safe for concurrent
// use: every run builds its own model and variable set. The only shared
// resources are the diagnostic artifact paths, overwritten per infeasible
// solve.
type Runner struct {
	cfg     *config.Config
	backend milp.Backend
	log     zerolog.Logger
	rec     *metrics.Recorder
}

// New builds a Runner. rec may be nil when metrics are not wanted.
func New(cfg *config.Config, log zerolog.Logger, rec *metrics.Recorder) (*Runner, error) {
	backend, err := milp.ForName(cfg.Solver.Backend, cfg.Solver.Executable)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, backend: backend, log: log, rec: rec}, nil
}

// WithBackend substitutes the solver backend; used by tests.
func (r *Runner) WithBackend(b milp.Backend) *Runner {
	out := *r
	out.backend = b
	return &out
}

// Run executes the full pipeline for one request. Fatal errors (bad input,
// backend crash) return an error; infeasible or unbounded solves return a
// FAILED response with diagnostics.
func (r *Runner) Run(ctx context.Context, req Request) (*report.Response, error) {
	batteryPath, err := fileio.ValidateInputFile(req.BatteryPath)
	if err != nil {
		return nil, err
	}
	halfHourlyPath, err := fileio.ValidateInputFile(req.HalfHourlyPath)
	if err != nil {
		return nil, err
	}
	hourlyPath, err := fileio.ValidateInputFile(req.HourlyPath)
	if err != nil {
		return nil, err
	}
	outputPath, err := fileio.PrepareOutputPath(req.OutputPath)
	if err != nil {
		return nil, err
	}

	in, err := align.New(r.log).Run(batteryPath, halfHourlyPath, hourlyPath)
	if err != nil {
		return nil, err
	}
	if r.cfg.BatteryFile != "" {
		override, err := config.LoadBatteryOverride(r.cfg.BatteryFile)
		if err != nil {
			return nil, err
		}
		in.Battery = override.Apply(in.Battery)
		if err := in.Battery.Validate(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	plan, err := optimise.Build(in, optimise.ModelOptions{
		StepHours:             r.cfg.StepSizeHours,
		TerminalSoCMode:       r.cfg.Solver.TerminalSoCMode,
		TerminalPenaltyPerMWh: r.cfg.Solver.TerminalSoCPenaltyPerMWh,
	})
	if err != nil {
		return nil, err
	}

	iv := &optimise.Invoker{
		Backend: r.backend,
		Options: milp.Options{
			TimeLimit: r.cfg.Solver.TimeBudget(),
			MIPGap:    r.cfg.Solver.MIPGap,
			Threads:   r.cfg.Solver.Threads,
			Presolve:  r.cfg.Solver.Presolve,
		},
		LPPath:  r.cfg.Diagnostics.LPPath,
		IISPath: r.cfg.Diagnostics.IISPath,
		Log:     r.log,
	}
	res, err := iv.Solve(ctx, plan)
	if err != nil {
		return nil, err
	}

	sol := optimise.Extract(plan, res, time.Since(start), r.cfg.Report.DecimalPlaces)
	r.rec.ObserveSolve(string(sol.Status), sol.RunTime)
	r.log.Info().
		Str("status", string(sol.Status)).
		Float64("objective_gbp", sol.Objective).
		Dur("run_time", sol.RunTime).
		Msg("solve finished")

	outputs, err := report.Write(outputPath, sol)
	if err != nil {
		return nil, err
	}
	resp := report.BuildResponse(sol, r.backend.Name(), r.cfg.Report.DecimalPlaces, outputs)
	return &resp, nil
}
