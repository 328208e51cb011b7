// Package config defines the externally settable configuration surface.
// A Config is constructed once per process, validated, and threaded through
// the pipeline as a value; there is no process-wide mutable singleton.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Terminal state-of-charge modes. Exactly one applies per solve.
const (
	TerminalHard = "hard" // soc(last) == initial SoC
	TerminalSoft = "soft" // penalised band around the initial SoC
)

type Config struct {
	// StepSizeHours is the half-hour grid step, in hours.
	StepSizeHours float64 `mapstructure:"step_size_hours"`

	// BatteryFile optionally points at a YAML battery preset overlaid onto
	// the properties extracted from the parameter table.
	BatteryFile string `mapstructure:"battery_file"`

	Server      ServerConfig      `mapstructure:"server"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Solver      SolverConfig      `mapstructure:"solver"`
	Report      ReportConfig      `mapstructure:"report"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug or release
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

type SolverConfig struct {
	// Backend selects the MILP engine: cbc (default), gurobi, or cplex.
	Backend string `mapstructure:"backend"`
	// Executable overrides the backend's default executable path.
	Executable     string  `mapstructure:"executable"`
	TimeBudgetSecs int     `mapstructure:"time_budget_secs"`
	Threads        int     `mapstructure:"threads"`
	MIPGap         float64 `mapstructure:"mip_gap"`
	Presolve       bool    `mapstructure:"presolve"`

	TerminalSoCMode          string  `mapstructure:"terminal_soc_mode"`
	TerminalSoCPenaltyPerMWh float64 `mapstructure:"terminal_soc_penalty_per_mwh"`
}

func (s SolverConfig) TimeBudget() time.Duration {
	return time.Duration(s.TimeBudgetSecs) * time.Second
}

type ReportConfig struct {
	DecimalPlaces int `mapstructure:"decimal_places"`
}

type DiagnosticsConfig struct {
	// LPPath and IISPath are fixed artifact locations, overwritten per solve.
	LPPath  string `mapstructure:"lp_path"`
	IISPath string `mapstructure:"iis_path"`
}

// Load reads configuration from an optional file plus BTO_* environment
// overrides. An empty path uses defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("step_size_hours", 0.5)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("solver.backend", "cbc")
	v.SetDefault("solver.time_budget_secs", 60)
	v.SetDefault("solver.threads", 1)
	v.SetDefault("solver.mip_gap", 0.01)
	v.SetDefault("solver.presolve", true)
	v.SetDefault("solver.terminal_soc_mode", TerminalHard)
	v.SetDefault("solver.terminal_soc_penalty_per_mwh", 100000.0)

	v.SetDefault("report.decimal_places", 2)

	v.SetDefault("diagnostics.lp_path", "diagnostics/model.lp")
	v.SetDefault("diagnostics.iis_path", "diagnostics/model.ilp")
}

func (c *Config) Validate() error {
	if c.StepSizeHours <= 0 || c.StepSizeHours > 1 {
		return fmt.Errorf("step_size_hours must be in (0, 1], got %v", c.StepSizeHours)
	}
	switch strings.ToLower(c.Solver.Backend) {
	case "cbc", "gurobi", "cplex":
	default:
		return fmt.Errorf("solver.backend must be one of cbc, gurobi, cplex; got %q", c.Solver.Backend)
	}
	switch c.Solver.TerminalSoCMode {
	case TerminalHard, TerminalSoft:
	default:
		return fmt.Errorf("solver.terminal_soc_mode must be %q or %q; got %q",
			TerminalHard, TerminalSoft, c.Solver.TerminalSoCMode)
	}
	if c.Solver.TimeBudgetSecs < 0 {
		return fmt.Errorf("solver.time_budget_secs must be >= 0")
	}
	if c.Solver.Threads < 0 {
		return fmt.Errorf("solver.threads must be >= 0")
	}
	if c.Solver.MIPGap < 0 {
		return fmt.Errorf("solver.mip_gap must be >= 0")
	}
	if c.Solver.TerminalSoCPenaltyPerMWh < 0 {
		return fmt.Errorf("solver.terminal_soc_penalty_per_mwh must be >= 0")
	}
	if c.Report.DecimalPlaces < 0 {
		return fmt.Errorf("report.decimal_places must be >= 0")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port, got %d", c.Server.Port)
	}
	return nil
}
