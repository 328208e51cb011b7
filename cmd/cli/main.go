package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/JGunda88/battery-trade-optimiser/internal/config"
	"github.com/JGunda88/battery-trade-optimiser/internal/logger"
	"github.com/JGunda88/battery-trade-optimiser/internal/runner"
)

func main() {
	fs := flag.NewFlagSet("optimise", flag.ExitOnError)
	batteryPath := fs.String("battery", "", "Battery parameter CSV path")
	halfHourlyPath := fs.String("halfhourly", "", "Market 1 half-hourly price CSV path")
	hourlyPath := fs.String("hourly", "", "Market 2 hourly price CSV path")
	outPath := fs.String("out", "results/solution.csv", "Output CSV path")
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	_ = fs.Parse(os.Args[1:])

	if *batteryPath == "" || *halfHourlyPath == "" || *hourlyPath == "" {
		fmt.Println("usage:")
		fmt.Println("  cli --battery battery.csv --halfhourly market1.csv --hourly market2.csv --out results/solution.csv")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logging.Level, "console")

	run, err := runner.New(cfg, log, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("runner init failed")
	}

	resp, err := run.Run(context.Background(), runner.Request{
		BatteryPath:    *batteryPath,
		HalfHourlyPath: *halfHourlyPath,
		HourlyPath:     *hourlyPath,
		OutputPath:     *outPath,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("optimisation failed")
	}

	out, _ := json.MarshalIndent(resp, "", "  ")
	fmt.Println(string(out))
}
