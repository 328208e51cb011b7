package optimise

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JGunda88/battery-trade-optimiser/internal/milp"
	"github.com/JGunda88/battery-trade-optimiser/internal/model"
)

// Extract reads solved variable values back into time-indexed series.
// The binary mode indicator is coerced to the nearest integer and the
// objective is rounded to decimalPlaces for reporting. elapsed is the
// wall-clock duration of the whole build+solve+extract sequence.
func Extract(plan *Plan, res *milp.Result, elapsed time.Duration, decimalPlaces int) *model.OptimiserSolution {
	sol := &model.OptimiserSolution{
		Status:           model.SolveStatus(res.Status),
		Objective:        roundTo(res.Objective, decimalPlaces),
		ChargePowerM1:    extractSeries(plan.Grid, plan.chargeM1, res.Values),
		DischargePowerM1: extractSeries(plan.Grid, plan.dischargeM1, res.Values),
		ChargePowerM2:    extractSeries(plan.Grid, plan.chargeM2, res.Values),
		DischargePowerM2: extractSeries(plan.Grid, plan.dischargeM2, res.Values),
		StateOfCharge:    extractSeries(plan.Grid, plan.soc, res.Values),
		IsDischarging:    extractMode(plan.Grid, plan.mode, res.Values),
		RunTime:          elapsed,
	}
	return sol
}

func extractSeries(grid []string, vars map[string]*milp.Var, values map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(grid))
	for _, tp := range grid {
		out[tp] = values[vars[tp].Name()]
	}
	return out
}

func extractMode(grid []string, vars map[string]*milp.Var, values map[string]float64) map[string]int {
	out := make(map[string]int, len(grid))
	for _, tp := range grid {
		out[tp] = int(math.Round(values[vars[tp].Name()]))
	}
	return out
}

func roundTo(v float64, places int) float64 {
	return decimal.NewFromFloat(v).Round(int32(places)).InexactFloat64()
}
