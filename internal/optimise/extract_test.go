package optimise

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JGunda88/battery-trade-optimiser/internal/milp"
	"github.com/JGunda88/battery-trade-optimiser/internal/model"
)

func TestExtractReadsSeriesByTimestamp(t *testing.T) {
	in := testInput(grid4, []float64{10, 50, 30, 40}, []float64{30, 30, 35, 35})
	plan, err := Build(in, hardOpts())
	require.NoError(t, err)

	t0, t1 := "2018-01-01 00:00", "2018-01-01 00:30"
	res := &milp.Result{
		Status:    milp.StatusOptimal,
		Objective: 25.123456,
		Values: map[string]float64{
			plan.dischargeM1[t1].Name(): 2,
			plan.soc[t0].Name():         4,
			plan.soc[t1].Name():         4,
			plan.mode[t1].Name():        0.9999999, // solver tolerance noise
		},
	}

	sol := Extract(plan, res, 1500*time.Millisecond, 2)
	require.Equal(t, model.StatusOptimal, sol.Status)
	require.Equal(t, 25.12, sol.Objective)
	require.Equal(t, 1500*time.Millisecond, sol.RunTime)

	require.Equal(t, 2.0, sol.DischargePowerM1[t1])
	require.Equal(t, 0.0, sol.DischargePowerM1[t0], "absent values default to zero")
	require.Equal(t, 4.0, sol.StateOfCharge[t0])
	require.Equal(t, 1, sol.IsDischarging[t1], "binary coerced to nearest integer")
	require.Equal(t, 0, sol.IsDischarging[t0])

	require.Len(t, sol.ChargePowerM1, len(grid4))
	require.Len(t, sol.ChargePowerM2, len(grid4))
	require.Len(t, sol.DischargePowerM2, len(grid4))
}

func TestExtractInfeasibleKeepsStatus(t *testing.T) {
	in := testInput(grid4, []float64{10, 50, 30, 40}, []float64{30, 30, 35, 35})
	plan, err := Build(in, hardOpts())
	require.NoError(t, err)

	res := &milp.Result{Status: milp.StatusInfeasible, Values: map[string]float64{}}
	sol := Extract(plan, res, time.Second, 2)
	require.Equal(t, model.StatusInfeasible, sol.Status)
	require.Equal(t, 0.0, sol.Objective)
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		in     float64
		places int
		want   float64
	}{
		{25.125, 2, 25.13},
		{25.124, 2, 25.12},
		{-0.005, 2, -0.01},
		{100, 0, 100},
		{0.1 + 0.2, 1, 0.3},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, roundTo(tc.in, tc.places), "roundTo(%v, %d)", tc.in, tc.places)
	}
}
