// Package optimise builds the battery trading MILP, invokes a solver backend
// under the configured budgets, and extracts the solution.
package optimise

import (
	"fmt"

	"github.com/JGunda88/battery-trade-optimiser/internal/config"
	"github.com/JGunda88/battery-trade-optimiser/internal/milp"
	"github.com/JGunda88/battery-trade-optimiser/internal/model"
)

// State is the per-request model lifecycle:
// BUILT -> SOLVING -> terminal solver status.
type State string

const (
	StateBuilt   State = "BUILT"
	StateSolving State = "SOLVING"
)

// ModelOptions are the build-time knobs, taken from the request configuration.
type ModelOptions struct {
	// StepHours is the grid step in hours (0.5 for the half-hour grid).
	StepHours float64
	// TerminalSoCMode is config.TerminalHard or config.TerminalSoft.
	TerminalSoCMode string
	// TerminalPenaltyPerMWh prices the terminal-SoC deviation in soft mode.
	TerminalPenaltyPerMWh float64
}

// Plan is a built model plus the variable handles needed to read the solution
// back out by timestamp. Owned by one request for the duration of one solve.
type Plan struct {
	State State
	Model *milp.Model
	Grid  []string
	Input *model.ProcessedInput

	chargeM1    map[string]*milp.Var
	dischargeM1 map[string]*milp.Var
	chargeM2    map[string]*milp.Var
	dischargeM2 map[string]*milp.Var
	soc         map[string]*milp.Var
	mode        map[string]*milp.Var
}

// Build translates a ProcessedInput into the full MILP.
//
// Variables per slot t: charge/discharge power per market in [0, cap],
// soc(t) in [0, capacity], and a binary discharge-mode indicator.
func Build(in *model.ProcessedInput, opts ModelOptions) (*Plan, error) {
	grid := in.Market.TimePoints
	if len(grid) < 2 {
		return nil, fmt.Errorf("build model: need at least 2 time points, got %d", len(grid))
	}
	if opts.StepHours <= 0 {
		return nil, fmt.Errorf("build model: step size must be > 0, got %v", opts.StepHours)
	}

	bp := in.Battery
	m := milp.NewModel("battery_trade_milp", milp.Maximize)
	p := &Plan{
		State:       StateBuilt,
		Model:       m,
		Grid:        grid,
		Input:       in,
		chargeM1:    make(map[string]*milp.Var, len(grid)),
		dischargeM1: make(map[string]*milp.Var, len(grid)),
		chargeM2:    make(map[string]*milp.Var, len(grid)),
		dischargeM2: make(map[string]*milp.Var, len(grid)),
		soc:         make(map[string]*milp.Var, len(grid)),
		mode:        make(map[string]*milp.Var, len(grid)),
	}

	for _, tp := range grid {
		p.chargeM1[tp] = m.AddVar("charge_power_m1_"+tp, 0, bp.MaxChargeMW)
		p.dischargeM1[tp] = m.AddVar("discharge_power_m1_"+tp, 0, bp.MaxDischargeMW)
		p.chargeM2[tp] = m.AddVar("charge_power_m2_"+tp, 0, bp.MaxChargeMW)
		p.dischargeM2[tp] = m.AddVar("discharge_power_m2_"+tp, 0, bp.MaxDischargeMW)
		p.soc[tp] = m.AddVar("state_of_charge_"+tp, 0, bp.CapacityMWh)
		p.mode[tp] = m.AddBinary("is_discharging_" + tp)
	}

	p.applyPowerLimits()
	p.applyMutualExclusion()
	p.applySoCUpdate(opts.StepHours)
	p.applySoCBounds()
	p.applyMarket2Consistency()

	var penalty milp.Expr
	switch opts.TerminalSoCMode {
	case config.TerminalSoft:
		penalty = p.applyTerminalSoCSoft(opts.TerminalPenaltyPerMWh)
	default:
		p.applyTerminalSoCHard()
	}

	p.setObjective(opts.StepHours, penalty)
	return p, nil
}

// applyPowerLimits caps total charging and discharging power across both
// markets at every slot.
func (p *Plan) applyPowerLimits() {
	bp := p.Input.Battery
	for _, tp := range p.Grid {
		p.Model.AddConstraint("Max_Charge_Limit_"+tp,
			milp.Expr{}.Add(1, p.chargeM1[tp]).Add(1, p.chargeM2[tp]),
			milp.LE, bp.MaxChargeMW)
		p.Model.AddConstraint("Max_Discharge_Limit_"+tp,
			milp.Expr{}.Add(1, p.dischargeM1[tp]).Add(1, p.dischargeM2[tp]),
			milp.LE, bp.MaxDischargeMW)
	}
}

// applyMutualExclusion forbids simultaneous charging and discharging via a
// big-M disjunction. M is exactly maxCharge+maxDischarge: the tightest valid
// bound given the two power caps. A larger M weakens the LP relaxation; a
// smaller one is unsound.
func (p *Plan) applyMutualExclusion() {
	bp := p.Input.Battery
	bigM := bp.MaxChargeMW + bp.MaxDischargeMW
	for _, tp := range p.Grid {
		p.Model.AddConstraint("No_Simultaneous_Discharge_"+tp,
			milp.Expr{}.Add(1, p.dischargeM1[tp]).Add(1, p.dischargeM2[tp]).Add(-bigM, p.mode[tp]),
			milp.LE, 0)
		// charge <= M*(1-mode)  <=>  charge + M*mode <= M
		p.Model.AddConstraint("No_Simultaneous_Charge_"+tp,
			milp.Expr{}.Add(1, p.chargeM1[tp]).Add(1, p.chargeM2[tp]).Add(bigM, p.mode[tp]),
			milp.LE, bigM)
	}
}

// applySoCUpdate pins the first grid point to the initial state of charge and
// chains the recursion over consecutive points:
//
//	soc(t+1) = soc(t) + charge(t)*eff_c*dt - discharge(t)*dt/eff_d
func (p *Plan) applySoCUpdate(stepHours float64) {
	bp := p.Input.Battery
	p.Model.AddConstraint("Initial_SoC_Constraint",
		milp.Expr{}.Add(1, p.soc[p.Grid[0]]),
		milp.EQ, bp.InitialSoCMWh)

	for i := 0; i+1 < len(p.Grid); i++ {
		tp, tpNext := p.Grid[i], p.Grid[i+1]
		chargeGain := bp.ChargingEfficiency * stepHours
		dischargeLoss := stepHours / bp.DischargingEfficiency
		p.Model.AddConstraint("SoC_Update_"+tpNext,
			milp.Expr{}.
				Add(1, p.soc[tpNext]).
				Add(-1, p.soc[tp]).
				Add(-chargeGain, p.chargeM1[tp]).
				Add(-chargeGain, p.chargeM2[tp]).
				Add(dischargeLoss, p.dischargeM1[tp]).
				Add(dischargeLoss, p.dischargeM2[tp]),
			milp.EQ, 0)
	}
}

// applySoCBounds repeats the SoC variable bounds as explicit constraints.
// Redundant, but keeps bound violations visible by name in infeasibility dumps.
func (p *Plan) applySoCBounds() {
	bp := p.Input.Battery
	for _, tp := range p.Grid {
		p.Model.AddConstraint("SoC_Lower_Bound_"+tp,
			milp.Expr{}.Add(1, p.soc[tp]), milp.GE, 0)
		p.Model.AddConstraint("SoC_Upper_Bound_"+tp,
			milp.Expr{}.Add(1, p.soc[tp]), milp.LE, bp.CapacityMWh)
	}
}

// applyMarket2Consistency holds market-2 power constant across the two
// half-hour slots of each settlement hour. With an odd-length horizon the
// trailing slot has no pair, so its market-2 power is forced to zero: the
// hourly market cannot settle half an hour alone.
func (p *Plan) applyMarket2Consistency() {
	for i := 0; i+1 < len(p.Grid); i += 2 {
		tp, tpNext := p.Grid[i], p.Grid[i+1]
		p.Model.AddConstraint("Market2_Charge_Consistency_"+tp,
			milp.Expr{}.Add(1, p.chargeM2[tp]).Add(-1, p.chargeM2[tpNext]),
			milp.EQ, 0)
		p.Model.AddConstraint("Market2_Discharge_Consistency_"+tp,
			milp.Expr{}.Add(1, p.dischargeM2[tp]).Add(-1, p.dischargeM2[tpNext]),
			milp.EQ, 0)
	}
	if len(p.Grid)%2 == 1 {
		last := p.Grid[len(p.Grid)-1]
		p.Model.AddConstraint("Market2_Unpaired_Charge_"+last,
			milp.Expr{}.Add(1, p.chargeM2[last]), milp.EQ, 0)
		p.Model.AddConstraint("Market2_Unpaired_Discharge_"+last,
			milp.Expr{}.Add(1, p.dischargeM2[last]), milp.EQ, 0)
	}
}

// applyTerminalSoCHard requires the battery to end the horizon exactly at its
// initial state of charge.
func (p *Plan) applyTerminalSoCHard() {
	bp := p.Input.Battery
	p.Model.AddConstraint("Terminal_SoC",
		milp.Expr{}.Add(1, p.soc[p.Grid[len(p.Grid)-1]]),
		milp.EQ, bp.InitialSoCMWh)
}

// applyTerminalSoCSoft replaces the hard equality with a two-sided band around
// the initial SoC plus a non-negative deviation variable. The returned
// expression is the objective penalty for that deviation.
func (p *Plan) applyTerminalSoCSoft(penaltyPerMWh float64) milp.Expr {
	bp := p.Input.Battery
	last := p.soc[p.Grid[len(p.Grid)-1]]
	deviation := p.Model.AddVar("soc_deviation", 0, bp.CapacityMWh)

	p.Model.AddConstraint("Terminal_SoC_Lower_Bound",
		milp.Expr{}.Add(1, last).Add(1, deviation),
		milp.GE, bp.InitialSoCMWh)
	p.Model.AddConstraint("Terminal_SoC_Upper_Bound",
		milp.Expr{}.Add(1, last).Add(-1, deviation),
		milp.LE, bp.InitialSoCMWh)

	return milp.Expr{}.Add(penaltyPerMWh, deviation)
}

// setObjective maximises trading profit:
//
//	sum_t [ (discharge1 - charge1)(t) * price1(t) * dt
//	      + (discharge2 - charge2)(t) * price2(t) ]
//
// Market 1 terms are scaled by the step size because its price applies per
// half-hour of energy. Market 2 terms are NOT scaled: the hourly price covers
// the full hour and the consistency constraint holds the same power for both
// half-hour slots, so scaling again would halve the hourly revenue. This
// asymmetry is the settlement rule, not an oversight.
func (p *Plan) setObjective(stepHours float64, penalty milp.Expr) {
	ms := p.Input.Market
	obj := milp.Expr{}
	for _, tp := range p.Grid {
		price1 := ms.Market1PriceHH[tp]
		price2 := ms.Market2PriceHH[tp]
		obj = obj.
			Add(price1*stepHours, p.dischargeM1[tp]).
			Add(-price1*stepHours, p.chargeM1[tp]).
			Add(price2, p.dischargeM2[tp]).
			Add(-price2, p.chargeM2[tp])
	}
	for _, t := range penalty.Terms {
		obj = obj.Add(-t.Coef, t.Var)
	}
	p.Model.SetObjective(obj)
}
