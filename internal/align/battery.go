package align

import (
	"github.com/JGunda88/battery-trade-optimiser/internal/model"
)

// Named parameters required in the battery table. Keys are matched
// case-insensitively after trimming.
const (
	paramMaxCharge     = "max charging rate"
	paramMaxDischarge  = "max discharging rate"
	paramCapacity      = "max storage volume"
	paramChargeEff     = "battery charging efficiency"
	paramDischargeEff  = "battery discharging efficiency"
	paramLifetimeYears = "lifetime (1)"
	paramLifetimeCycle = "lifetime (2)"
	paramDegradation   = "storage volume degradation rate"
	paramCapex         = "capex"
	paramOpexFixed     = "fixed operational costs"
)

var requiredParams = []string{
	paramMaxCharge,
	paramMaxDischarge,
	paramCapacity,
	paramChargeEff,
	paramDischargeEff,
	paramLifetimeYears,
	paramLifetimeCycle,
	paramDegradation,
	paramCapex,
	paramOpexFixed,
}

// extractBatteryProperties maps the raw parameter table onto BatteryProperties.
//
// Source conventions handled here:
//   - efficiency fields are stored as loss fractions, so efficiency = 1 - loss
//   - a degradation value > 1 is a percentage and is rescaled to a fraction
//   - initial state of charge defaults to full capacity
func extractBatteryProperties(kv map[string]string) (model.BatteryProperties, error) {
	vals := make(map[string]float64, len(requiredParams))
	for _, name := range requiredParams {
		raw, ok := kv[name]
		if !ok {
			return model.BatteryProperties{}, &ConfigurationError{Param: name}
		}
		v, err := cleanNumeric(raw)
		if err != nil {
			return model.BatteryProperties{}, &ConfigurationError{
				Param:  name,
				Reason: "value " + raw + " is not numeric",
			}
		}
		vals[name] = v
	}

	p := model.BatteryProperties{
		MaxChargeMW:           vals[paramMaxCharge],
		MaxDischargeMW:        vals[paramMaxDischarge],
		CapacityMWh:           vals[paramCapacity],
		ChargingEfficiency:    1.0 - vals[paramChargeEff],
		DischargingEfficiency: 1.0 - vals[paramDischargeEff],
		LifetimeYears:         vals[paramLifetimeYears],
		LifetimeCycles:        vals[paramLifetimeCycle],
		DegradationPerCycle:   vals[paramDegradation],
		CapexGBP:              vals[paramCapex],
		OpexFixedAnnualGBP:    vals[paramOpexFixed],
	}
	if p.DegradationPerCycle > 1 {
		p.DegradationPerCycle /= 100.0
	}
	p.InitialSoCMWh = p.CapacityMWh

	if err := p.Validate(); err != nil {
		return model.BatteryProperties{}, &ConfigurationError{Param: "battery properties", Reason: err.Error()}
	}
	return p, nil
}
