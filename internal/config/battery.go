package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JGunda88/battery-trade-optimiser/internal/model"
)

// BatteryOverride is an optional YAML preset overlaid onto the properties
// extracted from the battery parameter table. Zero fields are left alone.
type BatteryOverride struct {
	CapacityMWh           float64 `yaml:"capacity_mwh"`
	InitialSoCMWh         float64 `yaml:"initial_soc_mwh"`
	MaxChargeMW           float64 `yaml:"max_charge_mw"`
	MaxDischargeMW        float64 `yaml:"max_discharge_mw"`
	ChargingEfficiency    float64 `yaml:"charging_efficiency"`
	DischargingEfficiency float64 `yaml:"discharging_efficiency"`
	DegradationPerCycle   float64 `yaml:"degradation_per_cycle"`
	CapexGBP              float64 `yaml:"capex_gbp"`
	OpexFixedAnnualGBP    float64 `yaml:"opex_fixed_annual_gbp"`
}

type batteryFileWrapper struct {
	Battery BatteryOverride `yaml:"battery"`
}

// LoadBatteryOverride reads a battery preset YAML file.
func LoadBatteryOverride(path string) (BatteryOverride, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryOverride{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryOverride{}, err
	}
	return w.Battery, nil
}

// Apply overlays non-zero override fields onto p. When capacity is overridden
// without an explicit initial SoC, the initial SoC follows the new capacity.
func (o BatteryOverride) Apply(p model.BatteryProperties) model.BatteryProperties {
	out := p
	if o.CapacityMWh != 0 {
		out.CapacityMWh = o.CapacityMWh
		out.InitialSoCMWh = o.CapacityMWh
	}
	if o.InitialSoCMWh != 0 {
		out.InitialSoCMWh = o.InitialSoCMWh
	}
	if o.MaxChargeMW != 0 {
		out.MaxChargeMW = o.MaxChargeMW
	}
	if o.MaxDischargeMW != 0 {
		out.MaxDischargeMW = o.MaxDischargeMW
	}
	if o.ChargingEfficiency != 0 {
		out.ChargingEfficiency = o.ChargingEfficiency
	}
	if o.DischargingEfficiency != 0 {
		out.DischargingEfficiency = o.DischargingEfficiency
	}
	if o.DegradationPerCycle != 0 {
		out.DegradationPerCycle = o.DegradationPerCycle
	}
	if o.CapexGBP != 0 {
		out.CapexGBP = o.CapexGBP
	}
	if o.OpexFixedAnnualGBP != 0 {
		out.OpexFixedAnnualGBP = o.OpexFixedAnnualGBP
	}
	return out
}
