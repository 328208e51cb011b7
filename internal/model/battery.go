package model

import "errors"

// BatteryProperties defines the physical and economic parameters of the asset.
// Units:
// - CapacityMWh, InitialSoCMWh: MWh
// - MaxChargeMW, MaxDischargeMW: MW
// - Efficiencies: fractions in (0, 1]
// - DegradationPerCycle: fraction of storage volume lost per cycle
// - CapexGBP, OpexFixedAnnualGBP: GBP
type BatteryProperties struct {
	CapacityMWh           float64
	InitialSoCMWh         float64
	MaxChargeMW           float64
	MaxDischargeMW        float64
	ChargingEfficiency    float64
	DischargingEfficiency float64
	LifetimeYears         float64
	LifetimeCycles        float64
	DegradationPerCycle   float64
	CapexGBP              float64
	OpexFixedAnnualGBP    float64
}

func (p BatteryProperties) Validate() error {
	if p.CapacityMWh <= 0 {
		return errors.New("CapacityMWh must be > 0")
	}
	if p.MaxChargeMW <= 0 {
		return errors.New("MaxChargeMW must be > 0")
	}
	if p.MaxDischargeMW <= 0 {
		return errors.New("MaxDischargeMW must be > 0")
	}
	if p.ChargingEfficiency <= 0 || p.ChargingEfficiency > 1 {
		return errors.New("ChargingEfficiency must be in (0, 1]")
	}
	if p.DischargingEfficiency <= 0 || p.DischargingEfficiency > 1 {
		return errors.New("DischargingEfficiency must be in (0, 1]")
	}
	if p.InitialSoCMWh < 0 || p.InitialSoCMWh > p.CapacityMWh {
		return errors.New("InitialSoCMWh must be within [0, CapacityMWh]")
	}
	if p.DegradationPerCycle < 0 || p.DegradationPerCycle > 1 {
		return errors.New("DegradationPerCycle must be in [0, 1]")
	}
	return nil
}
