package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JGunda88/battery-trade-optimiser/internal/model"
)

func baseProperties() model.BatteryProperties {
	return model.BatteryProperties{
		CapacityMWh:           4,
		InitialSoCMWh:         4,
		MaxChargeMW:           2,
		MaxDischargeMW:        2,
		ChargingEfficiency:    0.95,
		DischargingEfficiency: 0.95,
		LifetimeYears:         10,
		LifetimeCycles:        5000,
		DegradationPerCycle:   0.001,
		CapexGBP:              50000,
		OpexFixedAnnualGBP:    5000,
	}
}

func TestLoadBatteryOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
battery:
  capacity_mwh: 8
  max_charge_mw: 4
`), 0o644))

	o, err := LoadBatteryOverride(path)
	require.NoError(t, err)
	require.Equal(t, 8.0, o.CapacityMWh)
	require.Equal(t, 4.0, o.MaxChargeMW)
	require.Zero(t, o.MaxDischargeMW)
}

func TestApplyOverlaysNonZeroFieldsOnly(t *testing.T) {
	o := BatteryOverride{MaxDischargeMW: 3, ChargingEfficiency: 0.9}
	out := o.Apply(baseProperties())

	require.Equal(t, 3.0, out.MaxDischargeMW)
	require.Equal(t, 0.9, out.ChargingEfficiency)
	require.Equal(t, 4.0, out.CapacityMWh)
	require.Equal(t, 0.95, out.DischargingEfficiency)
}

func TestApplyCapacityOverrideResetsInitialSoC(t *testing.T) {
	out := BatteryOverride{CapacityMWh: 8}.Apply(baseProperties())
	require.Equal(t, 8.0, out.CapacityMWh)
	require.Equal(t, 8.0, out.InitialSoCMWh)

	// An explicit initial SoC wins over the capacity-following default.
	out = BatteryOverride{CapacityMWh: 8, InitialSoCMWh: 2}.Apply(baseProperties())
	require.Equal(t, 2.0, out.InitialSoCMWh)
}

func TestLoadBatteryOverrideBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battery.yaml")
	require.NoError(t, os.WriteFile(path, []byte("battery: ["), 0o644))
	_, err := LoadBatteryOverride(path)
	require.Error(t, err)
}
