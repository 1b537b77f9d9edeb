package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "daily_threshold", cfg.Controller.Type)
	assert.InDelta(t, 14, cfg.Battery.MaxCapacityKWh, 1e-12)
	assert.InDelta(t, 3.3, cfg.Battery.MaxChargeRateKW, 1e-12)
	assert.InDelta(t, 0.90, cfg.Battery.RoundTripEfficiency, 1e-12)
	assert.Equal(t, 16, cfg.Pricing.PeakStartHour)
	assert.Equal(t, 17, cfg.Pricing.PeakEndHour)
	assert.True(t, cfg.Pricing.WeekdaysOnly)
	assert.InDelta(t, 730, cfg.HoursPerMonth, 1e-12)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
run_name: winter
battery:
  max_capacity_kwh: 27
controller:
  type: simple_peak
  peak_hours: [16, 17, 18]
  trough_hour: 3
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "winter", cfg.RunName)
	assert.InDelta(t, 27, cfg.Battery.MaxCapacityKWh, 1e-12)
	assert.Equal(t, []int{16, 17, 18}, cfg.Controller.PeakHours)
	assert.Equal(t, 3, cfg.Controller.TroughHour)

	// Keys not present in the file keep their defaults.
	assert.InDelta(t, 3.3, cfg.Battery.MaxChargeRateKW, 1e-12)
	assert.InDelta(t, 0.12420, cfg.Pricing.DeliveryChargePeak, 1e-12)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
battery:
  round_trip_efficiency: 1.4
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestMerge_NonZeroFieldsOnly(t *testing.T) {
	base := Default()
	merged := Merge(base, Config{
		RunName: "override",
		Battery: BatteryConfig{MaxCapacityKWh: 20},
		Controller: ControllerConfig{
			ThreshHighQuantile: 0.9,
		},
	})

	assert.Equal(t, "override", merged.RunName)
	assert.InDelta(t, 20, merged.Battery.MaxCapacityKWh, 1e-12)
	assert.InDelta(t, 0.9, merged.Controller.ThreshHighQuantile, 1e-12)

	// Everything else carries through from base.
	assert.Equal(t, base.Battery.ModelName, merged.Battery.ModelName)
	assert.InDelta(t, base.Controller.ThreshLowQuantile, merged.Controller.ThreshLowQuantile, 1e-12)
	assert.Equal(t, base.Pricing, merged.Pricing)
	assert.InDelta(t, base.HoursPerMonth, merged.HoursPerMonth, 1e-12)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"missing controller type", func(c *Config) { c.Controller.Type = "" }, false},
		{"efficiency above one", func(c *Config) { c.Battery.RoundTripEfficiency = 1.1 }, false},
		{"zero capacity", func(c *Config) { c.Battery.MaxCapacityKWh = 0 }, false},
		{"initial soc above capacity", func(c *Config) { c.Battery.InitialStateOfChargeKWh = 99 }, false},
		{"negative delivery charge", func(c *Config) { c.Pricing.DeliveryChargeOffpeak = -0.01 }, false},
		{"inverted peak window", func(c *Config) {
			c.Pricing.PeakStartHour = 18
			c.Pricing.PeakEndHour = 16
		}, false},
		{"quantile out of range", func(c *Config) { c.Controller.ThreshHighQuantile = 1.5 }, false},
		{"inverted quantiles", func(c *Config) {
			c.Controller.ThreshHighQuantile = 0.1
			c.Controller.ThreshLowQuantile = 0.9
		}, false},
		{"simple_peak without peak hours", func(c *Config) {
			c.Controller.Type = "simple_peak"
			c.Controller.PeakHours = nil
		}, false},
		{"simple_peak hour out of range", func(c *Config) {
			c.Controller.Type = "simple_peak"
			c.Controller.PeakHours = []int{16, 24}
		}, false},
		// Unknown tags pass validation; the controller factory rejects
		// them when the run is constructed.
		{"unknown controller tag", func(c *Config) { c.Controller.Type = "perfect_foresight" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
