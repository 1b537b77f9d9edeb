package config

import (
	"errors"
	"fmt"
	"os"

	"virtual-battery/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	RunName string `yaml:"run_name"`

	Pricing    PricingConfig    `yaml:"pricing"`
	Battery    BatteryConfig    `yaml:"battery"`
	Controller ControllerConfig `yaml:"controller"`

	// HoursPerMonth converts whole-run totals to per-average-month figures
	// in the summary statistics (8760/12 by default).
	HoursPerMonth float64 `yaml:"hours_per_month"`
}

// PricingConfig describes the two-tier delivery charge added on top of the
// wholesale price. The peak rate applies for hours in
// [PeakStartHour, PeakEndHour] (inclusive), on weekdays only when
// WeekdaysOnly is set.
type PricingConfig struct {
	DeliveryChargePeak    float64 `yaml:"delivery_charge_peak"`
	DeliveryChargeOffpeak float64 `yaml:"delivery_charge_offpeak"`
	PeakStartHour         int     `yaml:"peak_start_hour"`
	PeakEndHour           int     `yaml:"peak_end_hour"`
	WeekdaysOnly          bool    `yaml:"weekdays_only"`
}

type BatteryConfig struct {
	ModelName               string  `yaml:"model_name"`
	MaxCapacityKWh          float64 `yaml:"max_capacity_kwh"`
	MaxChargeRateKW         float64 `yaml:"max_charge_rate_kw"`
	InitialStateOfChargeKWh float64 `yaml:"initial_state_of_charge_kwh"`
	RoundTripEfficiency     float64 `yaml:"round_trip_efficiency"`
}

// ControllerConfig selects the controller variant by tag and carries the
// union of variant parameters. "daily_threshold" reads the quantiles,
// "simple_peak" reads the peak hours and trough hour.
type ControllerConfig struct {
	Type string `yaml:"type"`

	ThreshHighQuantile float64 `yaml:"thresh_high_quantile"`
	ThreshLowQuantile  float64 `yaml:"thresh_low_quantile"`

	PeakHours  []int `yaml:"peak_hours"`
	TroughHour int   `yaml:"trough_hour"`
}

// Default returns the baseline configuration: NYSEG SC No.1 residential
// delivery rates and a Tesla Powerwall 2.
func Default() Config {
	return Config{
		RunName: "default",
		Pricing: PricingConfig{
			DeliveryChargePeak:    0.12420,
			DeliveryChargeOffpeak: 0.03011,
			PeakStartHour:         16,
			PeakEndHour:           17,
			WeekdaysOnly:          true,
		},
		Battery: BatteryConfig{
			ModelName:               "Tesla Powerwall 2",
			MaxCapacityKWh:          14,
			MaxChargeRateKW:         3.3,
			InitialStateOfChargeKWh: 0,
			RoundTripEfficiency:     0.90,
		},
		Controller: ControllerConfig{
			Type:               "daily_threshold",
			ThreshHighQuantile: 0.85,
			ThreshLowQuantile:  0.15,
			PeakHours:          []int{16, 17},
			TroughHour:         2,
		},
		HoursPerMonth: 730,
	}
}

// Load reads a YAML config on top of the defaults and validates it.
// Keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Merge overlays non-zero fields from override onto base. This is used when
// applying per-request overrides from the API on top of a base config.
func Merge(base, override Config) Config {
	out := base
	if override.RunName != "" {
		out.RunName = override.RunName
	}
	out.Pricing = mergePricing(base.Pricing, override.Pricing)
	out.Battery = MergeBattery(base.Battery, override.Battery)
	out.Controller = mergeController(base.Controller, override.Controller)
	if override.HoursPerMonth != 0 {
		out.HoursPerMonth = override.HoursPerMonth
	}
	return out
}

func mergePricing(base, override PricingConfig) PricingConfig {
	out := base
	if override.DeliveryChargePeak != 0 {
		out.DeliveryChargePeak = override.DeliveryChargePeak
	}
	if override.DeliveryChargeOffpeak != 0 {
		out.DeliveryChargeOffpeak = override.DeliveryChargeOffpeak
	}
	// Zero means "not set" in this overlay. Callers that need an explicit
	// hour-0 or false override apply it by field presence on top of the
	// merge (see the API's ConfigPayload).
	if override.PeakStartHour != 0 {
		out.PeakStartHour = override.PeakStartHour
	}
	if override.PeakEndHour != 0 {
		out.PeakEndHour = override.PeakEndHour
	}
	return out
}

// MergeBattery overlays non-zero fields from override onto base.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.ModelName != "" {
		out.ModelName = override.ModelName
	}
	if override.MaxCapacityKWh != 0 {
		out.MaxCapacityKWh = override.MaxCapacityKWh
	}
	if override.MaxChargeRateKW != 0 {
		out.MaxChargeRateKW = override.MaxChargeRateKW
	}
	if override.InitialStateOfChargeKWh != 0 {
		out.InitialStateOfChargeKWh = override.InitialStateOfChargeKWh
	}
	if override.RoundTripEfficiency != 0 {
		out.RoundTripEfficiency = override.RoundTripEfficiency
	}
	return out
}

func mergeController(base, override ControllerConfig) ControllerConfig {
	out := base
	if override.Type != "" {
		out.Type = override.Type
	}
	if override.ThreshHighQuantile != 0 {
		out.ThreshHighQuantile = override.ThreshHighQuantile
	}
	if override.ThreshLowQuantile != 0 {
		out.ThreshLowQuantile = override.ThreshLowQuantile
	}
	if len(override.PeakHours) != 0 {
		out.PeakHours = override.PeakHours
	}
	if override.TroughHour != 0 {
		out.TroughHour = override.TroughHour
	}
	return out
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Controller.Type == "" {
		return errors.New("controller.type is required")
	}
	// Validate battery params by constructing a model.Battery.
	if _, err := model.NewBattery(c.Battery.ToModelParams(), c.Battery.InitialStateOfChargeKWh); err != nil {
		return fmt.Errorf("battery config invalid: %w", err)
	}
	if err := c.Pricing.validate(); err != nil {
		return err
	}
	return c.Controller.validate()
}

func (p PricingConfig) validate() error {
	if p.DeliveryChargePeak < 0 || p.DeliveryChargeOffpeak < 0 {
		return errors.New("delivery charges must be >= 0")
	}
	if p.PeakStartHour < 0 || p.PeakStartHour > 23 || p.PeakEndHour < 0 || p.PeakEndHour > 23 {
		return errors.New("pricing peak window hours must be in 0..23")
	}
	if p.PeakStartHour > p.PeakEndHour {
		return errors.New("pricing peak_start_hour must be <= peak_end_hour")
	}
	return nil
}

func (c ControllerConfig) validate() error {
	switch c.Type {
	case "daily_threshold":
		if c.ThreshHighQuantile < 0 || c.ThreshHighQuantile > 1 ||
			c.ThreshLowQuantile < 0 || c.ThreshLowQuantile > 1 {
			return errors.New("controller quantiles must be in [0, 1]")
		}
		if c.ThreshLowQuantile > c.ThreshHighQuantile {
			return errors.New("controller thresh_low_quantile must be <= thresh_high_quantile")
		}
	case "simple_peak":
		if len(c.PeakHours) == 0 {
			return errors.New("controller peak_hours is required for simple_peak")
		}
		for _, h := range c.PeakHours {
			if h < 0 || h > 23 {
				return fmt.Errorf("controller peak hour %d out of range 0..23", h)
			}
		}
		if c.TroughHour < 0 || c.TroughHour > 23 {
			return errors.New("controller trough_hour must be in 0..23")
		}
	}
	// Unknown tags are rejected by the controller factory before the run
	// starts; validation only checks parameters of the known variants.
	return nil
}

func (b BatteryConfig) ToModelParams() model.BatteryParams {
	return model.BatteryParams{
		ModelName:           b.ModelName,
		MaxCapacityKWh:      b.MaxCapacityKWh,
		MaxChargeRateKW:     b.MaxChargeRateKW,
		RoundTripEfficiency: b.RoundTripEfficiency,
	}
}
