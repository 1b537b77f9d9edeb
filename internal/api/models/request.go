package models

import "virtual-battery/internal/config"

// SimulateRequest represents the request body for running a simulation.
type SimulateRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Config     ConfigPayload    `json:"config,omitempty"`
	Options    SimulateOptions  `json:"options,omitempty"`
}

// DataSourceConfig defines where the hourly series comes from.
type DataSourceConfig struct {
	Type string `json:"type" binding:"required"` // "series_file" or "meter_nyiso"

	// For type "series_file": a saved usage+price series JSON.
	SeriesFile string `json:"series_file,omitempty"`

	// For type "meter_nyiso": a smart-meter CSV joined against downloaded
	// NYISO prices.
	MeterFile string `json:"meter_file,omitempty"`
	Zone      string `json:"zone,omitempty"`     // default: CENTRL
	Timezone  string `json:"timezone,omitempty"` // default: America/New_York
}

// ConfigPayload mirrors config.Config with JSON tags; zero-valued fields
// keep their defaults.
type ConfigPayload struct {
	RunName       string            `json:"run_name,omitempty"`
	Pricing       PricingPayload    `json:"pricing,omitempty"`
	Battery       BatteryPayload    `json:"battery,omitempty"`
	Controller    ControllerPayload `json:"controller,omitempty"`
	HoursPerMonth float64           `json:"hours_per_month,omitempty"`
}

// PricingPayload uses pointers where zero is a meaningful value (hour 0 is
// a legal window bound, false a legal weekday setting), so absent fields
// keep their defaults while explicit zeroes override them.
type PricingPayload struct {
	DeliveryChargePeak    float64 `json:"delivery_charge_peak,omitempty"`
	DeliveryChargeOffpeak float64 `json:"delivery_charge_offpeak,omitempty"`
	PeakStartHour         *int    `json:"peak_start_hour,omitempty"`
	PeakEndHour           *int    `json:"peak_end_hour,omitempty"`
	WeekdaysOnly          *bool   `json:"weekdays_only,omitempty"`
}

type BatteryPayload struct {
	ModelName               string  `json:"model_name,omitempty"`
	MaxCapacityKWh          float64 `json:"max_capacity_kwh,omitempty"`
	MaxChargeRateKW         float64 `json:"max_charge_rate_kw,omitempty"`
	InitialStateOfChargeKWh float64 `json:"initial_state_of_charge_kwh,omitempty"`
	RoundTripEfficiency     float64 `json:"round_trip_efficiency,omitempty"`
}

type ControllerPayload struct {
	Type               string  `json:"type,omitempty"`
	ThreshHighQuantile float64 `json:"thresh_high_quantile,omitempty"`
	ThreshLowQuantile  float64 `json:"thresh_low_quantile,omitempty"`
	PeakHours          []int   `json:"peak_hours,omitempty"`

	// Pointer for the same reason as the pricing hours: a midnight trough
	// is legal and must be distinguishable from "not set".
	TroughHour *int `json:"trough_hour,omitempty"`
}

// SimulateOptions contains optional simulation parameters.
type SimulateOptions struct {
	LimitHours  int  `json:"limit_hours,omitempty"`  // 0 = all
	IncludeRows bool `json:"include_rows,omitempty"` // default: false
}

// CompareRequest runs the same series through several named config variants.
type CompareRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	BaseConfig ConfigPayload    `json:"base_config,omitempty"`
	Variations []Variation      `json:"variations" binding:"required"`
}

type Variation struct {
	Name   string        `json:"name" binding:"required"`
	Config ConfigPayload `json:"config"`
}

// Apply overlays the payload onto base. Value fields go through
// config.Merge's non-zero semantics; the pointer fields are applied by
// presence, so explicit false/zero overrides take effect.
func (p ConfigPayload) Apply(base config.Config) config.Config {
	cfg := config.Merge(base, config.Config{
		RunName: p.RunName,
		Pricing: config.PricingConfig{
			DeliveryChargePeak:    p.Pricing.DeliveryChargePeak,
			DeliveryChargeOffpeak: p.Pricing.DeliveryChargeOffpeak,
		},
		Battery: config.BatteryConfig{
			ModelName:               p.Battery.ModelName,
			MaxCapacityKWh:          p.Battery.MaxCapacityKWh,
			MaxChargeRateKW:         p.Battery.MaxChargeRateKW,
			InitialStateOfChargeKWh: p.Battery.InitialStateOfChargeKWh,
			RoundTripEfficiency:     p.Battery.RoundTripEfficiency,
		},
		Controller: config.ControllerConfig{
			Type:               p.Controller.Type,
			ThreshHighQuantile: p.Controller.ThreshHighQuantile,
			ThreshLowQuantile:  p.Controller.ThreshLowQuantile,
			PeakHours:          p.Controller.PeakHours,
		},
		HoursPerMonth: p.HoursPerMonth,
	})

	if p.Pricing.PeakStartHour != nil {
		cfg.Pricing.PeakStartHour = *p.Pricing.PeakStartHour
	}
	if p.Pricing.PeakEndHour != nil {
		cfg.Pricing.PeakEndHour = *p.Pricing.PeakEndHour
	}
	if p.Pricing.WeekdaysOnly != nil {
		cfg.Pricing.WeekdaysOnly = *p.Pricing.WeekdaysOnly
	}
	if p.Controller.TroughHour != nil {
		cfg.Controller.TroughHour = *p.Controller.TroughHour
	}
	return cfg
}
