package model

import (
	"fmt"
	"time"
)

// Hour is one hourly record of the usage/price series.
// UsageKWh and LBMPPerMWh come from the data providers; the delivery charge
// and apparent price are derived by the simulation from the pricing config.
type Hour struct {
	// Time is the beginning of the hour, local to the utility territory.
	Time time.Time `json:"time"`

	// UsageKWh is the household demand for this hour.
	UsageKWh float64 `json:"usage_kwh"`

	// LBMPPerMWh is the raw day-ahead wholesale price in $/MWh.
	LBMPPerMWh float64 `json:"lbmp_per_mwh"`

	// DeliveryCharge is the time-of-day delivery surcharge in $/kWh.
	DeliveryCharge float64 `json:"delivery_charge,omitempty"`

	// ApparentPrice is LBMP converted to $/kWh plus DeliveryCharge: the
	// effective price the consumer faces.
	ApparentPrice float64 `json:"apparent_price,omitempty"`
}

// Series is a chronologically ordered, gap-free hourly sequence.
type Series []Hour

// Validate checks the precondition the simulation relies on: strictly
// hourly spacing with no gaps, and non-negative usage.
func (s Series) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("series is empty")
	}
	for i, h := range s {
		if h.UsageKWh < 0 {
			return fmt.Errorf("hour %s: negative usage %.4f kWh", h.Time.Format(time.RFC3339), h.UsageKWh)
		}
		if i == 0 {
			continue
		}
		if got := h.Time.Sub(s[i-1].Time); got != time.Hour {
			return fmt.Errorf("series is not hourly at %s: gap of %s from previous record",
				h.Time.Format(time.RFC3339), got)
		}
	}
	return nil
}

// Day returns the sub-slice of records falling on the same calendar day as t.
// The series is ordered, so the day is a contiguous window.
func (s Series) Day(t time.Time) Series {
	y, m, d := t.Date()
	start := -1
	for i, h := range s {
		hy, hm, hd := h.Time.Date()
		if hy == y && hm == m && hd == d {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			return s[start:i]
		}
	}
	if start < 0 {
		return nil
	}
	return s[start:]
}

// ApparentPrices collects the apparent price column.
func (s Series) ApparentPrices() []float64 {
	out := make([]float64, len(s))
	for i, h := range s {
		out[i] = h.ApparentPrice
	}
	return out
}

// Action is a human-friendly operating mode for a simulated hour.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionCharging    Action = "CHARGING"
	ActionIdle        Action = "IDLE"
	ActionDischarging Action = "DISCHARGING"
)

func ActionFromRequest(requestKWh float64) Action {
	switch {
	case requestKWh > 0:
		return ActionCharging
	case requestKWh < 0:
		return ActionDischarging
	default:
		return ActionIdle
	}
}
