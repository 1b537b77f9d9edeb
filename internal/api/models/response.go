package models

import (
	"time"

	"virtual-battery/internal/sim"
)

// SimulateResponse represents the response from a simulation run.
type SimulateResponse struct {
	Status  string             `json:"status"`
	RunName string             `json:"run_name"`
	Window  TimeWindow         `json:"window"`
	Hours   int                `json:"hours"`
	Summary map[string]float64 `json:"summary"`

	FinalStateOfChargeKWh float64 `json:"final_state_of_charge_kwh"`

	Rows []ResultRow `json:"rows,omitempty"`
}

// TimeWindow represents a time range.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResultRow is one simulated hour.
type ResultRow struct {
	Index int       `json:"index"`
	Time  time.Time `json:"time"`

	UsageKWh       float64 `json:"usage_kwh"`
	LBMPPerMWh     float64 `json:"lbmp_per_mwh"`
	DeliveryCharge float64 `json:"delivery_charge"`
	ApparentPrice  float64 `json:"apparent_price"`

	StateOfChargeKWh        float64 `json:"state_of_charge_kwh"`
	AvailableToDischargeKWh float64 `json:"available_to_discharge_kwh"`
	AvailableStoreCapKWh    float64 `json:"available_store_cap_kwh"`

	ChargeDecisionKWh float64 `json:"charge_decision_kwh"`
	Action            string  `json:"action"`
	NetPurchasedKWh   float64 `json:"net_purchased_kwh"`
}

// RowsFromResult converts engine rows to their API shape.
func RowsFromResult(rows []sim.Row) []ResultRow {
	out := make([]ResultRow, len(rows))
	for i, r := range rows {
		out[i] = ResultRow{
			Index:                   r.Index,
			Time:                    r.Time,
			UsageKWh:                r.UsageKWh,
			LBMPPerMWh:              r.LBMPPerMWh,
			DeliveryCharge:          r.DeliveryCharge,
			ApparentPrice:           r.ApparentPrice,
			StateOfChargeKWh:        r.StateOfChargeKWh,
			AvailableToDischargeKWh: r.AvailableToDischargeKWh,
			AvailableStoreCapKWh:    r.AvailableStoreCapKWh,
			ChargeDecisionKWh:       r.ChargeDecisionKWh,
			Action:                  string(r.Action),
			NetPurchasedKWh:         r.NetPurchasedKWh,
		}
	}
	return out
}

// CompareResponse represents the response from a comparison.
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation.
type ComparisonResult struct {
	Name    string             `json:"name"`
	Summary map[string]float64 `json:"summary"`
}

// ControllerInfo represents information about a controller variant.
type ControllerInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a controller parameter.
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "[]int"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
