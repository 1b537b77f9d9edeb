package sim

import (
	"time"

	"virtual-battery/internal/model"
)

// Row is one hour of simulation output. Battery fields hold the
// beginning-of-hour state, before that hour's decision was applied.
type Row struct {
	Index int
	Time  time.Time

	UsageKWh       float64
	LBMPPerMWh     float64
	DeliveryCharge float64
	ApparentPrice  float64

	StateOfChargeKWh        float64
	AvailableToDischargeKWh float64
	AvailableStoreCapKWh    float64

	ChargeDecisionKWh float64
	Action            model.Action

	// NetPurchasedKWh = usage + decision: a positive decision adds grid
	// draw, a discharge offsets it.
	NetPurchasedKWh float64
}

// Result is the output of one simulation run.
type Result struct {
	Rows    []Row
	Summary map[string]float64

	FinalStateOfChargeKWh float64
}
