package model

import (
	"errors"
	"fmt"
	"math"
)

// Charge errors. A controller that triggers any of these is buggy: the run
// must abort rather than clamp, so the bad decision is visible.
var (
	// ErrInvalidRequest means the requested charge/discharge magnitude
	// exceeds the battery's rate limit.
	ErrInvalidRequest = errors.New("charge request exceeds max charge rate")
	// ErrOverDischarge means the request would drive state of charge below zero.
	ErrOverDischarge = errors.New("charge request would over-discharge the battery")
	// ErrOverCharge means the request would drive state of charge above capacity.
	ErrOverCharge = errors.New("charge request would overfill the battery")
)

// BatteryParams defines the physical parameters of the battery.
// Units:
// - MaxCapacityKWh: kWh
// - MaxChargeRateKW: kW (bounds the magnitude of any hourly request)
// - RoundTripEfficiency: 0..1, fraction recovered over a full charge+discharge cycle
type BatteryParams struct {
	ModelName           string
	MaxCapacityKWh      float64
	MaxChargeRateKW     float64
	RoundTripEfficiency float64
}

// Battery holds the mutable state of a single battery plus its constraints.
//
// ChargeEfficiency is sqrt(RoundTripEfficiency): charge and discharge are
// assumed equally lossy, so applying it once per operation composes to the
// round-trip figure over a full cycle.
//
// AvailableToDischargeKWh and AvailableStoreCapKWh are derived from
// StateOfChargeKWh and recomputed on every successful mutation:
//   - AvailableToDischargeKWh = soc * ChargeEfficiency (useful energy out if
//     fully discharged now)
//   - AvailableStoreCapKWh = (cap - soc) / ChargeEfficiency (energy that must
//     be delivered to fill the battery, charging loss included)
type Battery struct {
	Params BatteryParams

	ChargeEfficiency float64

	StateOfChargeKWh        float64
	AvailableToDischargeKWh float64
	AvailableStoreCapKWh    float64
}

func NewBattery(params BatteryParams, initialStateOfChargeKWh float64) (*Battery, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if initialStateOfChargeKWh < 0 || initialStateOfChargeKWh > params.MaxCapacityKWh {
		return nil, fmt.Errorf("initial state of charge %.3f kWh outside [0, %.3f]",
			initialStateOfChargeKWh, params.MaxCapacityKWh)
	}
	b := &Battery{
		Params:           params,
		ChargeEfficiency: math.Sqrt(params.RoundTripEfficiency),
	}
	b.setStateOfCharge(initialStateOfChargeKWh)
	return b, nil
}

func (p BatteryParams) Validate() error {
	if p.MaxCapacityKWh <= 0 {
		return errors.New("MaxCapacityKWh must be > 0")
	}
	if p.MaxChargeRateKW <= 0 {
		return errors.New("MaxChargeRateKW must be > 0")
	}
	if p.RoundTripEfficiency <= 0 || p.RoundTripEfficiency > 1 {
		return errors.New("RoundTripEfficiency must be in (0, 1]")
	}
	return nil
}

// Charge applies one hour's requested energy transfer, in kWh.
// Positive request charges the battery, negative discharges it.
//
// Losses are applied per operation: charging stores request*ChargeEfficiency,
// discharging withdraws |request|/ChargeEfficiency from the stored energy.
// The request magnitude must not exceed MaxChargeRateKW and the resulting
// state of charge must stay within [0, MaxCapacityKWh]; violations return
// ErrInvalidRequest, ErrOverDischarge or ErrOverCharge and leave the battery
// unchanged.
func (b *Battery) Charge(request float64) error {
	if math.Abs(request) > b.Params.MaxChargeRateKW {
		return fmt.Errorf("%w: |%.4f| > %.4f kW", ErrInvalidRequest, request, b.Params.MaxChargeRateKW)
	}

	var proposed float64
	if request >= 0 {
		proposed = b.StateOfChargeKWh + request*b.ChargeEfficiency
	} else {
		proposed = b.StateOfChargeKWh + request/b.ChargeEfficiency
	}

	if proposed < 0 {
		return fmt.Errorf("%w: proposed state of charge %.4f kWh", ErrOverDischarge, proposed)
	}
	if proposed > b.Params.MaxCapacityKWh {
		return fmt.Errorf("%w: proposed state of charge %.4f kWh > capacity %.4f kWh",
			ErrOverCharge, proposed, b.Params.MaxCapacityKWh)
	}

	b.setStateOfCharge(proposed)
	return nil
}

func (b *Battery) setStateOfCharge(soc float64) {
	b.StateOfChargeKWh = soc
	b.AvailableToDischargeKWh = soc * b.ChargeEfficiency
	b.AvailableStoreCapKWh = (b.Params.MaxCapacityKWh - soc) / b.ChargeEfficiency
}
