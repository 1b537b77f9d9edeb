package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultParams = BatteryParams{
	ModelName:           "Tesla Powerwall 2",
	MaxCapacityKWh:      10,
	MaxChargeRateKW:     3.3,
	RoundTripEfficiency: 0.9,
}

func TestBattery_NewDerivesEfficiencyAndAvailability(t *testing.T) {
	b, err := NewBattery(defaultParams, 5)
	require.NoError(t, err)

	eff := math.Sqrt(0.9)
	assert.InDelta(t, eff, b.ChargeEfficiency, 1e-12)
	assert.InDelta(t, 5, b.StateOfChargeKWh, 1e-12)
	assert.InDelta(t, 5*eff, b.AvailableToDischargeKWh, 1e-12)
	assert.InDelta(t, 5/eff, b.AvailableStoreCapKWh, 1e-12)
}

func TestBattery_NewRejectsBadParams(t *testing.T) {
	bad := defaultParams
	bad.RoundTripEfficiency = 1.2
	_, err := NewBattery(bad, 0)
	assert.Error(t, err)

	bad = defaultParams
	bad.MaxCapacityKWh = 0
	_, err = NewBattery(bad, 0)
	assert.Error(t, err)

	_, err = NewBattery(defaultParams, 11)
	assert.Error(t, err)
}

func TestBattery_ChargeAppliesLoss(t *testing.T) {
	b, err := NewBattery(defaultParams, 0)
	require.NoError(t, err)

	require.NoError(t, b.Charge(2))
	eff := b.ChargeEfficiency
	assert.InDelta(t, 2*eff, b.StateOfChargeKWh, 1e-12)

	// Discharging withdraws more stored energy than the nominal request.
	require.NoError(t, b.Charge(-1))
	assert.InDelta(t, 2*eff-1/eff, b.StateOfChargeKWh, 1e-12)
}

func TestBattery_DerivedFieldsHoldAfterEveryMutation(t *testing.T) {
	b, err := NewBattery(defaultParams, 3)
	require.NoError(t, err)

	for _, req := range []float64{2, -1, 3.3, -0.5, 1.1, -2} {
		require.NoError(t, b.Charge(req))
		assert.GreaterOrEqual(t, b.StateOfChargeKWh, 0.0)
		assert.LessOrEqual(t, b.StateOfChargeKWh, b.Params.MaxCapacityKWh)
		assert.InDelta(t, b.StateOfChargeKWh*b.ChargeEfficiency, b.AvailableToDischargeKWh, 1e-12)
		assert.InDelta(t, (b.Params.MaxCapacityKWh-b.StateOfChargeKWh)/b.ChargeEfficiency, b.AvailableStoreCapKWh, 1e-12)
	}
}

func TestBattery_RoundTripReturnsToStart(t *testing.T) {
	b, err := NewBattery(defaultParams, 0)
	require.NoError(t, err)

	// Charge x, then discharge the resulting availability: the battery must
	// come back exactly to empty, with the round-trip loss borne by the
	// caller (3 kWh in, 3*0.9 kWh out).
	require.NoError(t, b.Charge(3))
	out := b.AvailableToDischargeKWh
	assert.InDelta(t, 3*0.9, out, 1e-9)

	require.NoError(t, b.Charge(-out))
	assert.InDelta(t, 0, b.StateOfChargeKWh, 1e-9)
}

func TestBattery_InvalidRequestRate(t *testing.T) {
	b, err := NewBattery(defaultParams, 5)
	require.NoError(t, err)

	err = b.Charge(3.31)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	err = b.Charge(-3.31)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	// Battery state is untouched after a rejected request.
	assert.InDelta(t, 5, b.StateOfChargeKWh, 1e-12)
}

func TestBattery_OverDischarge(t *testing.T) {
	b, err := NewBattery(defaultParams, 0)
	require.NoError(t, err)

	err = b.Charge(-0.1)
	assert.ErrorIs(t, err, ErrOverDischarge)
	assert.InDelta(t, 0, b.StateOfChargeKWh, 1e-12)
}

func TestBattery_OverChargeAtFullRate(t *testing.T) {
	b, err := NewBattery(defaultParams, 0)
	require.NoError(t, err)

	rate := b.Params.MaxChargeRateKW
	for b.AvailableStoreCapKWh >= rate {
		require.NoError(t, b.Charge(rate))
	}

	err = b.Charge(rate)
	assert.ErrorIs(t, err, ErrOverCharge)
}
