package controller

import (
	"time"

	"virtual-battery/internal/stats"
)

// ThresholdController discharges when the current apparent price is above a
// high threshold and charges when it is below a low threshold. The
// thresholds are the configured quantiles of a single day's apparent prices,
// recomputed at each day boundary, so the policy adapts to daily
// price-volatility regimes instead of using one global cutoff.
//
// This is the only controller with time-dependent internal state: the cached
// thresholds and the day they were computed from.
type ThresholdController struct {
	highQuantile float64
	lowQuantile  float64

	initialized bool
	threshDay   time.Time
	highPrice   float64
	lowPrice    float64
}

func NewThreshold(highQuantile, lowQuantile float64) *ThresholdController {
	return &ThresholdController{
		highQuantile: highQuantile,
		lowQuantile:  lowQuantile,
	}
}

func (c *ThresholdController) Name() string { return "daily_threshold" }

// Thresholds reports the currently cached high/low threshold prices.
func (c *ThresholdController) Thresholds() (high, low float64) {
	return c.highPrice, c.lowPrice
}

func (c *ThresholdController) Decide(ctx Context) float64 {
	t := ctx.Hour.Time
	if !c.initialized || (t.Hour() == 0 && !sameDay(t, c.threshDay)) {
		c.updateThresholds(ctx)
	}

	batt := ctx.Battery
	price := ctx.Hour.ApparentPrice

	if price > c.highPrice {
		return -min3(batt.Params.MaxChargeRateKW, batt.AvailableToDischargeKWh, ctx.Hour.UsageKWh)
	}
	if price < c.lowPrice {
		return min2(batt.Params.MaxChargeRateKW, batt.AvailableStoreCapKWh)
	}
	return 0
}

// updateThresholds recalibrates against the calendar day of the current hour.
func (c *ThresholdController) updateThresholds(ctx Context) {
	day := ctx.Series.Day(ctx.Hour.Time)
	prices := day.ApparentPrices()
	c.highPrice = stats.Quantile(prices, c.highQuantile)
	c.lowPrice = stats.Quantile(prices, c.lowQuantile)
	c.threshDay = ctx.Hour.Time
	c.initialized = true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
