package sim

import (
	"virtual-battery/internal/config"

	"gonum.org/v1/gonum/floats"
)

// Summarize reduces a completed result series to the scenario comparison:
// total cost and electricity volume with and without the battery, the share
// of volume bought during the peak window, and absolute plus
// per-average-month differences between the two scenarios.
//
// Peak-window membership here is by hour of day only; the weekday
// restriction applies to delivery pricing, not to this reduction.
func Summarize(rows []Row, pricing config.PricingConfig, hoursPerMonth float64) map[string]float64 {
	n := len(rows)
	if n == 0 {
		return map[string]float64{}
	}

	usage := make([]float64, n)
	net := make([]float64, n)
	price := make([]float64, n)
	var peakUsage, peakNet float64
	for i, r := range rows {
		usage[i] = r.UsageKWh
		net[i] = r.NetPurchasedKWh
		price[i] = r.ApparentPrice
		if h := r.Time.Hour(); h >= pricing.PeakStartHour && h <= pricing.PeakEndHour {
			peakUsage += r.UsageKWh
			peakNet += r.NetPurchasedKWh
		}
	}

	d := map[string]float64{}

	// Scenario: without battery.
	d["total_cost_no_battery"] = floats.Dot(usage, price)
	d["total_electricity_purchases_no_battery"] = floats.Sum(usage)
	d["peak_electricity_purchases_no_battery"] = peakUsage
	d["peak_ratio_no_battery"] = peakUsage / d["total_electricity_purchases_no_battery"]

	// Scenario: with battery.
	d["total_cost_with_battery"] = floats.Dot(net, price)
	d["total_electricity_purchases_with_battery"] = floats.Sum(net)
	d["peak_electricity_purchases_with_battery"] = peakNet
	d["peak_ratio_with_battery"] = peakNet / d["total_electricity_purchases_with_battery"]

	// Comparing scenarios: absolute.
	d["total_cost_diff"] = d["total_cost_no_battery"] - d["total_cost_with_battery"]
	d["total_electricity_purchases_diff"] = d["total_electricity_purchases_with_battery"] - d["total_electricity_purchases_no_battery"]
	d["peak_electricity_purchases_diff"] = d["peak_electricity_purchases_with_battery"] - d["peak_electricity_purchases_no_battery"]

	// Comparing scenarios: per average month.
	d["monthly_cost_diff_$"] = d["total_cost_diff"] / float64(n) * hoursPerMonth
	d["monthly_electricity_purchases_diff"] = d["total_electricity_purchases_diff"] / float64(n) * hoursPerMonth
	d["monthly_peak_electricity_purchases_diff"] = d["peak_electricity_purchases_diff"] / float64(n) * hoursPerMonth
	d["peak_ratio_diff"] = d["peak_ratio_with_battery"] - d["peak_ratio_no_battery"]

	return d
}
