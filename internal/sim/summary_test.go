package sim

import (
	"testing"
	"time"

	"virtual-battery/internal/config"

	"github.com/stretchr/testify/assert"
)

// Four Monday hours around a 16:00-17:00 peak window. The battery covers
// half of each peak hour's usage and recharges one extra kWh at 18:00.
func summaryRows() []Row {
	start := time.Date(2018, 3, 5, 15, 0, 0, 0, time.UTC)
	usage := []float64{1, 2, 2, 1}
	net := []float64{1, 1, 1, 2}
	price := []float64{0.1, 0.3, 0.3, 0.1}

	rows := make([]Row, 4)
	for i := range rows {
		rows[i] = Row{
			Index:           i,
			Time:            start.Add(time.Duration(i) * time.Hour),
			UsageKWh:        usage[i],
			ApparentPrice:   price[i],
			NetPurchasedKWh: net[i],
		}
	}
	return rows
}

func TestSummarize(t *testing.T) {
	pricing := config.PricingConfig{PeakStartHour: 16, PeakEndHour: 17}
	s := Summarize(summaryRows(), pricing, 730)

	assert.InDelta(t, 1.4, s["total_cost_no_battery"], 1e-9)
	assert.InDelta(t, 0.9, s["total_cost_with_battery"], 1e-9)
	assert.InDelta(t, 0.5, s["total_cost_diff"], 1e-9)

	assert.InDelta(t, 6, s["total_electricity_purchases_no_battery"], 1e-9)
	assert.InDelta(t, 5, s["total_electricity_purchases_with_battery"], 1e-9)
	assert.InDelta(t, -1, s["total_electricity_purchases_diff"], 1e-9)

	assert.InDelta(t, 4, s["peak_electricity_purchases_no_battery"], 1e-9)
	assert.InDelta(t, 2, s["peak_electricity_purchases_with_battery"], 1e-9)
	assert.InDelta(t, -2, s["peak_electricity_purchases_diff"], 1e-9)

	assert.InDelta(t, 4.0/6, s["peak_ratio_no_battery"], 1e-9)
	assert.InDelta(t, 2.0/5, s["peak_ratio_with_battery"], 1e-9)
	assert.InDelta(t, 2.0/5-4.0/6, s["peak_ratio_diff"], 1e-9)

	// Extrapolated to a 730-hour month from a 4-hour sample.
	assert.InDelta(t, 0.5/4*730, s["monthly_cost_diff_$"], 1e-9)
	assert.InDelta(t, -1.0/4*730, s["monthly_electricity_purchases_diff"], 1e-9)
	assert.InDelta(t, -2.0/4*730, s["monthly_peak_electricity_purchases_diff"], 1e-9)
}

// Peak-window membership in the summary is by hour of day only; a weekend
// hour inside the window still counts as peak.
func TestSummarize_PeakWindowIgnoresWeekday(t *testing.T) {
	pricing := config.PricingConfig{PeakStartHour: 16, PeakEndHour: 17, WeekdaysOnly: true}
	rows := []Row{
		{
			Time:            time.Date(2018, 3, 10, 16, 0, 0, 0, time.UTC), // Saturday
			UsageKWh:        2,
			ApparentPrice:   0.1,
			NetPurchasedKWh: 2,
		},
		{
			Time:            time.Date(2018, 3, 10, 17, 0, 0, 0, time.UTC),
			UsageKWh:        2,
			ApparentPrice:   0.1,
			NetPurchasedKWh: 2,
		},
	}
	s := Summarize(rows, pricing, 730)
	assert.InDelta(t, 4, s["peak_electricity_purchases_no_battery"], 1e-9)
	assert.InDelta(t, 1, s["peak_ratio_no_battery"], 1e-9)
}
