package controller

import (
	"time"
)

// ScheduleController is the fixed time-of-day policy: discharge during the
// configured peak hours on weekdays, charge at full feasible rate from the
// trough hour onward, hold otherwise.
//
// Peak discharge is bounded by that hour's usage, not just by what the
// battery could deliver: the policy offsets household demand only, it never
// discharges for export. Weekends never trigger peak discharge because
// residential peak demand charges apply on weekdays only.
type ScheduleController struct {
	peakHours  map[int]bool
	troughHour int
}

func NewSchedule(peakHours []int, troughHour int) *ScheduleController {
	set := make(map[int]bool, len(peakHours))
	for _, h := range peakHours {
		set[h] = true
	}
	return &ScheduleController{peakHours: set, troughHour: troughHour}
}

func (c *ScheduleController) Name() string { return "simple_peak" }

func (c *ScheduleController) Decide(ctx Context) float64 {
	t := ctx.Hour.Time
	batt := ctx.Battery

	if c.peakHours[t.Hour()] && isWeekday(t) {
		return -min3(batt.Params.MaxChargeRateKW, batt.AvailableToDischargeKWh, ctx.Hour.UsageKWh)
	}
	if t.Hour() >= c.troughHour {
		return min2(batt.Params.MaxChargeRateKW, batt.AvailableStoreCapKWh)
	}
	return 0
}

func isWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func min3(a, b, c float64) float64 {
	return min2(min2(a, b), c)
}
