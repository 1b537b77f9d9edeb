package sim

import (
	"fmt"
	"time"

	"virtual-battery/internal/config"
	"virtual-battery/internal/controller"
	"virtual-battery/internal/model"

	"github.com/rs/zerolog"
)

// Engine runs one battery simulation over an hourly usage/price series.
type Engine struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Engine { return &Engine{log: log} }

// ApplyPricing derives the consumer-facing price columns on a copy of the
// series: delivery charge by time of day (peak rate inside the configured
// window, weekdays only if so restricted) and apparent price =
// LBMP/1000 + delivery charge.
func ApplyPricing(series model.Series, p config.PricingConfig) model.Series {
	priced := make(model.Series, len(series))
	copy(priced, series)
	for i := range priced {
		t := priced[i].Time
		if inPeakWindow(t, p) {
			priced[i].DeliveryCharge = p.DeliveryChargePeak
		} else {
			priced[i].DeliveryCharge = p.DeliveryChargeOffpeak
		}
		priced[i].ApparentPrice = priced[i].LBMPPerMWh/1000 + priced[i].DeliveryCharge
	}
	return priced
}

func inPeakWindow(t time.Time, p config.PricingConfig) bool {
	h := t.Hour()
	if h < p.PeakStartHour || h > p.PeakEndHour {
		return false
	}
	if p.WeekdaysOnly {
		wd := t.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			return false
		}
	}
	return true
}

// Run executes the full simulation: price derivation, battery and controller
// construction, then a strict chronological fold over the series. Each
// hour's decision depends on the battery state left by the previous hour, so
// the fold is inherently sequential.
//
// Any battery contract violation aborts the run; the error names the
// offending hour and the requested amount.
func (e *Engine) Run(cfg config.Config, series model.Series) (*Result, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no series data")
	}

	priced := ApplyPricing(series, cfg.Pricing)

	batt, err := model.NewBattery(cfg.Battery.ToModelParams(), cfg.Battery.InitialStateOfChargeKWh)
	if err != nil {
		return nil, err
	}
	ctrl, err := controller.New(cfg.Controller)
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Str("run", cfg.RunName).
		Str("controller", ctrl.Name()).
		Str("battery", cfg.Battery.ModelName).
		Int("hours", len(priced)).
		Msg("starting simulation")

	rows, err := e.fold(priced, batt, ctrl)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Rows:                  rows,
		Summary:               Summarize(rows, cfg.Pricing, cfg.HoursPerMonth),
		FinalStateOfChargeKWh: batt.StateOfChargeKWh,
	}

	e.log.Info().
		Str("run", cfg.RunName).
		Float64("monthly_cost_diff", res.Summary["monthly_cost_diff_$"]).
		Float64("final_soc_kwh", res.FinalStateOfChargeKWh).
		Msg("simulation finished")

	return res, nil
}

// fold is the strict left-to-right hourly loop. Each iteration records the
// battery's beginning-of-hour state, asks the controller for a decision and
// applies it.
func (e *Engine) fold(priced model.Series, batt *model.Battery, ctrl controller.Controller) ([]Row, error) {
	rows := make([]Row, 0, len(priced))
	for idx, hour := range priced {
		row := Row{
			Index: idx,
			Time:  hour.Time,

			UsageKWh:       hour.UsageKWh,
			LBMPPerMWh:     hour.LBMPPerMWh,
			DeliveryCharge: hour.DeliveryCharge,
			ApparentPrice:  hour.ApparentPrice,

			StateOfChargeKWh:        batt.StateOfChargeKWh,
			AvailableToDischargeKWh: batt.AvailableToDischargeKWh,
			AvailableStoreCapKWh:    batt.AvailableStoreCapKWh,
		}

		decision := ctrl.Decide(controller.Context{
			Index:   idx,
			Hour:    hour,
			Series:  priced,
			Battery: batt,
		})
		if err := batt.Charge(decision); err != nil {
			return nil, fmt.Errorf("hour %s: requested %.4f kWh: %w",
				hour.Time.Format(time.RFC3339), decision, err)
		}

		row.ChargeDecisionKWh = decision
		row.Action = model.ActionFromRequest(decision)
		row.NetPurchasedKWh = hour.UsageKWh + decision
		rows = append(rows, row)
	}
	return rows, nil
}
