package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"virtual-battery/internal/config"
	"virtual-battery/internal/model"
	"virtual-battery/internal/sim"

	"github.com/rs/zerolog"
)

// Demo run against a synthetic two-day series: constant usage, wholesale
// price alternating cheap/expensive by hour parity with an intra-day ramp
// so the daily quantile thresholds fall inside the two bands. Runs both
// controllers and prints their summaries side by side.
func main() {
	series := syntheticSeries()

	base := config.Default()
	base.Battery.MaxCapacityKWh = 10
	base.Battery.InitialStateOfChargeKWh = 0

	threshold := base
	threshold.RunName = "demo_daily_threshold"
	threshold.Controller.Type = "daily_threshold"

	peak := base
	peak.RunName = "demo_simple_peak"
	peak.Controller.Type = "simple_peak"

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	eng := sim.New(log)

	for _, cfg := range []config.Config{threshold, peak} {
		res, err := eng.Run(cfg, series)
		if err != nil {
			panic(err)
		}
		fmt.Printf("\n=== %s ===\n", cfg.RunName)
		printSummary(res.Summary)
	}
}

func syntheticSeries() model.Series {
	start := time.Date(2018, 3, 5, 0, 0, 0, 0, time.UTC) // a Monday
	series := make(model.Series, 0, 48)
	for i := 0; i < 48; i++ {
		t := start.Add(time.Duration(i) * time.Hour)
		lbmp := 70.0 + float64(t.Hour()) // $/MWh
		if t.Hour()%2 == 0 {
			lbmp = 30.0 + float64(t.Hour())
		}
		series = append(series, model.Hour{
			Time:       t,
			UsageKWh:   1.0,
			LBMPPerMWh: lbmp,
		})
	}
	return series
}

func printSummary(summary map[string]float64) {
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-45s %12.4f\n", k, summary[k])
	}
}
