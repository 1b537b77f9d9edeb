package analysis

import (
	"virtual-battery/internal/config"
	"virtual-battery/internal/model"
	"virtual-battery/internal/sim"
)

// SweepPoint is the outcome of one capacity variant: the average monthly
// value of adding that battery.
type SweepPoint struct {
	MaxCapacityKWh  float64
	MonthlyCostDiff float64
}

// CapacityGrid builds an inclusive capacity grid from lo to hi in the given
// step.
func CapacityGrid(lo, hi, step float64) []float64 {
	var out []float64
	for c := lo; c <= hi+1e-9; c += step {
		out = append(out, c)
	}
	return out
}

// CapacitySweep reruns the simulation for each capacity in the grid,
// holding everything else in cfg fixed, and collects the monthly cost
// difference per capacity. Used to answer "how big a battery is worth
// buying" for a given usage profile.
func CapacitySweep(eng *sim.Engine, cfg config.Config, series model.Series, capacities []float64) ([]SweepPoint, error) {
	out := make([]SweepPoint, 0, len(capacities))
	for _, capacity := range capacities {
		runCfg := cfg
		runCfg.Battery.MaxCapacityKWh = capacity
		res, err := eng.Run(runCfg, series)
		if err != nil {
			return nil, err
		}
		out = append(out, SweepPoint{
			MaxCapacityKWh:  capacity,
			MonthlyCostDiff: res.Summary["monthly_cost_diff_$"],
		})
	}
	return out, nil
}
