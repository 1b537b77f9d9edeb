package analysis

import (
	"math"
	"sort"
	"time"

	"virtual-battery/internal/model"
	"virtual-battery/internal/stats"
)

// PriceSpread summarizes how volatile a priced series is. A wide p95-p05
// spread is the first screen for whether a battery is worth simulating
// against this data at all.
type PriceSpread struct {
	Start time.Time
	End   time.Time

	Count int

	Min  float64
	Max  float64
	Mean float64
	P05  float64
	P95  float64

	SpreadP95P05 float64
}

// ComputeSpread reduces a priced series (apparent prices populated) to its
// spread statistics.
func ComputeSpread(series model.Series) PriceSpread {
	p := PriceSpread{}
	if len(series) == 0 {
		return p
	}
	p.Count = len(series)
	p.Start = series[0].Time
	p.End = series[len(series)-1].Time

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(series))
	for _, h := range series {
		v := h.ApparentPrice
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	p.Min = minv
	p.Max = maxv
	p.Mean = sum / float64(len(vals))
	p.P05 = stats.QuantileSorted(vals, 0.05)
	p.P95 = stats.QuantileSorted(vals, 0.95)
	p.SpreadP95P05 = p.P95 - p.P05
	return p
}
