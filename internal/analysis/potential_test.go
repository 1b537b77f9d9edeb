package analysis

import (
	"testing"
	"time"

	"virtual-battery/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestComputeSpread(t *testing.T) {
	start := time.Date(2018, 3, 5, 0, 0, 0, 0, time.UTC)
	series := make(model.Series, 21)
	for i := range series {
		series[i] = model.Hour{
			Time:          start.Add(time.Duration(i) * time.Hour),
			ApparentPrice: float64(i), // 0..20
		}
	}

	p := ComputeSpread(series)
	assert.Equal(t, 21, p.Count)
	assert.Equal(t, start, p.Start)
	assert.Equal(t, start.Add(20*time.Hour), p.End)
	assert.InDelta(t, 0, p.Min, 1e-12)
	assert.InDelta(t, 20, p.Max, 1e-12)
	assert.InDelta(t, 10, p.Mean, 1e-12)
	// Linear interpolation over 21 order statistics: p05 = 1, p95 = 19.
	assert.InDelta(t, 1, p.P05, 1e-9)
	assert.InDelta(t, 19, p.P95, 1e-9)
	assert.InDelta(t, 18, p.SpreadP95P05, 1e-9)
}

func TestComputeSpread_Empty(t *testing.T) {
	p := ComputeSpread(nil)
	assert.Zero(t, p.Count)
	assert.Zero(t, p.SpreadP95P05)
}
