package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantile_LinearInterpolation(t *testing.T) {
	vals := []float64{4, 1, 3, 2} // unsorted on purpose

	assert.InDelta(t, 1, Quantile(vals, 0), 1e-12)
	assert.InDelta(t, 4, Quantile(vals, 1), 1e-12)
	assert.InDelta(t, 2.5, Quantile(vals, 0.5), 1e-12)
	assert.InDelta(t, 1.75, Quantile(vals, 0.25), 1e-12)

	// Input must not be reordered.
	assert.Equal(t, []float64{4, 1, 3, 2}, vals)
}

func TestQuantile_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Quantile(nil, 0.5))
}

func TestQuantile_SingleValue(t *testing.T) {
	assert.InDelta(t, 7, Quantile([]float64{7}, 0.3), 1e-12)
}
