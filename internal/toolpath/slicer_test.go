package toolpath

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZSamples_LayerCountBound(t *testing.T) {
	t.Parallel()

	cases := []struct {
		span, height float64
	}{
		{10, 0.5},
		{10, 0.3},
		{1, 1},
		{0.9, 1},
		{25, 0.25},
		{7.3, 0.4},
	}
	for _, tc := range cases {
		samples, err := zSamples(0, tc.span, tc.height, nil)
		require.NoError(t, err)

		want := int(math.Ceil(tc.span / tc.height))
		assert.LessOrEqual(t, math.Abs(float64(len(samples)-want)), 1.0,
			"span %g height %g", tc.span, tc.height)
	}
}

func TestZSamples_IncludesBothEndpoints(t *testing.T) {
	t.Parallel()

	samples, err := zSamples(5, 15, 0.5, nil)
	require.NoError(t, err)
	require.Len(t, samples, 20)

	assert.InDelta(t, 5.0, samples[0], 1e-9)
	assert.InDelta(t, 15.0, samples[len(samples)-1], 1e-9)

	// Both endpoints are included, so the effective spacing span/(n-1)
	// lands slightly looser than the configured layer height.
	step := samples[1] - samples[0]
	assert.InDelta(t, 10.0/19.0, step, 1e-9)

	for i := 1; i < len(samples); i++ {
		assert.Greater(t, samples[i], samples[i-1])
	}
}

func TestZSamples_FlatGeometryFails(t *testing.T) {
	t.Parallel()

	_, err := zSamples(10, 10, 0.5, nil)
	require.Error(t, err)

	var ce *ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestZSamples_Adaptive(t *testing.T) {
	t.Parallel()

	base, err := zSamples(0, 10, 1, nil)
	require.NoError(t, err)

	adaptive, err := zSamples(0, 10, 1, &AdaptiveLayering{TopLayers: 3, LayerHeight: 0.25})
	require.NoError(t, err)

	assert.Greater(t, len(adaptive), len(base), "refinement adds samples")
	assert.InDelta(t, 0.0, adaptive[0], 1e-9)
	assert.InDelta(t, 10.0, adaptive[len(adaptive)-1], 1e-9)

	for i := 1; i < len(adaptive); i++ {
		assert.Greater(t, adaptive[i], adaptive[i-1], "samples stay strictly increasing")
	}

	// The refined span is sampled more densely than the base span.
	top := adaptive[len(adaptive)-1] - adaptive[len(adaptive)-2]
	bottom := adaptive[1] - adaptive[0]
	assert.Less(t, top, bottom)
}

func TestZSamples_SingleLayer(t *testing.T) {
	t.Parallel()

	samples, err := zSamples(2, 2.4, 0.5, nil)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.InDelta(t, 2.0, samples[0], 1e-9)
}
