package toolpath

import "math"

// linspace returns n samples evenly spaced across [lo, hi] inclusive of both
// endpoints. For n == 1 the single sample is lo.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	// Pin the last sample to avoid accumulated rounding past hi.
	out[n-1] = hi
	return out
}

// zSamples computes the slicing heights for a structure spanning
// [zMin, zMax]. The sample count is ceil(span/layerHeight) and samples are
// evenly spaced including both endpoints, so for more than one layer the
// effective spacing span/(n-1) comes out slightly looser than the configured
// layer height.
//
// With adaptive layering enabled, the span covered by the top TopLayers
// samples is re-sampled at the finer adaptive height.
func zSamples(zMin, zMax, layerHeight float64, adaptive *AdaptiveLayering) ([]float64, error) {
	n := int(math.Ceil((zMax - zMin) / layerHeight))
	if n < 1 {
		return nil, &ConfigError{Field: "layer height", Reason: "yields no layers for this geometry"}
	}
	base := linspace(zMin, zMax, n)
	if adaptive == nil || n < 2 {
		return base, nil
	}

	top := adaptive.TopLayers
	if top >= n {
		top = n - 1
	}
	zStart := base[n-top]
	fine := int(math.Ceil((zMax - zStart) / adaptive.LayerHeight))
	if fine < 2 {
		return base, nil
	}
	out := append([]float64{}, base[:n-top]...)
	out = append(out, linspace(zStart, zMax, fine)...)
	return out, nil
}
