package toolpath

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfab-data/lithopath/internal/geom"
)

// buildSegmented assembles a toolpath from explicit per-segment point runs,
// the way the planner does.
func buildSegmented(layers int, segs ...[]Point) *Toolpath {
	tp := &Toolpath{Layers: layers}
	for _, s := range segs {
		start := len(tp.Points)
		tp.Points = append(tp.Points, s...)
		tp.segments = append(tp.segments, segment{Start: start, End: len(tp.Points)})
	}
	return tp
}

func line(x0, x1, y, z float64) []Point {
	return []Point{
		{X: x0, Y: y, Z: z, Power: 20, Speed: 50000},
		{X: x1, Y: y, Z: z, Power: 20, Speed: 50000},
	}
}

func TestOptimize_ImprovesShuffledLayer(t *testing.T) {
	t.Parallel()

	// Scan lines deliberately ordered worst-first: the head leaps across
	// the layer between segments.
	tp := buildSegmented(1,
		line(0, 10, 0, 0),
		line(0, 10, 9, 0),
		line(0, 10, 1, 0),
		line(0, 10, 8, 0),
		line(0, 10, 2, 0),
	)
	before := tp.TotalLength()

	tp.Optimize()

	assert.Less(t, tp.TotalLength(), before)
	assert.Len(t, tp.Points, 10)
}

func TestOptimize_NeverIncreasesLength(t *testing.T) {
	t.Parallel()

	// Already-optimal serpentine layer: the greedy pass cannot beat it and
	// must leave the length unchanged.
	tp := buildSegmented(1,
		line(0, 10, 0, 0),
		line(10, 0, 0.5, 0),
		line(0, 10, 1, 0),
		line(10, 0, 1.5, 0),
	)
	before := tp.TotalLength()

	tp.Optimize()

	assert.LessOrEqual(t, tp.TotalLength(), before)
}

func TestOptimize_PreservesPointSetPerLayer(t *testing.T) {
	t.Parallel()

	tp := buildSegmented(2,
		line(0, 10, 0, 0),
		line(0, 10, 5, 0),
		line(0, 10, 1, 0),
		line(0, 10, 2, 1),
		line(0, 10, 7, 1),
		line(0, 10, 3, 1),
	)

	pointsByZ := func(tp *Toolpath) map[float64][]Point {
		m := make(map[float64][]Point)
		for _, p := range tp.Points {
			m[p.Z] = append(m[p.Z], p)
		}
		for _, pts := range m {
			sort.Slice(pts, func(i, j int) bool {
				if pts[i].X != pts[j].X {
					return pts[i].X < pts[j].X
				}
				return pts[i].Y < pts[j].Y
			})
		}
		return m
	}
	before := pointsByZ(tp)

	tp.Optimize()

	assert.Empty(t, cmp.Diff(before, pointsByZ(tp)),
		"optimization must keep the exact point set of every layer")

	// Layer order in the fabrication sequence is untouched: all z=0 points
	// still precede all z=1 points.
	lastZ := tp.Points[0].Z
	for _, p := range tp.Points {
		assert.GreaterOrEqual(t, p.Z, lastZ, "point crossed a layer boundary")
		lastZ = p.Z
	}
}

func TestOptimize_NoSegmentInfoIsNoOp(t *testing.T) {
	t.Parallel()

	// A reloaded toolpath carries no segment boundaries.
	tp := &Toolpath{
		Points: []Point{
			{X: 0, Speed: 100}, {X: 10, Speed: 100}, {X: 2, Speed: 100},
		},
		Layers: 1,
	}
	want := append([]Point(nil), tp.Points...)

	tp.Optimize()

	assert.Empty(t, cmp.Diff(want, tp.Points))
}

func TestOptimize_PlannerPipelineNonRegression(t *testing.T) {
	t.Parallel()

	cube, err := geom.NewCube(10, 0, 0, 10)
	require.NoError(t, err)

	for _, pattern := range []FillPattern{FillRectilinear, FillConcentric, FillSpiral} {
		cfg := DefaultConfig()
		cfg.FillPattern = pattern
		cfg.OptimizeTravel = false

		planner, err := NewPlanner(cfg)
		require.NoError(t, err)
		tp, err := planner.Generate(cube)
		require.NoError(t, err)

		before := tp.TotalLength()
		points := tp.NumPoints()

		tp.Optimize()

		assert.LessOrEqual(t, tp.TotalLength(), before, "pattern %s", pattern)
		assert.Equal(t, points, tp.NumPoints(), "pattern %s", pattern)
	}
}
