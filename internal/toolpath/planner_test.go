package toolpath

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfab-data/lithopath/internal/geom"
)

// stubSolid lets tests script the geometry collaborator's behaviour.
type stubSolid struct {
	bounds    geom.Bounds3
	boundsErr error
	slice     func(z []float64) ([]geom.Section, []geom.SliceDiagnostic)
}

func (s *stubSolid) Bounds() (geom.Bounds3, error) { return s.bounds, s.boundsErr }

func (s *stubSolid) Slice(z []float64) ([]geom.Section, []geom.SliceDiagnostic) {
	if s.slice != nil {
		return s.slice(z)
	}
	return make([]geom.Section, len(z)), nil
}

func testCube(t *testing.T) geom.Solid {
	t.Helper()
	cube, err := geom.NewCube(10, 0, 0, 10)
	require.NoError(t, err)
	return cube
}

func TestGenerate_Cube(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LayerHeight = 0.5

	planner, err := NewPlanner(cfg)
	require.NoError(t, err)

	tp, err := planner.Generate(testCube(t))
	require.NoError(t, err)

	// 10 um span at 0.5 um layers.
	assert.InDelta(t, 20, tp.Layers, 1)
	assert.Greater(t, tp.NumPoints(), 0)

	// First and last layers sit at the geometry extremes.
	assert.InDelta(t, 5.0, tp.Points[0].Z, 1e-9)
	assert.InDelta(t, 15.0, tp.Points[len(tp.Points)-1].Z, 1e-9)

	// Fabrication order never goes back down in z.
	for i := 1; i < len(tp.Points); i++ {
		assert.GreaterOrEqual(t, tp.Points[i].Z, tp.Points[i-1].Z)
	}

	for _, p := range tp.Points {
		assert.Equal(t, cfg.Power, p.Power)
		assert.Equal(t, cfg.ScanSpeed, p.Speed)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	for _, pattern := range []FillPattern{FillRectilinear, FillConcentric, FillSpiral} {
		cfg := DefaultConfig()
		cfg.FillPattern = pattern

		planner, err := NewPlanner(cfg)
		require.NoError(t, err)

		first, err := planner.Generate(testCube(t))
		require.NoError(t, err)
		second, err := planner.Generate(testCube(t))
		require.NoError(t, err)

		// Layers fill concurrently, so the merged order must not depend
		// on scheduling.
		assert.Empty(t, cmp.Diff(first.Points, second.Points), "pattern %s", pattern)
	}
}

func TestGenerate_NilSolid(t *testing.T) {
	t.Parallel()

	planner, err := NewPlanner(DefaultConfig())
	require.NoError(t, err)

	_, err = planner.Generate(nil)
	require.Error(t, err)
	var ge *GeometryError
	assert.ErrorAs(t, err, &ge)
}

func TestGenerate_BoundsFailure(t *testing.T) {
	t.Parallel()

	planner, err := NewPlanner(DefaultConfig())
	require.NoError(t, err)

	_, err = planner.Generate(&stubSolid{boundsErr: errors.New("mesh is empty")})
	require.Error(t, err)
	var ge *GeometryError
	assert.ErrorAs(t, err, &ge)
}

func TestGenerate_MismatchedSliceCount(t *testing.T) {
	t.Parallel()

	planner, err := NewPlanner(DefaultConfig())
	require.NoError(t, err)

	solid := &stubSolid{
		bounds: geom.Bounds3{ZMax: 3, XMax: 1, YMax: 1},
		slice: func(z []float64) ([]geom.Section, []geom.SliceDiagnostic) {
			return nil, nil
		},
	}
	_, err = planner.Generate(solid)
	require.Error(t, err)
	var ge *GeometryError
	assert.ErrorAs(t, err, &ge)
}

func TestGenerate_EmptyLayerKeepsLayerCount(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LayerHeight = 1
	cfg.OptimizeTravel = false

	planner, err := NewPlanner(cfg)
	require.NoError(t, err)

	// Material at the bottom and top samples, a void in between.
	solid := &stubSolid{
		bounds: geom.Bounds3{XMax: 2, YMax: 2, ZMax: 3},
		slice: func(z []float64) ([]geom.Section, []geom.SliceDiagnostic) {
			sections := make([]geom.Section, len(z))
			for i := range z {
				if i != 1 {
					sections[i] = geom.RectSection{Box: geom.Bounds2{XMax: 2, YMax: 2}}
				}
			}
			return sections, nil
		},
	}

	tp, err := planner.Generate(solid)
	require.NoError(t, err)

	assert.Equal(t, 3, tp.Layers, "empty cross-section still counts as a layer")
	for _, p := range tp.Points {
		assert.NotEqual(t, 1.5, p.Z, "no points on the empty layer")
	}
}

func TestGenerate_SliceDiagnosticsAreNonFatal(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LayerHeight = 1

	planner, err := NewPlanner(cfg)
	require.NoError(t, err)

	solid := &stubSolid{
		bounds: geom.Bounds3{XMax: 2, YMax: 2, ZMax: 3},
		slice: func(z []float64) ([]geom.Section, []geom.SliceDiagnostic) {
			sections := make([]geom.Section, len(z))
			sections[0] = geom.RectSection{Box: geom.Bounds2{XMax: 2, YMax: 2}}
			return sections, []geom.SliceDiagnostic{{Z: z[1], Reason: "solver did not converge"}}
		},
	}

	tp, err := planner.Generate(solid)
	require.NoError(t, err, "per-height slice failures must not abort generation")
	assert.Greater(t, tp.NumPoints(), 0)
}

func TestGenerate_FirstLayerOverride(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LayerHeight = 0.5
	cfg.FirstLayer = &FirstLayer{Power: 26, Speed: 25000}

	planner, err := NewPlanner(cfg)
	require.NoError(t, err)

	tp, err := planner.Generate(testCube(t))
	require.NoError(t, err)

	firstZ := tp.Points[0].Z
	for _, p := range tp.Points {
		if p.Z == firstZ {
			assert.Equal(t, 26.0, p.Power)
			assert.Equal(t, 25000.0, p.Speed)
		} else {
			assert.Equal(t, cfg.Power, p.Power)
			assert.Equal(t, cfg.ScanSpeed, p.Speed)
		}
	}
}

func TestGenerate_RegionPowerOverride(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	// Duplicate registrations: the most recent wins.
	cfg.RegionPowers = []RegionPower{
		{Region: "overhang", Power: 24},
		{Region: "overhang", Power: 28},
	}

	planner, err := NewPlanner(cfg)
	require.NoError(t, err)

	tp, err := planner.Generate(geom.Named(testCube(t), "overhang"))
	require.NoError(t, err)
	require.Greater(t, tp.NumPoints(), 0)

	for _, p := range tp.Points {
		assert.Equal(t, 28.0, p.Power)
		assert.Equal(t, cfg.ScanSpeed, p.Speed, "region overrides retune power only")
	}
}

func TestGenerate_BidirectionalIsFaster(t *testing.T) {
	t.Parallel()

	run := func(bidirectional bool) *Toolpath {
		cfg := DefaultConfig()
		cfg.LayerHeight = 0.5
		cfg.OptimizeTravel = false
		cfg.Bidirectional = bidirectional

		planner, err := NewPlanner(cfg)
		require.NoError(t, err)
		tp, err := planner.Generate(testCube(t))
		require.NoError(t, err)
		return tp
	}

	bidi := run(true)
	uni := run(false)

	assert.Equal(t, uni.NumPoints(), bidi.NumPoints())
	assert.Less(t, bidi.TimeEstimate(), uni.TimeEstimate())
}
