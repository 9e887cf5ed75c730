package toolpath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanningConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DefaultConfig().Validate())

	cases := []struct {
		name   string
		mutate func(*PlanningConfig)
	}{
		{"zero layer height", func(c *PlanningConfig) { c.LayerHeight = 0 }},
		{"negative layer height", func(c *PlanningConfig) { c.LayerHeight = -0.1 }},
		{"zero hatch", func(c *PlanningConfig) { c.HatchDistance = 0 }},
		{"zero speed", func(c *PlanningConfig) { c.ScanSpeed = 0 }},
		{"negative power", func(c *PlanningConfig) { c.Power = -5 }},
		{"unknown pattern", func(c *PlanningConfig) { c.FillPattern = "zigzag" }},
		{"first layer zero speed", func(c *PlanningConfig) {
			c.FirstLayer = &FirstLayer{Power: 20, Speed: 0}
		}},
		{"unnamed region override", func(c *PlanningConfig) {
			c.RegionPowers = []RegionPower{{Region: "", Power: 25}}
		}},
		{"adaptive coarser than base", func(c *PlanningConfig) {
			c.Adaptive = &AdaptiveLayering{TopLayers: 3, LayerHeight: 0.5}
		}},
		{"adaptive zero top layers", func(c *PlanningConfig) {
			c.Adaptive = &AdaptiveLayering{TopLayers: 0, LayerHeight: 0.1}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var ce *ConfigError
			assert.True(t, errors.As(err, &ce), "expected ConfigError, got %T", err)
		})
	}
}

func TestNewPlanner_RejectsUnknownPatternBeforeGenerate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.FillPattern = "hilbert"

	planner, err := NewPlanner(cfg)
	require.Error(t, err)
	assert.Nil(t, planner)

	var ce *ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestDoseEstimate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Power = 20
	cfg.ScanSpeed = 50000
	cfg.HatchDistance = 0.5

	slow := cfg.DoseEstimate()

	cfg.ScanSpeed = 100000
	fast := cfg.DoseEstimate()

	// Halving the speed doubles the dose, all else equal.
	assert.Greater(t, slow, fast)
	assert.InDelta(t, slow, 2*fast, 1e-12)
}
