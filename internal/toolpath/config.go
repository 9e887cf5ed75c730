package toolpath

// FillPattern selects the strategy used to cover a cross-section with scan
// lines. The set is closed: the planner dispatches on the value and rejects
// anything else at configuration time.
type FillPattern string

const (
	// FillRectilinear scans parallel lines, alternating the scan axis by
	// layer parity.
	FillRectilinear FillPattern = "rectilinear"
	// FillConcentric scans nested closed contours inset from the section
	// boundary.
	FillConcentric FillPattern = "concentric"
	// FillSpiral scans one continuous inward spiral.
	FillSpiral FillPattern = "spiral"
)

// FirstLayer overrides power and speed for layer 0, typically to improve
// substrate adhesion.
type FirstLayer struct {
	Power float64 // mW
	Speed float64 // µm/s
}

// RegionPower assigns a power override to a named region. Later entries in
// the PlanningConfig list win over earlier ones for the same region.
type RegionPower struct {
	Region string
	Power  float64 // mW
}

// AdaptiveLayering slices the top of a structure with a finer layer height
// for better surface finish.
type AdaptiveLayering struct {
	TopLayers   int     // number of base samples at the top to refine
	LayerHeight float64 // µm, finer than the base layer height
}

// PlanningConfig holds all parameters for toolpath generation. Units are
// micrometres, milliwatts and micrometres per second.
type PlanningConfig struct {
	LayerHeight   float64
	HatchDistance float64
	ScanSpeed     float64
	Power         float64
	FillPattern   FillPattern

	// FirstLayer, when non-nil, replaces power and speed for layer 0.
	FirstLayer *FirstLayer
	// RegionPowers lists power overrides for named regions, in
	// registration order; the last entry for a region wins.
	RegionPowers []RegionPower
	// Adaptive, when non-nil, refines the top of the structure.
	Adaptive *AdaptiveLayering

	OptimizeTravel bool
	Bidirectional  bool
}

// DefaultConfig returns planning parameters suitable for typical polymer
// resists.
func DefaultConfig() PlanningConfig {
	return PlanningConfig{
		LayerHeight:    0.3,
		HatchDistance:  0.5,
		ScanSpeed:      50000,
		Power:          20,
		FillPattern:    FillRectilinear,
		OptimizeTravel: true,
		Bidirectional:  true,
	}
}

// Validate checks every field and returns a ConfigError for the first
// violation found.
func (c PlanningConfig) Validate() error {
	if c.LayerHeight <= 0 {
		return &ConfigError{Field: "layer height", Reason: "must be positive"}
	}
	if c.HatchDistance <= 0 {
		return &ConfigError{Field: "hatch distance", Reason: "must be positive"}
	}
	if c.ScanSpeed <= 0 {
		return &ConfigError{Field: "scan speed", Reason: "must be positive"}
	}
	if c.Power < 0 {
		return &ConfigError{Field: "power", Reason: "cannot be negative"}
	}
	switch c.FillPattern {
	case FillRectilinear, FillConcentric, FillSpiral:
	default:
		return &ConfigError{Field: "fill pattern", Reason: "must be one of rectilinear, concentric, spiral"}
	}
	if c.FirstLayer != nil {
		if c.FirstLayer.Speed <= 0 {
			return &ConfigError{Field: "first layer speed", Reason: "must be positive"}
		}
		if c.FirstLayer.Power < 0 {
			return &ConfigError{Field: "first layer power", Reason: "cannot be negative"}
		}
	}
	for _, rp := range c.RegionPowers {
		if rp.Region == "" {
			return &ConfigError{Field: "region power", Reason: "region name must not be empty"}
		}
		if rp.Power < 0 {
			return &ConfigError{Field: "region power", Reason: "cannot be negative"}
		}
	}
	if c.Adaptive != nil {
		if c.Adaptive.TopLayers < 1 {
			return &ConfigError{Field: "adaptive top layers", Reason: "must be at least 1"}
		}
		if c.Adaptive.LayerHeight <= 0 || c.Adaptive.LayerHeight >= c.LayerHeight {
			return &ConfigError{Field: "adaptive layer height", Reason: "must be positive and finer than the base layer height"}
		}
	}
	return nil
}

// DoseEstimate returns the nominal exposure dose for the configured power,
// speed and hatch distance. The formula approximates dose as power divided
// by the area swept per unit time.
func (c PlanningConfig) DoseEstimate() float64 {
	return (c.Power * 1000) / (c.ScanSpeed * c.HatchDistance * 10)
}
