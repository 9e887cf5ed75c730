// Package geom defines the solid-geometry contract consumed by the toolpath
// planner, together with analytic solid primitives for common test
// structures. Mesh-based solids (STL import, boolean operations) live in an
// external geometry library; anything satisfying Solid can be planned.
package geom

// Bounds2 is an axis-aligned rectangle in the XY plane. Units are
// micrometres throughout.
type Bounds2 struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Width returns the X extent of the rectangle.
func (b Bounds2) Width() float64 { return b.XMax - b.XMin }

// Height returns the Y extent of the rectangle.
func (b Bounds2) Height() float64 { return b.YMax - b.YMin }

// Union returns the smallest rectangle covering both b and other.
func (b Bounds2) Union(other Bounds2) Bounds2 {
	if other.XMin < b.XMin {
		b.XMin = other.XMin
	}
	if other.XMax > b.XMax {
		b.XMax = other.XMax
	}
	if other.YMin < b.YMin {
		b.YMin = other.YMin
	}
	if other.YMax > b.YMax {
		b.YMax = other.YMax
	}
	return b
}

// Bounds3 is an axis-aligned box in 3D space.
type Bounds3 struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// SpanZ returns the height of the box along Z.
func (b Bounds3) SpanZ() float64 { return b.ZMax - b.ZMin }

// XY returns the XY footprint of the box.
func (b Bounds3) XY() Bounds2 {
	return Bounds2{XMin: b.XMin, XMax: b.XMax, YMin: b.YMin, YMax: b.YMax}
}

// Union returns the smallest box covering both b and other.
func (b Bounds3) Union(other Bounds3) Bounds3 {
	if other.XMin < b.XMin {
		b.XMin = other.XMin
	}
	if other.XMax > b.XMax {
		b.XMax = other.XMax
	}
	if other.YMin < b.YMin {
		b.YMin = other.YMin
	}
	if other.YMax > b.YMax {
		b.YMax = other.YMax
	}
	if other.ZMin < b.ZMin {
		b.ZMin = other.ZMin
	}
	if other.ZMax > b.ZMax {
		b.ZMax = other.ZMax
	}
	return b
}

// Section is a planar cross-section of a solid at a fixed z height.
type Section interface {
	// Bounds returns the XY bounding box of the section.
	Bounds() Bounds2
	// Area returns the section area. Informative only; the planner never
	// depends on it.
	Area() float64
	// Region names the section for parameter overrides. Empty for unnamed
	// solids.
	Region() string
}

// SliceDiagnostic records a z height at which slicing failed. Slicing
// failures are non-fatal: the planner skips the height and continues.
type SliceDiagnostic struct {
	Z      float64
	Reason string
}

// Solid is the geometry collaborator contract.
type Solid interface {
	// Bounds returns the axis-aligned bounding box of the solid.
	Bounds() (Bounds3, error)
	// Slice returns one cross-section per requested z height, in the same
	// order and of the same length as z. Entries are nil where the solid
	// has no material at that height. Heights that fail to resolve are
	// reported in the diagnostics list, never as an error.
	Slice(z []float64) ([]Section, []SliceDiagnostic)
}
