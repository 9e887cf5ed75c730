// Package toolpath plans point-by-point fabrication toolpaths: it slices a
// solid into layers, fills each layer with a scan pattern, assigns per-point
// power and speed, optimizes travel moves and persists the result.
package toolpath

// Point is a single exposure command: a stage position plus the laser power
// and traversal speed in effect while reaching it. Positions are in
// micrometres, power in milliwatts, speed in micrometres per second.
type Point struct {
	X, Y, Z float64
	Power   float64
	Speed   float64
}

// segment is a half-open index range [Start, End) into Toolpath.Points
// covering one continuous scan move. Segments never span layer boundaries.
type segment struct {
	Start, End int
}

// Toolpath is an ordered command sequence realizing fabrication of one
// structure. Point order is fabrication order and is never silently
// reordered across layer boundaries; the only permitted mutation after
// assembly is in-place travel optimization.
type Toolpath struct {
	Points []Point
	Layers int

	// segments records scan-segment boundaries from the fill generator.
	// It is not persisted: a loaded toolpath has no segment information
	// and travel optimization degrades to a no-op for it.
	segments []segment
}

// NumPoints returns the number of exposure commands.
func (tp *Toolpath) NumPoints() int { return len(tp.Points) }

// validate checks the toolpath invariants: a non-empty toolpath has at least
// one layer and every speed is positive.
func (tp *Toolpath) validate() error {
	if len(tp.Points) > 0 && tp.Layers < 1 {
		return &DataError{Reason: "non-empty toolpath must have at least one layer"}
	}
	for i, p := range tp.Points {
		if p.Speed <= 0 {
			return &DataError{Line: i + 1, Reason: "point speed must be positive"}
		}
	}
	return nil
}
