package toolpath

import "github.com/microfab-data/lithopath/internal/geom"

// filler generates the scan pattern for one layer. Implementations return
// ordered scan segments of point positions; power and speed are assigned
// later by the parameter assigner. Fillers are stateless and safe for
// concurrent use across layers.
type filler interface {
	// fill covers the section's bounding box. layer controls direction
	// alternation for patterns that use it.
	fill(box geom.Bounds2, z float64, layer int) [][]Point
}

// newFiller dispatches on the closed pattern set. An unrecognized pattern is
// a configuration error, reported before any generation takes place.
func newFiller(pattern FillPattern, hatch float64, bidirectional bool) (filler, error) {
	switch pattern {
	case FillRectilinear:
		return rectilinearFill{hatch: hatch, bidirectional: bidirectional}, nil
	case FillConcentric:
		return concentricFill{hatch: hatch}, nil
	case FillSpiral:
		return spiralFill{hatch: hatch}, nil
	default:
		return nil, &ConfigError{Field: "fill pattern", Reason: "must be one of rectilinear, concentric, spiral"}
	}
}

// rectilinearFill scans straight parallel lines. Even layers scan along X
// with lines spaced in Y; odd layers scan along Y with lines spaced in X,
// which improves interlayer adhesion. In bidirectional mode every second
// line runs end to start so the head never returns across the section.
type rectilinearFill struct {
	hatch         float64
	bidirectional bool
}

func (f rectilinearFill) fill(box geom.Bounds2, z float64, layer int) [][]Point {
	var segs [][]Point
	if layer%2 == 0 {
		i := 0
		for y := box.YMin; y < box.YMax; y += f.hatch {
			if f.bidirectional && i%2 == 1 {
				segs = append(segs, []Point{{X: box.XMax, Y: y, Z: z}, {X: box.XMin, Y: y, Z: z}})
			} else {
				segs = append(segs, []Point{{X: box.XMin, Y: y, Z: z}, {X: box.XMax, Y: y, Z: z}})
			}
			i++
		}
	} else {
		i := 0
		for x := box.XMin; x < box.XMax; x += f.hatch {
			if f.bidirectional && i%2 == 1 {
				segs = append(segs, []Point{{X: x, Y: box.YMax, Z: z}, {X: x, Y: box.YMin, Z: z}})
			} else {
				segs = append(segs, []Point{{X: x, Y: box.YMin, Z: z}, {X: x, Y: box.YMax, Z: z}})
			}
			i++
		}
	}
	return segs
}

// concentricFill scans nested rectangular contours inset step by step from
// the section's bounding box. Each contour is a closed 5-point loop.
type concentricFill struct {
	hatch float64
}

func (f concentricFill) fill(box geom.Bounds2, z float64, _ int) [][]Point {
	var segs [][]Point
	limit := box.Width()
	if box.Height() < limit {
		limit = box.Height()
	}
	for offset := 0.0; offset < limit/2; offset += f.hatch {
		x0 := box.XMin + offset
		x1 := box.XMax - offset
		y0 := box.YMin + offset
		y1 := box.YMax - offset
		segs = append(segs, []Point{
			{X: x0, Y: y0, Z: z},
			{X: x1, Y: y0, Z: z},
			{X: x1, Y: y1, Z: z},
			{X: x0, Y: y1, Z: z},
			{X: x0, Y: y0, Z: z},
		})
	}
	return segs
}

// spiralFill scans one continuous inward spiral: four directional legs per
// revolution along the shrinking bounding box, each stepped by the hatch
// distance, until the box degenerates.
type spiralFill struct {
	hatch float64
}

func (f spiralFill) fill(box geom.Bounds2, z float64, _ int) [][]Point {
	var pts []Point
	x0, x1 := box.XMin, box.XMax
	y0, y1 := box.YMin, box.YMax
	for x0 < x1 && y0 < y1 {
		for x := x0; x < x1; x += f.hatch {
			pts = append(pts, Point{X: x, Y: y0, Z: z})
		}
		for y := y0; y < y1; y += f.hatch {
			pts = append(pts, Point{X: x1, Y: y, Z: z})
		}
		for x := x1; x > x0; x -= f.hatch {
			pts = append(pts, Point{X: x, Y: y1, Z: z})
		}
		for y := y1; y > y0; y -= f.hatch {
			pts = append(pts, Point{X: x0, Y: y, Z: z})
		}
		x0 += f.hatch
		y0 += f.hatch
		x1 -= f.hatch
		y1 -= f.hatch
	}
	if len(pts) == 0 {
		return nil
	}
	return [][]Point{pts}
}
