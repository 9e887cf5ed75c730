package toolpath

// Optimize reorders scan segments within each layer to shorten travel moves,
// the gaps between the end of one scan segment and the start of the next.
// Segments are chosen greedily by nearest endpoint, with reversal allowed,
// starting from wherever the head finished the previous layer. The point set
// of every layer is preserved and no point crosses a layer boundary.
//
// If the reordered path would be longer than the original the original order
// is kept, so total length never increases. A toolpath without segment
// information (one reloaded from disk) is left untouched.
func (tp *Toolpath) Optimize() {
	if len(tp.segments) < 2 {
		return
	}

	newPoints := make([]Point, 0, len(tp.Points))
	newSegs := make([]segment, 0, len(tp.segments))
	havePrev := false
	var prev Point

	for _, layer := range tp.segmentsByLayer() {
		order := nearestSegmentOrder(tp.Points, layer, prev, havePrev)
		for _, o := range order {
			start := len(newPoints)
			if o.reversed {
				for i := o.seg.End - 1; i >= o.seg.Start; i-- {
					newPoints = append(newPoints, tp.Points[i])
				}
			} else {
				newPoints = append(newPoints, tp.Points[o.seg.Start:o.seg.End]...)
			}
			newSegs = append(newSegs, segment{Start: start, End: len(newPoints)})
		}
		if len(newPoints) > 0 {
			prev = newPoints[len(newPoints)-1]
			havePrev = true
		}
	}

	candidate := &Toolpath{Points: newPoints, Layers: tp.Layers, segments: newSegs}
	if candidate.TotalLength() <= tp.TotalLength() {
		tp.Points = newPoints
		tp.segments = newSegs
	}
}

// segmentsByLayer groups consecutive segments sharing the z of their first
// point. Fill segments are emitted layer by layer with constant z, so these
// groups are the per-layer segment sets.
func (tp *Toolpath) segmentsByLayer() [][]segment {
	var groups [][]segment
	start := 0
	for i := 1; i <= len(tp.segments); i++ {
		if i == len(tp.segments) ||
			tp.Points[tp.segments[i].Start].Z != tp.Points[tp.segments[start].Start].Z {
			groups = append(groups, tp.segments[start:i])
			start = i
		}
	}
	return groups
}

type orientedSegment struct {
	seg      segment
	reversed bool
}

// nearestSegmentOrder orders the layer's segments by repeatedly taking the
// unvisited segment whose nearer endpoint is closest to the current head
// position, entering it from that endpoint.
func nearestSegmentOrder(points []Point, segs []segment, prev Point, havePrev bool) []orientedSegment {
	order := make([]orientedSegment, 0, len(segs))
	used := make([]bool, len(segs))

	cur := prev
	if !havePrev {
		// No head position yet: keep the first segment as laid out.
		order = append(order, orientedSegment{seg: segs[0]})
		used[0] = true
		cur = points[segs[0].End-1]
	}

	for len(order) < len(segs) {
		best := -1
		bestRev := false
		bestDist := 0.0
		for i, s := range segs {
			if used[i] {
				continue
			}
			dStart := distance(cur, points[s.Start])
			dEnd := distance(cur, points[s.End-1])
			d, rev := dStart, false
			if dEnd < dStart {
				d, rev = dEnd, true
			}
			if best == -1 || d < bestDist {
				best, bestRev, bestDist = i, rev, d
			}
		}
		used[best] = true
		order = append(order, orientedSegment{seg: segs[best], reversed: bestRev})
		if bestRev {
			cur = points[segs[best].Start]
		} else {
			cur = points[segs[best].End-1]
		}
	}
	return order
}
