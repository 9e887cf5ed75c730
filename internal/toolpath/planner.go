package toolpath

import (
	"log"
	"sync"

	"github.com/microfab-data/lithopath/internal/geom"
)

// Planner generates fabrication toolpaths from solid geometries. All
// configuration is validated at construction; Generate never fails on
// configuration grounds.
type Planner struct {
	cfg    PlanningConfig
	fill   filler
	params paramAssigner
}

// NewPlanner validates the configuration and builds the fill generator for
// the configured pattern. Invalid fields and unknown fill patterns surface
// here as ConfigError, before any geometry is touched.
func NewPlanner(cfg PlanningConfig) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fill, err := newFiller(cfg.FillPattern, cfg.HatchDistance, cfg.Bidirectional)
	if err != nil {
		return nil, err
	}
	return &Planner{cfg: cfg, fill: fill, params: newParamAssigner(cfg)}, nil
}

// Config returns the planner's configuration.
func (p *Planner) Config() PlanningConfig { return p.cfg }

// Generate slices the solid into layers, fills each layer, assigns power and
// speed per point and assembles the result in ascending z order. Layers fill
// concurrently; the merge is ordered by layer index so the output is
// identical to a sequential run. When travel optimization is enabled the
// assembled toolpath is optimized in place before being returned.
func (p *Planner) Generate(solid geom.Solid) (*Toolpath, error) {
	if solid == nil {
		return nil, &GeometryError{Reason: "no solid provided"}
	}
	bounds, err := solid.Bounds()
	if err != nil {
		return nil, &GeometryError{Reason: "solid has no bounds", Err: err}
	}

	samples, err := zSamples(bounds.ZMin, bounds.ZMax, p.cfg.LayerHeight, p.cfg.Adaptive)
	if err != nil {
		return nil, err
	}

	sections, diags := solid.Slice(samples)
	if len(sections) != len(samples) {
		return nil, &GeometryError{Reason: "solid returned a mismatched slice count"}
	}
	for _, d := range diags {
		log.Printf("toolpath: skipping z=%.4f: %s", d.Z, d.Reason)
	}

	// Fill layers concurrently. Results land in a per-layer slot so the
	// merge below is deterministic regardless of completion order.
	layerSegs := make([][][]Point, len(samples))
	var wg sync.WaitGroup
	for i, sec := range sections {
		if sec == nil {
			// Empty cross-section: zero points, but the layer still
			// counts towards the layer total.
			continue
		}
		wg.Add(1)
		go func(i int, box geom.Bounds2, z float64) {
			defer wg.Done()
			layerSegs[i] = p.fill.fill(box, z, i)
		}(i, sec.Bounds(), samples[i])
	}
	wg.Wait()

	tp := &Toolpath{Layers: len(samples)}
	for i, segs := range layerSegs {
		region := ""
		if sections[i] != nil {
			region = sections[i].Region()
		}
		power, speed := p.params.assign(i, region)
		for _, seg := range segs {
			start := len(tp.Points)
			for _, pt := range seg {
				pt.Power = power
				pt.Speed = speed
				tp.Points = append(tp.Points, pt)
			}
			tp.segments = append(tp.segments, segment{Start: start, End: len(tp.Points)})
		}
	}

	if p.cfg.OptimizeTravel {
		tp.Optimize()
	}
	return tp, nil
}
