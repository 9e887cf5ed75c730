package toolpath

// paramAssigner resolves the (power, speed) pair for a point from its layer
// index and region name. Precedence: a registered region power beats layer
// defaults; among duplicate registrations for one region the most recent
// wins. Speed always follows the layer rules, so region overrides only
// retune exposure, not kinematics.
type paramAssigner struct {
	power      float64
	speed      float64
	firstLayer *FirstLayer
	regions    map[string]float64
}

func newParamAssigner(cfg PlanningConfig) paramAssigner {
	pa := paramAssigner{
		power:      cfg.Power,
		speed:      cfg.ScanSpeed,
		firstLayer: cfg.FirstLayer,
	}
	if len(cfg.RegionPowers) > 0 {
		pa.regions = make(map[string]float64, len(cfg.RegionPowers))
		for _, rp := range cfg.RegionPowers {
			pa.regions[rp.Region] = rp.Power
		}
	}
	return pa
}

func (pa paramAssigner) assign(layer int, region string) (power, speed float64) {
	power = pa.power
	speed = pa.speed
	if layer == 0 && pa.firstLayer != nil {
		power = pa.firstLayer.Power
		speed = pa.firstLayer.Speed
	}
	if region != "" {
		if p, ok := pa.regions[region]; ok {
			power = p
		}
	}
	return power, speed
}
