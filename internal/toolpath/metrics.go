package toolpath

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistics summarizes an assembled toolpath.
type Statistics struct {
	NumPoints    int
	NumLayers    int
	TotalLength  float64 // µm
	TimeEstimate float64 // s
	MinPower     float64
	MaxPower     float64
	MeanPower    float64
	MinSpeed     float64
	MaxSpeed     float64
	MeanSpeed    float64
}

func distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// TotalLength returns the sum of Euclidean distances between consecutive
// points, or 0 for fewer than 2 points.
func (tp *Toolpath) TotalLength() float64 {
	var total float64
	for i := 1; i < len(tp.Points); i++ {
		total += distance(tp.Points[i-1], tp.Points[i])
	}
	return total
}

// TimeEstimate returns the estimated fabrication time in seconds. Each
// segment is traversed at the average of its endpoint speeds; speeds are
// positive by toolpath invariant, so no division by zero can occur.
func (tp *Toolpath) TimeEstimate() float64 {
	var total float64
	for i := 1; i < len(tp.Points); i++ {
		avgSpeed := (tp.Points[i-1].Speed + tp.Points[i].Speed) / 2
		total += distance(tp.Points[i-1], tp.Points[i]) / avgSpeed
	}
	return total
}

// Doses returns the relative exposure dose at each point (power over speed,
// scaled). The absolute value is arbitrary; it is meant for uniformity
// checks across a toolpath.
func (tp *Toolpath) Doses() []float64 {
	doses := make([]float64, len(tp.Points))
	for i, p := range tp.Points {
		doses[i] = p.Power / p.Speed * 1000
	}
	return doses
}

// Statistics derives the summary bundle for the toolpath. An empty toolpath
// yields a zero bundle.
func (tp *Toolpath) Statistics() Statistics {
	s := Statistics{
		NumPoints:    len(tp.Points),
		NumLayers:    tp.Layers,
		TotalLength:  tp.TotalLength(),
		TimeEstimate: tp.TimeEstimate(),
	}
	if len(tp.Points) == 0 {
		return s
	}
	powers := make([]float64, len(tp.Points))
	speeds := make([]float64, len(tp.Points))
	for i, p := range tp.Points {
		powers[i] = p.Power
		speeds[i] = p.Speed
	}
	s.MinPower = floats.Min(powers)
	s.MaxPower = floats.Max(powers)
	s.MeanPower = stat.Mean(powers, nil)
	s.MinSpeed = floats.Min(speeds)
	s.MaxSpeed = floats.Max(speeds)
	s.MeanSpeed = stat.Mean(speeds, nil)
	return s
}
