package geom

import (
	"fmt"
	"math"
)

// sliceEpsilon absorbs floating-point error when deciding whether a sample
// height touches a solid's top or bottom face.
const sliceEpsilon = 1e-9

// RectSection is a rectangular cross-section.
type RectSection struct {
	Box  Bounds2
	Name string
}

// Bounds returns the rectangle itself.
func (s RectSection) Bounds() Bounds2 { return s.Box }

// Area returns width times height.
func (s RectSection) Area() float64 { return s.Box.Width() * s.Box.Height() }

// Region returns the section's region name, empty unless set.
func (s RectSection) Region() string { return s.Name }

// DiscSection is a circular cross-section.
type DiscSection struct {
	CX, CY, R float64
	Name      string
}

// Bounds returns the square enclosing the disc.
func (s DiscSection) Bounds() Bounds2 {
	return Bounds2{XMin: s.CX - s.R, XMax: s.CX + s.R, YMin: s.CY - s.R, YMax: s.CY + s.R}
}

// Area returns the disc area.
func (s DiscSection) Area() float64 { return math.Pi * s.R * s.R }

// Region returns the section's region name, empty unless set.
func (s DiscSection) Region() string { return s.Name }

// Box is a rectangular solid defined by its extents and centre position.
type Box struct {
	SizeX, SizeY, SizeZ float64
	CX, CY, CZ          float64
}

// NewCube creates a cube with equal edge lengths centred at (cx, cy, cz).
func NewCube(size, cx, cy, cz float64) (*Box, error) {
	return NewBox(size, size, size, cx, cy, cz)
}

// NewBox creates a rectangular box. All extents must be positive.
func NewBox(sx, sy, sz, cx, cy, cz float64) (*Box, error) {
	if sx <= 0 || sy <= 0 || sz <= 0 {
		return nil, fmt.Errorf("box extents must be positive, got (%g, %g, %g)", sx, sy, sz)
	}
	return &Box{SizeX: sx, SizeY: sy, SizeZ: sz, CX: cx, CY: cy, CZ: cz}, nil
}

// Bounds returns the box extents.
func (b *Box) Bounds() (Bounds3, error) {
	return Bounds3{
		XMin: b.CX - b.SizeX/2, XMax: b.CX + b.SizeX/2,
		YMin: b.CY - b.SizeY/2, YMax: b.CY + b.SizeY/2,
		ZMin: b.CZ - b.SizeZ/2, ZMax: b.CZ + b.SizeZ/2,
	}, nil
}

// Slice returns the box footprint at every height inside the box and nil
// elsewhere. A box never fails to slice.
func (b *Box) Slice(z []float64) ([]Section, []SliceDiagnostic) {
	bounds, _ := b.Bounds()
	out := make([]Section, len(z))
	for i, h := range z {
		if h < bounds.ZMin-sliceEpsilon || h > bounds.ZMax+sliceEpsilon {
			continue
		}
		out[i] = RectSection{Box: bounds.XY()}
	}
	return out, nil
}

// Cylinder is a circular solid with its axis along Z.
type Cylinder struct {
	Radius, Height float64
	CX, CY, CZ     float64
}

// NewCylinder creates a cylinder centred at (cx, cy, cz). Radius and height
// must be positive.
func NewCylinder(radius, height, cx, cy, cz float64) (*Cylinder, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("cylinder radius must be positive, got %g", radius)
	}
	if height <= 0 {
		return nil, fmt.Errorf("cylinder height must be positive, got %g", height)
	}
	return &Cylinder{Radius: radius, Height: height, CX: cx, CY: cy, CZ: cz}, nil
}

// Bounds returns the box enclosing the cylinder.
func (c *Cylinder) Bounds() (Bounds3, error) {
	return Bounds3{
		XMin: c.CX - c.Radius, XMax: c.CX + c.Radius,
		YMin: c.CY - c.Radius, YMax: c.CY + c.Radius,
		ZMin: c.CZ - c.Height/2, ZMax: c.CZ + c.Height/2,
	}, nil
}

// Slice returns a full-radius disc at every height inside the cylinder.
func (c *Cylinder) Slice(z []float64) ([]Section, []SliceDiagnostic) {
	bounds, _ := c.Bounds()
	out := make([]Section, len(z))
	for i, h := range z {
		if h < bounds.ZMin-sliceEpsilon || h > bounds.ZMax+sliceEpsilon {
			continue
		}
		out[i] = DiscSection{CX: c.CX, CY: c.CY, R: c.Radius}
	}
	return out, nil
}

// Sphere is a spherical solid.
type Sphere struct {
	Radius     float64
	CX, CY, CZ float64
}

// NewSphere creates a sphere centred at (cx, cy, cz). Radius must be
// positive.
func NewSphere(radius, cx, cy, cz float64) (*Sphere, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius must be positive, got %g", radius)
	}
	return &Sphere{Radius: radius, CX: cx, CY: cy, CZ: cz}, nil
}

// Bounds returns the box enclosing the sphere.
func (s *Sphere) Bounds() (Bounds3, error) {
	return Bounds3{
		XMin: s.CX - s.Radius, XMax: s.CX + s.Radius,
		YMin: s.CY - s.Radius, YMax: s.CY + s.Radius,
		ZMin: s.CZ - s.Radius, ZMax: s.CZ + s.Radius,
	}, nil
}

// Slice returns discs whose radius shrinks towards the poles. Heights that
// only graze a pole yield a degenerate disc and are skipped with a
// diagnostic, matching how mesh slicers fail on tangent planes.
func (s *Sphere) Slice(z []float64) ([]Section, []SliceDiagnostic) {
	out := make([]Section, len(z))
	var diags []SliceDiagnostic
	for i, h := range z {
		dz := h - s.CZ
		if math.Abs(dz) > s.Radius+sliceEpsilon {
			continue
		}
		rr := s.Radius*s.Radius - dz*dz
		if rr <= sliceEpsilon {
			diags = append(diags, SliceDiagnostic{Z: h, Reason: "tangent plane at sphere pole"})
			continue
		}
		out[i] = DiscSection{CX: s.CX, CY: s.CY, R: math.Sqrt(rr)}
	}
	return out, diags
}

// Assembly combines several solids into one. Cross-sections are the bounding
// union of the member sections at each height, which is the same
// approximation the fill generator applies to single solids.
type Assembly struct {
	members []Solid
}

// NewAssembly creates an assembly. At least one member is required.
func NewAssembly(members ...Solid) (*Assembly, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("assembly requires at least one member solid")
	}
	return &Assembly{members: members}, nil
}

// Bounds returns the union of all member bounds.
func (a *Assembly) Bounds() (Bounds3, error) {
	var out Bounds3
	for i, m := range a.members {
		b, err := m.Bounds()
		if err != nil {
			return Bounds3{}, fmt.Errorf("assembly member %d: %w", i, err)
		}
		if i == 0 {
			out = b
		} else {
			out = out.Union(b)
		}
	}
	return out, nil
}

// Slice slices every member and merges the per-height sections. Diagnostics
// from all members are concatenated.
func (a *Assembly) Slice(z []float64) ([]Section, []SliceDiagnostic) {
	out := make([]Section, len(z))
	var diags []SliceDiagnostic
	for _, m := range a.members {
		sections, d := m.Slice(z)
		diags = append(diags, d...)
		for i, sec := range sections {
			if sec == nil {
				continue
			}
			if out[i] == nil {
				out[i] = sec
				continue
			}
			merged := RectSection{Box: out[i].Bounds().Union(sec.Bounds()), Name: out[i].Region()}
			out[i] = merged
		}
	}
	return out, diags
}

// Named wraps a solid with a region name so region-specific parameter
// overrides can address its sections.
func Named(s Solid, region string) Solid {
	return &namedSolid{inner: s, region: region}
}

type namedSolid struct {
	inner  Solid
	region string
}

func (n *namedSolid) Bounds() (Bounds3, error) { return n.inner.Bounds() }

func (n *namedSolid) Slice(z []float64) ([]Section, []SliceDiagnostic) {
	sections, diags := n.inner.Slice(z)
	for i, sec := range sections {
		if sec == nil {
			continue
		}
		sections[i] = namedSection{Section: sec, region: n.region}
	}
	return sections, diags
}

type namedSection struct {
	Section
	region string
}

func (s namedSection) Region() string { return s.region }
