package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/mypoly/pkg/errors"
)

// Kind identifies a procedural primitive.
type Kind string

// Supported primitive kinds.
const (
	KindIcosahedron Kind = "icosahedron"
	KindBox         Kind = "box"
	KindCylinder    Kind = "cylinder"
)

// Spec is the closed description of a primitive: its kind plus size
// parameters. Fields that do not apply to the kind are ignored.
type Spec struct {
	Kind Kind `json:"kind"`

	Radius float64 `json:"radius,omitempty"` // icosahedron

	Width  float64 `json:"width,omitempty"`  // box
	Height float64 `json:"height,omitempty"` // box, cylinder
	Depth  float64 `json:"depth,omitempty"`  // box

	RadiusTop    float64 `json:"radius_top,omitempty"`    // cylinder
	RadiusBottom float64 `json:"radius_bottom,omitempty"` // cylinder
	Segments     int     `json:"segments,omitempty"`      // cylinder
}

// Icosahedron returns the spec for a detail-0 icosahedron of the given radius.
func Icosahedron(radius float64) Spec {
	return Spec{Kind: KindIcosahedron, Radius: radius}
}

// Box returns the spec for a box with the given extents.
func Box(width, height, depth float64) Spec {
	return Spec{Kind: KindBox, Width: width, Height: height, Depth: depth}
}

// Cylinder returns the spec for a capped cylinder. Different top and bottom
// radii produce a taper; segments is the number of radial faces.
func Cylinder(radiusTop, radiusBottom, height float64, segments int) Spec {
	return Spec{Kind: KindCylinder, RadiusTop: radiusTop, RadiusBottom: radiusBottom, Height: height, Segments: segments}
}

// String returns a compact description such as "cylinder(0.3,0.25,0.7,5)".
func (s Spec) String() string {
	switch s.Kind {
	case KindIcosahedron:
		return fmt.Sprintf("icosahedron(%g)", s.Radius)
	case KindBox:
		return fmt.Sprintf("box(%g,%g,%g)", s.Width, s.Height, s.Depth)
	case KindCylinder:
		return fmt.Sprintf("cylinder(%g,%g,%g,%d)", s.RadiusTop, s.RadiusBottom, s.Height, s.Segments)
	default:
		return string(s.Kind)
	}
}

// Validate checks that the spec describes a buildable primitive.
func (s Spec) Validate() error {
	switch s.Kind {
	case KindIcosahedron:
		if s.Radius <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "icosahedron radius must be positive")
		}
	case KindBox:
		if s.Width <= 0 || s.Height <= 0 || s.Depth <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "box extents must be positive")
		}
	case KindCylinder:
		if s.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "cylinder height must be positive")
		}
		if s.RadiusTop < 0 || s.RadiusBottom < 0 || s.RadiusTop+s.RadiusBottom == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "cylinder radii must be non-negative and not both zero")
		}
		if s.Segments < 3 {
			return errors.New(errors.ErrCodeInvalidInput, "cylinder needs at least 3 segments")
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unknown geometry kind %q", s.Kind)
	}
	return nil
}

// Tri indexes three points of a geometry.
type Tri [3]int

// Geometry is a flat-shaded triangle mesh owned by exactly one part.
type Geometry struct {
	Points  []mgl64.Vec3
	Faces   []Tri
	Normals []mgl64.Vec3 // one per face

	spec     Spec
	id       uint64
	pool     *Pool
	released bool
}

// Spec returns the spec the geometry was built from.
func (g *Geometry) Spec() Spec { return g.spec }

// Kind returns the primitive kind.
func (g *Geometry) Kind() Kind { return g.spec.Kind }

// ID returns the pool-unique identifier of the geometry.
func (g *Geometry) ID() uint64 { return g.id }

// TriangleCount returns the number of faces.
func (g *Geometry) TriangleCount() int { return len(g.Faces) }

// Released reports whether Release has been called.
func (g *Geometry) Released() bool { return g.released }

// Release frees the geometry's buffers and removes it from its pool.
// Calling Release more than once is a no-op.
func (g *Geometry) Release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	g.Points, g.Faces, g.Normals = nil, nil, nil
	if g.pool != nil {
		g.pool.forget(g)
	}
}

// Bounds returns the axis-aligned bounding box in local space.
func (g *Geometry) Bounds() (lo, hi mgl64.Vec3) {
	if len(g.Points) == 0 {
		return lo, hi
	}
	lo, hi = g.Points[0], g.Points[0]
	for _, p := range g.Points[1:] {
		for i := range 3 {
			lo[i] = math.Min(lo[i], p[i])
			hi[i] = math.Max(hi[i], p[i])
		}
	}
	return lo, hi
}

// build generates points and faces for spec. The spec must be valid.
func build(spec Spec) *Geometry {
	g := &Geometry{spec: spec}
	switch spec.Kind {
	case KindIcosahedron:
		buildIcosahedron(g, spec.Radius)
	case KindBox:
		buildBox(g, spec.Width, spec.Height, spec.Depth)
	case KindCylinder:
		buildCylinder(g, spec.RadiusTop, spec.RadiusBottom, spec.Height, spec.Segments)
	}
	return g
}

// addPoint appends p and returns its index.
func (g *Geometry) addPoint(p mgl64.Vec3) int {
	g.Points = append(g.Points, p)
	return len(g.Points) - 1
}

// addFace appends a triangle wound so that its normal points away from the
// origin. All primitives are convex and centered, so the centroid direction
// is a reliable outward reference.
func (g *Geometry) addFace(a, b, c int) {
	pa, pb, pc := g.Points[a], g.Points[b], g.Points[c]
	n := pb.Sub(pa).Cross(pc.Sub(pa))
	if n.Len() == 0 {
		return
	}
	n = n.Normalize()
	centroid := pa.Add(pb).Add(pc).Mul(1.0 / 3)
	if n.Dot(centroid) < 0 {
		b, c = c, b
		n = n.Mul(-1)
	}
	g.Faces = append(g.Faces, Tri{a, b, c})
	g.Normals = append(g.Normals, n)
}

var icosahedronFaces = [20]Tri{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

func buildIcosahedron(g *Geometry, radius float64) {
	t := (1 + math.Sqrt(5)) / 2
	raw := [12]mgl64.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for _, p := range raw {
		g.addPoint(p.Normalize().Mul(radius))
	}
	for _, f := range icosahedronFaces {
		g.addFace(f[0], f[1], f[2])
	}
}

func buildBox(g *Geometry, w, h, d float64) {
	x, y, z := w/2, h/2, d/2
	for _, p := range [8]mgl64.Vec3{
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
	} {
		g.addPoint(p)
	}
	quads := [6][4]int{
		{4, 5, 6, 7}, // +z
		{1, 0, 3, 2}, // -z
		{5, 1, 2, 6}, // +x
		{0, 4, 7, 3}, // -x
		{7, 6, 2, 3}, // +y
		{0, 1, 5, 4}, // -y
	}
	for _, q := range quads {
		g.addFace(q[0], q[1], q[2])
		g.addFace(q[0], q[2], q[3])
	}
}

func buildCylinder(g *Geometry, rTop, rBottom, h float64, segments int) {
	half := h / 2
	top := make([]int, segments)
	bottom := make([]int, segments)
	for i := range segments {
		theta := float64(i) / float64(segments) * 2 * math.Pi
		sin, cos := math.Sincos(theta)
		top[i] = g.addPoint(mgl64.Vec3{rTop * sin, half, rTop * cos})
		bottom[i] = g.addPoint(mgl64.Vec3{rBottom * sin, -half, rBottom * cos})
	}
	for i := range segments {
		j := (i + 1) % segments
		if rTop > 0 {
			g.addFace(top[i], bottom[i], top[j])
		}
		if rBottom > 0 {
			g.addFace(bottom[i], bottom[j], top[j])
		}
	}
	if rTop > 0 {
		center := g.addPoint(mgl64.Vec3{0, half, 0})
		for i := range segments {
			g.addFace(center, top[i], top[(i+1)%segments])
		}
	}
	if rBottom > 0 {
		center := g.addPoint(mgl64.Vec3{0, -half, 0})
		for i := range segments {
			g.addFace(center, bottom[(i+1)%segments], bottom[i])
		}
	}
}
