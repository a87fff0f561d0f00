package physics

import (
	"math"

	"github.com/gazed/phys2d/math/vec2"
)

// ShapeType enumerates the convex primitives handled by the narrow phase,
// mirroring gazed-vu/physics/shape.go's Type()-returns-an-enum pattern
// (SphereShape/BoxShape there) but for the 2D shape set spec.md names.
type ShapeType int

const (
	CircleShapeType ShapeType = iota
	PolygonShapeType
	SegmentShapeType
	CapsuleShapeType
)

// Convex is the capability every collision primitive presents to the core
// (Design Notes §9): a closed, dispatch-free set of operations the
// broad/narrow phase and mass calculators call without knowing the
// concrete shape. Shapes are always expressed in the owning body's local
// space; the body's world transform places them.
type Convex interface {
	Type() ShapeType

	// Support returns the point on the shape farthest in the given
	// (local-space, not necessarily unit) direction. GJK/EPA call this
	// on the Minkowski difference of two shapes.
	Support(dir vec2.V) vec2.V

	// Project returns the shape's [min,max] extent along axis (local
	// space). The narrow phase does not call it: manifold clipping picks
	// its reference face from the EPA normal (matchingEdge).
	Project(axis vec2.V) (min, max float64)

	// Contains reports whether a local-space point lies within (or on)
	// the shape.
	Contains(p vec2.V) bool

	// ComputeAABB returns the shape's axis-aligned bounding box once
	// placed by xf, expanded by margin on every side (margin 0 for the
	// tight AABB; a positive margin is how the broad phase fattens a
	// leaf — spec §4.1).
	ComputeAABB(xf vec2.Transform, margin float64) AABB

	// ComputeMass returns the shape's mass properties for the given
	// density (spec §8 scenarios 1-4 pin down the exact formulas).
	ComputeMass(density float64) Mass

	// Radius returns the farthest distance from the given local-space
	// reference point to any point on the shape — used to derive a
	// body's rotation-disc radius (spec §3).
	Radius(ref vec2.V) float64
}

// Circle is a disc of the given radius centered at Center (local space).
type Circle struct {
	Center vec2.V
	R      float64
}

// NewCircle creates a Circle shape. Returns an error if radius is not
// positive.
func NewCircle(center vec2.V, radius float64) (*Circle, error) {
	if radius <= 0 {
		return nil, newError(InvalidArgument, "circle radius must be positive, got %v", radius)
	}
	return &Circle{Center: center, R: radius}, nil
}

func (c *Circle) Type() ShapeType { return CircleShapeType }

func (c *Circle) Support(dir vec2.V) vec2.V {
	u := dir.Unit()
	if u.Eq(vec2.V{}) {
		return c.Center
	}
	return c.Center.Add(u.Scale(c.R))
}

func (c *Circle) Project(axis vec2.V) (min, max float64) {
	d := axis.Dot(c.Center)
	l := axis.Len() * c.R
	return d - l, d + l
}

func (c *Circle) Contains(p vec2.V) bool {
	return p.DistSqr(c.Center) <= c.R*c.R
}

func (c *Circle) ComputeAABB(xf vec2.Transform, margin float64) AABB {
	center := xf.Apply(c.Center)
	r := c.R + margin
	return AABB{Min: vec2.V{X: center.X - r, Y: center.Y - r}, Max: vec2.V{X: center.X + r, Y: center.Y + r}}
}

func (c *Circle) ComputeMass(density float64) Mass {
	m := density * math.Pi * c.R * c.R
	// I about the circle's own center (spec §8 scenario 2); (*Mass).Add
	// performs the shift to a body's aggregate center itself, so shapes
	// must not pre-shift to any other reference point.
	i := m * 0.5 * c.R * c.R
	return Mass{Center: c.Center, M: m, I: i}
}

func (c *Circle) Radius(ref vec2.V) float64 { return ref.Dist(c.Center) + c.R }

// Segment is a line between two endpoints, zero width. Useful as a thin
// static edge (e.g. ground/walls) and as the degenerate-manifold case
// narrow phase must always handle.
type Segment struct {
	A, B vec2.V
}

// NewSegment creates a Segment shape. Endpoints must differ.
func NewSegment(a, b vec2.V) (*Segment, error) {
	if a.Aeq(b) {
		return nil, newError(InvalidArgument, "segment endpoints must differ")
	}
	return &Segment{A: a, B: b}, nil
}

func (s *Segment) Type() ShapeType { return SegmentShapeType }

func (s *Segment) Support(dir vec2.V) vec2.V {
	if dir.Dot(s.A) > dir.Dot(s.B) {
		return s.A
	}
	return s.B
}

func (s *Segment) Project(axis vec2.V) (min, max float64) {
	da, db := axis.Dot(s.A), axis.Dot(s.B)
	if da < db {
		return da, db
	}
	return db, da
}

func (s *Segment) Contains(p vec2.V) bool {
	ab := s.B.Sub(s.A)
	ap := p.Sub(s.A)
	cross := ab.Cross(ap)
	if math.Abs(cross) > vec2.Epsilon {
		return false
	}
	t := ap.Dot(ab) / ab.LenSqr()
	return t >= 0 && t <= 1
}

func (s *Segment) ComputeAABB(xf vec2.Transform, margin float64) AABB {
	a, b := xf.Apply(s.A), xf.Apply(s.B)
	box := AABB{Min: a.Min(b), Max: a.Max(b)}
	return box.expand(margin)
}

func (s *Segment) ComputeMass(density float64) Mass {
	// A zero-width segment has zero area; give it a thin-rod mass model
	// (spec §8 scenario 3: length L, density rho -> m = rho*L, I about
	// the segment's own centroid = m*L^2/12).
	mid := s.A.Lerp(s.B, 0.5)
	length := s.A.Dist(s.B)
	m := density * length
	i := m * length * length / 12.0
	return Mass{Center: mid, M: m, I: i}
}

func (s *Segment) Radius(ref vec2.V) float64 {
	return math.Max(ref.Dist(s.A), ref.Dist(s.B))
}

// Capsule is a Segment swept by a uniform radius — supplemental beyond
// spec.md's explicit shape list (SPEC_FULL.md [SHAPE]); GJK/EPA/clipping
// need no extra machinery for it once Support/Project are implemented.
type Capsule struct {
	A, B vec2.V
	R    float64
}

// NewCapsule creates a Capsule shape. Endpoints must differ and radius
// must be positive.
func NewCapsule(a, b vec2.V, radius float64) (*Capsule, error) {
	if a.Aeq(b) {
		return nil, newError(InvalidArgument, "capsule endpoints must differ")
	}
	if radius <= 0 {
		return nil, newError(InvalidArgument, "capsule radius must be positive, got %v", radius)
	}
	return &Capsule{A: a, B: b, R: radius}, nil
}

func (c *Capsule) Type() ShapeType { return CapsuleShapeType }

func (c *Capsule) Support(dir vec2.V) vec2.V {
	u := dir.Unit()
	base := c.A
	if dir.Dot(c.A) < dir.Dot(c.B) {
		base = c.B
	}
	return base.Add(u.Scale(c.R))
}

func (c *Capsule) Project(axis vec2.V) (min, max float64) {
	da, db := axis.Dot(c.A), axis.Dot(c.B)
	l := axis.Len() * c.R
	if da > db {
		da, db = db, da
	}
	return da - l, db + l
}

func (c *Capsule) Contains(p vec2.V) bool {
	ab := c.B.Sub(c.A)
	t := vec2.Clamp(p.Sub(c.A).Dot(ab)/ab.LenSqr(), 0, 1)
	closest := c.A.Add(ab.Scale(t))
	return p.DistSqr(closest) <= c.R*c.R
}

func (c *Capsule) ComputeAABB(xf vec2.Transform, margin float64) AABB {
	a, b := xf.Apply(c.A), xf.Apply(c.B)
	box := AABB{Min: a.Min(b), Max: a.Max(b)}
	return box.expand(c.R + margin)
}

func (c *Capsule) ComputeMass(density float64) Mass {
	length := c.A.Dist(c.B)
	mid := c.A.Lerp(c.B, 0.5)
	rectArea := length * 2 * c.R
	circleArea := math.Pi * c.R * c.R
	m := density * (rectArea + circleArea)
	// Approximate inertia as the sum of the rectangle body and the two
	// half-circle caps about the capsule's own centroid (end-cap offset
	// ignored at this tolerance, as is conventional for capsule mass
	// approximations).
	rectM := density * rectArea
	rectI := rectM * (length*length + (2*c.R)*(2*c.R)) / 12.0
	circM := density * circleArea
	circI := circM*0.5*c.R*c.R + circM*(length/2)*(length/2)
	i := rectI + circI
	return Mass{Center: mid, M: m, I: i}
}

func (c *Capsule) Radius(ref vec2.V) float64 {
	return math.Max(ref.Dist(c.A), ref.Dist(c.B)) + c.R
}

// Polygon is a convex, counter-clockwise-wound vertex loop with at least
// 3 vertices. Construction rejects collinear or coincident vertices
// outright (spec §9's explicit instruction: "the spec requires rejection
// at construction; do not mimic the silent [NaN-producing] behavior").
type Polygon struct {
	Vertices []vec2.V
	Normals  []vec2.V // outward edge normals, Normals[i] is the normal of edge (Vertices[i], Vertices[i+1])
	Centroid vec2.V
}

// NewPolygon creates a convex Polygon from vertices already in
// counter-clockwise order (spec §6's polygon file format convention).
func NewPolygon(vertices []vec2.V) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, newError(InvalidArgument, "polygon needs at least 3 vertices, got %d", len(vertices))
	}
	n := len(vertices)
	normals := make([]vec2.V, n)
	for i := 0; i < n; i++ {
		a, b := vertices[i], vertices[(i+1)%n]
		edge := b.Sub(a)
		if edge.LenSqr() < vec2.Epsilon {
			return nil, newError(InvalidArgument, "polygon has coincident vertices at index %d", i)
		}
		normals[i] = edge.PerpCW().Unit()
	}
	// Reject collinear triples (cross product of consecutive edges ~= 0)
	// and non-convex/clockwise input, since a convex polygon's edges must
	// all turn the same way.
	for i := 0; i < n; i++ {
		a, b, c := vertices[i], vertices[(i+1)%n], vertices[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		if math.Abs(cross) < vec2.Epsilon {
			return nil, newError(InvalidArgument, "polygon has collinear vertices at index %d", i)
		}
		if cross < 0 {
			return nil, newError(InvalidArgument, "polygon vertices must be wound counter-clockwise and convex")
		}
	}
	centroid := polygonCentroid(vertices)
	return &Polygon{Vertices: vertices, Normals: normals, Centroid: centroid}, nil
}

// NewBox creates a Polygon shape for an axis-aligned, origin-centered
// rectangle with the given half-extents, matching the half-extent
// convention gazed-vu/physics/shape.go's box uses (Hx, Hy).
func NewBox(hx, hy float64) (*Polygon, error) {
	if hx <= 0 || hy <= 0 {
		return nil, newError(InvalidArgument, "box half-extents must be positive, got (%v,%v)", hx, hy)
	}
	return NewPolygon([]vec2.V{
		{X: hx, Y: -hy},
		{X: hx, Y: hy},
		{X: -hx, Y: hy},
		{X: -hx, Y: -hy},
	})
}

func polygonCentroid(vs []vec2.V) vec2.V {
	var area, cx, cy float64
	n := len(vs)
	for i := 0; i < n; i++ {
		a, b := vs[i], vs[(i+1)%n]
		cr := a.Cross(b)
		area += cr
		cx += (a.X + b.X) * cr
		cy += (a.Y + b.Y) * cr
	}
	if math.Abs(area) < vec2.Epsilon {
		// Degenerate zero-area input; fall back to the vertex average
		// rather than dividing by zero.
		var sum vec2.V
		for _, v := range vs {
			sum = sum.Add(v)
		}
		return sum.Scale(1.0 / float64(n))
	}
	area *= 0.5
	return vec2.V{X: cx / (6 * area), Y: cy / (6 * area)}
}

func (p *Polygon) Type() ShapeType { return PolygonShapeType }

func (p *Polygon) Support(dir vec2.V) vec2.V {
	best, bestDot := p.Vertices[0], dir.Dot(p.Vertices[0])
	for _, v := range p.Vertices[1:] {
		if d := dir.Dot(v); d > bestDot {
			best, bestDot = v, d
		}
	}
	return best
}

func (p *Polygon) Project(axis vec2.V) (min, max float64) {
	min, max = axis.Dot(p.Vertices[0]), axis.Dot(p.Vertices[0])
	for _, v := range p.Vertices[1:] {
		d := axis.Dot(v)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

func (p *Polygon) Contains(pt vec2.V) bool {
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		if p.Normals[i].Dot(pt.Sub(a)) > 0 {
			return false
		}
	}
	return true
}

func (p *Polygon) ComputeAABB(xf vec2.Transform, margin float64) AABB {
	w := xf.Apply(p.Vertices[0])
	box := AABB{Min: w, Max: w}
	for _, v := range p.Vertices[1:] {
		w := xf.Apply(v)
		box.Min = box.Min.Min(w)
		box.Max = box.Max.Max(w)
	}
	return box.expand(margin)
}

func (p *Polygon) ComputeMass(density float64) Mass {
	// Triangle-fan decomposition from the first vertex, summing each
	// triangle's area/centroid/second-moment-of-area — the standard 2D
	// polygon mass formula every 2D engine in this space uses.
	var area, iAccum float64
	var centerAccum vec2.V
	origin := p.Vertices[0]
	const inv3 = 1.0 / 3.0
	for i := 1; i+1 < len(p.Vertices); i++ {
		e1 := p.Vertices[i].Sub(origin)
		e2 := p.Vertices[i+1].Sub(origin)
		d := e1.Cross(e2)
		triArea := 0.5 * d
		area += triArea
		centerAccum = centerAccum.Add(e1.Add(e2).Scale(triArea * inv3))
		intx2 := e1.X*e1.X + e1.X*e2.X + e2.X*e2.X
		inty2 := e1.Y*e1.Y + e1.Y*e2.Y + e2.Y*e2.Y
		iAccum += (0.25 * inv3 * d) * (intx2 + inty2)
	}
	m := density * area
	center := vec2.V{}
	if area > vec2.Epsilon {
		center = centerAccum.Scale(1.0 / area)
	}
	i := density * iAccum
	// iAccum is about the fan's origin vertex; shift to the polygon's own
	// centroid with a single parallel-axis step. (*Mass).Add handles any
	// further shift to a body's aggregate center.
	i -= m * center.LenSqr()
	worldCenter := center.Add(origin)
	return Mass{Center: worldCenter, M: m, I: i}
}

func (p *Polygon) Radius(ref vec2.V) float64 {
	best := 0.0
	for _, v := range p.Vertices {
		if d := ref.Dist(v); d > best {
			best = d
		}
	}
	return best
}
