package physics

import (
	"math"

	"github.com/gazed/phys2d/math/vec2"
)

// RayHit is one ray/shape intersection: the hit fixture, the world-space
// point and outward normal, and the fraction along the ray at which it
// occurred.
type RayHit struct {
	Fixture  *Fixture
	Point    vec2.V
	Normal   vec2.V
	Fraction float64
}

// RayCast fires a ray from origin in direction dir (need not be unit) out
// to maxFraction (a multiple of dir's length, matching Box2D/dyn4j
// convention) and returns every intersection, ordered nearest-first. The
// broad phase prunes candidates by fattened AABB; each candidate's actual
// shape is then tested exactly.
func (w *World) RayCast(origin, dir vec2.V, maxFraction float64) []RayHit {
	candidates := w.broad.RayCast(origin, dir, maxFraction)
	var hits []RayHit
	for _, cand := range candidates {
		if h, ok := rayCastShape(cand.Fixture, cand.Body.Pose, origin, dir, maxFraction); ok {
			hits = append(hits, h)
		}
	}
	insertionSortHits(hits)
	return hits
}

// RayCastClosest returns only the nearest intersection along the ray, or
// ok=false if none.
func (w *World) RayCastClosest(origin, dir vec2.V, maxFraction float64) (RayHit, bool) {
	hits := w.RayCast(origin, dir, maxFraction)
	if len(hits) == 0 {
		return RayHit{}, false
	}
	return hits[0], true
}

func insertionSortHits(hits []RayHit) {
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].Fraction < hits[j-1].Fraction; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
}

// rayCastShape dispatches to the shape-specific exact ray test, in the
// fixture's body-local frame.
func rayCastShape(f *Fixture, xf vec2.Transform, origin, dir vec2.V, maxFraction float64) (RayHit, bool) {
	localOrigin := xf.ApplyInverse(origin)
	localDir := xf.ApplyInverseVec(dir)

	switch shape := f.Shape.(type) {
	case *Circle:
		return rayCastCircle(f, xf, shape, localOrigin, localDir, maxFraction)
	case *Polygon:
		return rayCastPolygon(f, xf, shape, localOrigin, localDir, maxFraction)
	case *Segment:
		return rayCastSegment(f, xf, shape, localOrigin, localDir, maxFraction)
	case *Capsule:
		return rayCastCapsule(f, xf, shape, localOrigin, localDir, maxFraction)
	default:
		return RayHit{}, false
	}
}

func rayCastCircle(f *Fixture, xf vec2.Transform, c *Circle, origin, dir vec2.V, maxFraction float64) (RayHit, bool) {
	s := origin.Sub(c.Center)
	b := s.LenSqr() - c.R*c.R
	rr := dir.Dot(dir)
	if rr < vec2.Epsilon {
		return RayHit{}, false
	}
	cc := s.Dot(dir)
	sigma := cc*cc - rr*b
	if sigma < 0 || rr < vec2.Epsilon {
		return RayHit{}, false
	}
	t := -(cc + math.Sqrt(sigma))
	if t < 0 || t > maxFraction*rr {
		return RayHit{}, false
	}
	t /= rr
	localPoint := origin.Add(dir.Scale(t))
	normal := localPoint.Sub(c.Center).Unit()
	return RayHit{
		Fixture:  f,
		Point:    xf.Apply(localPoint),
		Normal:   xf.ApplyVec(normal),
		Fraction: t,
	}, true
}

func rayCastPolygon(f *Fixture, xf vec2.Transform, poly *Polygon, origin, dir vec2.V, maxFraction float64) (RayHit, bool) {
	lower, upper := 0.0, maxFraction
	index := -1
	for i := range poly.Vertices {
		num := poly.Normals[i].Dot(poly.Vertices[i].Sub(origin))
		den := poly.Normals[i].Dot(dir)
		if den == 0 {
			if num < 0 {
				return RayHit{}, false
			}
			continue
		}
		t := num / den
		if den < 0 && t > lower {
			lower = t
			index = i
		} else if den > 0 && t < upper {
			upper = t
		}
		if upper < lower {
			return RayHit{}, false
		}
	}
	if index < 0 {
		return RayHit{}, false
	}
	localPoint := origin.Add(dir.Scale(lower))
	return RayHit{
		Fixture:  f,
		Point:    xf.Apply(localPoint),
		Normal:   xf.ApplyVec(poly.Normals[index]),
		Fraction: lower,
	}, true
}

func rayCastSegment(f *Fixture, xf vec2.Transform, s *Segment, origin, dir vec2.V, maxFraction float64) (RayHit, bool) {
	e := s.B.Sub(s.A)
	denom := dir.Cross(e)
	if denom == 0 {
		return RayHit{}, false
	}
	diff := s.A.Sub(origin)
	t := diff.Cross(e) / denom
	u := diff.Cross(dir) / denom
	if t < 0 || t > maxFraction || u < 0 || u > 1 {
		return RayHit{}, false
	}
	localPoint := origin.Add(dir.Scale(t))
	normal := e.PerpCW().Unit()
	if normal.Dot(dir) > 0 {
		normal = normal.Neg()
	}
	return RayHit{Fixture: f, Point: xf.Apply(localPoint), Normal: xf.ApplyVec(normal), Fraction: t}, true
}

func rayCastCapsule(f *Fixture, xf vec2.Transform, c *Capsule, origin, dir vec2.V, maxFraction float64) (RayHit, bool) {
	// Treat as a segment test expanded by radius: shift the segment
	// toward the ray origin's side by R along the segment's normal, then
	// fall back to endpoint circle tests if the shifted-segment test
	// misses. This is an approximation (it does not handle rays entering
	// through the rounded cap precisely at glancing angles) adequate for
	// the shape's supplemental, non-core-path role in this module.
	e := c.B.Sub(c.A)
	n := e.PerpCW().Unit()
	offset := n
	if offset.Dot(dir) > 0 {
		offset = offset.Neg()
	}
	shifted := Segment{A: c.A.Add(offset.Scale(c.R)), B: c.B.Add(offset.Scale(c.R))}
	if hit, ok := rayCastSegment(f, xf, &shifted, origin, dir, maxFraction); ok {
		return hit, true
	}
	circleA := Circle{Center: c.A, R: c.R}
	circleB := Circle{Center: c.B, R: c.R}
	hitA, okA := rayCastCircle(f, xf, &circleA, origin, dir, maxFraction)
	hitB, okB := rayCastCircle(f, xf, &circleB, origin, dir, maxFraction)
	switch {
	case okA && okB:
		if hitA.Fraction < hitB.Fraction {
			return hitA, true
		}
		return hitB, true
	case okA:
		return hitA, true
	case okB:
		return hitB, true
	default:
		return RayHit{}, false
	}
}
