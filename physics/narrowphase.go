package physics

import (
	"math"

	"github.com/gazed/phys2d/math/vec2"
)

// collide runs narrow-phase collision between two fixtures' shapes at
// their bodies' current poses, returning the manifold (nil Points if
// separated). Circle-circle and circle-polygon pairs special-case to
// direct closest-point computation; every other pair, including a circle
// against a segment or capsule, goes through GJK -> EPA, with clipping
// only when both shapes are polygons (spec §4.2).
func collide(a *Fixture, xfA vec2.Transform, b *Fixture, xfB vec2.Transform) Manifold {
	ca, okA := a.Shape.(*Circle)
	cb, okB := b.Shape.(*Circle)

	switch {
	case okA && okB:
		return collideCircles(ca, xfA, cb, xfB)
	case okA && !okB:
		m := collidePolygonCircle(b.Shape, xfB, ca, xfA)
		return flipManifold(m)
	case !okA && okB:
		return collidePolygonCircle(a.Shape, xfA, cb, xfB)
	default:
		return collideGeneral(a.Shape, xfA, b.Shape, xfB)
	}
}

func flipManifold(m Manifold) Manifold {
	if len(m.Points) == 0 {
		return m
	}
	out := Manifold{Normal: m.Normal.Neg(), Points: make([]ManifoldPoint, len(m.Points))}
	for i, p := range m.Points {
		out.Points[i] = ManifoldPoint{LocalA: p.LocalB, LocalB: p.LocalA, Penetration: p.Penetration, ID: p.ID}
	}
	return out
}

func collideCircles(a *Circle, xfA vec2.Transform, b *Circle, xfB vec2.Transform) Manifold {
	worldA := xfA.Apply(a.Center)
	worldB := xfB.Apply(b.Center)
	d := worldB.Sub(worldA)
	dist := d.Len()
	if dist > a.R+b.R {
		return Manifold{}
	}
	normal := vec2.V{X: 1, Y: 0}
	if dist > vec2.Epsilon {
		normal = d.Scale(1 / dist)
	}
	pointOnA := worldA.Add(normal.Scale(a.R))
	pointOnB := worldB.Sub(normal.Scale(b.R))
	mid := pointOnA.Lerp(pointOnB, 0.5)
	return Manifold{
		Normal: normal,
		Points: []ManifoldPoint{{
			LocalA:      xfA.ApplyInverse(mid),
			LocalB:      xfB.ApplyInverse(mid),
			Penetration: a.R + b.R - dist,
			ID:          distanceFeature,
		}},
	}
}

// collidePolygonCircle handles a convex polygon against a circle, finding
// the closest edge or vertex on the polygon to the circle's center. Any
// other Convex (segment, capsule) is passed on to collideGeneral.
func collidePolygonCircle(shape Convex, xfA vec2.Transform, circle *Circle, xfB vec2.Transform) Manifold {
	poly, ok := shape.(*Polygon)
	if !ok {
		return collideGeneral(shape, xfA, circle, xfB)
	}
	centerWorld := xfB.Apply(circle.Center)
	centerLocal := xfA.ApplyInverse(centerWorld)

	n := len(poly.Vertices)
	separation := -math.MaxFloat64
	bestEdge := 0
	for i := 0; i < n; i++ {
		s := poly.Normals[i].Dot(centerLocal.Sub(poly.Vertices[i]))
		if s > separation {
			separation = s
			bestEdge = i
		}
	}
	if separation > circle.R {
		return Manifold{}
	}

	v1 := poly.Vertices[bestEdge]
	v2 := poly.Vertices[(bestEdge+1)%n]

	var localNormal, localPoint vec2.V
	var penetration float64

	if separation < vec2.Epsilon {
		// Center is inside the polygon: push out along the face normal.
		localNormal = poly.Normals[bestEdge]
		localPoint = v1.Lerp(v2, 0.5)
		penetration = circle.R - separation
	} else {
		u1 := centerLocal.Sub(v1).Dot(v2.Sub(v1))
		u2 := centerLocal.Sub(v2).Dot(v1.Sub(v2))
		switch {
		case u1 <= 0:
			if centerLocal.DistSqr(v1) > circle.R*circle.R {
				return Manifold{}
			}
			localNormal = centerLocal.Sub(v1).Unit()
			localPoint = v1
			penetration = circle.R - centerLocal.Dist(v1)
		case u2 <= 0:
			if centerLocal.DistSqr(v2) > circle.R*circle.R {
				return Manifold{}
			}
			localNormal = centerLocal.Sub(v2).Unit()
			localPoint = v2
			penetration = circle.R - centerLocal.Dist(v2)
		default:
			localNormal = poly.Normals[bestEdge]
			if centerLocal.Sub(v1).Dot(localNormal) > circle.R {
				return Manifold{}
			}
			localPoint = centerLocal.Sub(localNormal.Scale(centerLocal.Sub(v1).Dot(localNormal)))
			penetration = circle.R - centerLocal.Sub(v1).Dot(localNormal)
		}
	}

	worldNormal := xfA.ApplyVec(localNormal)
	worldPoint := xfA.Apply(localPoint)
	return Manifold{
		Normal: worldNormal,
		Points: []ManifoldPoint{{
			LocalA:      localPoint,
			LocalB:      xfB.ApplyInverse(worldPoint),
			Penetration: penetration,
			ID:          distanceFeature,
		}},
	}
}

// collideGeneral handles every shape pair that isn't a Circle special
// case: run GJK, and if the shapes overlap, expand to the penetration
// normal/depth with EPA, then (for two polygons) clip the incident edge
// against the reference face to get up to two contact points. Any pair
// that is not two polygons reduces to a single contact point at the EPA
// witness pair.
func collideGeneral(a Convex, xfA vec2.Transform, b Convex, xfB vec2.Transform) Manifold {
	gr, closestA, closestB, sep := gjkDistance(a, xfA, b, xfB)
	if !gr.intersect {
		if sep > 0 {
			return Manifold{}
		}
		// sep == 0: shapes touch exactly. Treat as a shallow single-point
		// contact rather than running EPA on a degenerate simplex,
		// resolving the tie in favor of reporting contact (Design Notes
		// §9's open question: "a zero separation always registers a
		// contact so resting configurations are not missed").
		normal := closestB.Sub(closestA)
		if normal.AeqZ() {
			normal = vec2.V{X: 1, Y: 0}
		} else {
			normal = normal.Unit()
		}
		return Manifold{Normal: normal, Points: []ManifoldPoint{{
			LocalA:      xfA.ApplyInverse(closestA),
			LocalB:      xfB.ApplyInverse(closestB),
			Penetration: 0,
			ID:          distanceFeature,
		}}}
	}

	epa := epaPenetration(a, xfA, b, xfB, gr.simplex)

	polyA, okA := a.(*Polygon)
	polyB, okB := b.(*Polygon)
	if okA && okB {
		refIndex := matchingEdge(polyA, xfA, epa.normal)
		if pts := clipPolygons(polyA, xfA, refIndex, polyB, xfB, epa.normal); len(pts) > 0 {
			return Manifold{Normal: epa.normal, Points: pts}
		}
	}

	mid := epa.a.onA.Lerp(epa.b.onA, 0.5)
	midB := epa.a.onB.Lerp(epa.b.onB, 0.5)
	return Manifold{
		Normal: epa.normal,
		Points: []ManifoldPoint{{
			LocalA:      xfA.ApplyInverse(mid),
			LocalB:      xfB.ApplyInverse(midB),
			Penetration: epa.depth,
			ID:          distanceFeature,
		}},
	}
}

// matchingEdge finds polyA's edge whose world-space normal is closest to
// the EPA-derived separating normal, used to pick the reference face for
// clipPolygons when both shapes are polygons.
func matchingEdge(poly *Polygon, xf vec2.Transform, normal vec2.V) int {
	best := 0
	bestDot := xf.ApplyVec(poly.Normals[0]).Dot(normal)
	for i := 1; i < len(poly.Normals); i++ {
		d := xf.ApplyVec(poly.Normals[i]).Dot(normal)
		if d > bestDot {
			best, bestDot = i, d
		}
	}
	return best
}
