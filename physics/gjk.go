package physics

import "github.com/gazed/phys2d/math/vec2"

// gjkSupport returns the Minkowski-difference support point of (a,b) in
// direction dir, along with the two contributing world-space support
// points (needed by EPA to recover contact points later).
func gjkSupport(a Convex, xfA vec2.Transform, b Convex, xfB vec2.Transform, dir vec2.V) (diff, onA, onB vec2.V) {
	localDirA := xfA.ApplyInverseVec(dir)
	localDirB := xfB.ApplyInverseVec(dir.Neg())
	sa := xfA.Apply(a.Support(localDirA))
	sb := xfB.Apply(b.Support(localDirB))
	return sa.Sub(sb), sa, sb
}

// simplexVertex is one point of the evolving GJK simplex: the Minkowski
// difference point plus the two world-space points it came from.
type simplexVertex struct {
	point  vec2.V
	onA    vec2.V
	onB    vec2.V
}

// gjkResult reports whether two convex shapes intersect, ported down from
// gazed-vu/physics/gjk.go's 3D tetrahedral simplex (do_simplex_2/3/4) to a
// 2D triangle simplex: a triangle that encloses the origin is an
// intersection, replacing the teacher's tetrahedron-encloses-origin test.
type gjkResult struct {
	intersect bool
	// simplex holds the final 1-3 vertex simplex, used by EPA as its
	// starting polygon when intersect is true.
	simplex []simplexVertex
}

// gjkDistance runs GJK between a and b (each in their own world
// transform), returning whether they intersect and, when they do not, the
// closest points on each shape and the separation distance — the contract
// both CCD (needs distance for conservative advancement) and narrow-phase
// dispatch (needs a yes/no plus a simplex for EPA) share.
func gjkDistance(a Convex, xfA vec2.Transform, b Convex, xfB vec2.Transform) (result gjkResult, closestOnA, closestOnB vec2.V, separation float64) {
	dir := xfB.P.Sub(xfA.P)
	if dir.AeqZ() {
		dir = vec2.V{X: 1, Y: 0}
	}

	d, onA, onB := gjkSupport(a, xfA, b, xfB, dir)
	simplex := []simplexVertex{{point: d, onA: onA, onB: onB}}
	dir = d.Neg()

	const maxIterations = 20
	for iter := 0; iter < maxIterations; iter++ {
		if dir.AeqZ() {
			// Origin lies exactly on the existing simplex point.
			result = gjkResult{intersect: true, simplex: simplex}
			return result, vec2.V{}, vec2.V{}, 0
		}
		d, onA, onB := gjkSupport(a, xfA, b, xfB, dir)
		if d.Dot(dir) < 0 {
			// New support point does not pass the origin; shapes are
			// separated. Return the current simplex's closest points once
			// the new support point brings the simplex no closer to the
			// origin; otherwise keep refining toward the closest feature.
			ca, cb, sep := closestPointsFromSimplex(simplex)
			if sep+d.Dot(dir.Unit()) < vec2.Epsilon {
				return gjkResult{intersect: false, simplex: simplex}, ca, cb, sep
			}
		}
		simplex = append(simplex, simplexVertex{point: d, onA: onA, onB: onB})

		var contains bool
		simplex, dir, contains = doSimplex(simplex)
		if contains {
			return gjkResult{intersect: true, simplex: simplex}, vec2.V{}, vec2.V{}, 0
		}
	}
	ca, cb, sep := closestPointsFromSimplex(simplex)
	return gjkResult{intersect: false, simplex: simplex}, ca, cb, sep
}

// doSimplex reduces the simplex to the feature (vertex, edge, or the
// triangle itself) closest to the origin and returns the new search
// direction, or reports that the origin lies inside the simplex (a 2D
// intersection). Mirrors the teacher's do_simplex_2/_3/_4 dispatch, cut
// down from tetrahedra to triangles.
func doSimplex(s []simplexVertex) (out []simplexVertex, dir vec2.V, contains bool) {
	switch len(s) {
	case 2:
		return doSimplex2(s)
	case 3:
		return doSimplex3(s)
	default:
		return s, vec2.V{}, false
	}
}

func doSimplex2(s []simplexVertex) ([]simplexVertex, vec2.V, bool) {
	a, b := s[1].point, s[0].point
	ab := b.Sub(a)
	ao := a.Neg()
	if ab.Dot(ao) > 0 {
		// Origin is beyond A in the direction of B; region AB.
		dir := vec2.V{X: -ab.Y, Y: ab.X}
		if dir.Dot(ao) < 0 {
			dir = dir.Neg()
		}
		return s, dir, false
	}
	// Origin is beyond A away from B; discard B.
	return s[1:2:2], ao, false
}

func doSimplex3(s []simplexVertex) ([]simplexVertex, vec2.V, bool) {
	a, b, c := s[2].point, s[1].point, s[0].point
	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Neg()

	abPerp := tripleCross(ac, ab, ab)
	acPerp := tripleCross(ab, ac, ac)

	if abPerp.Dot(ao) > 0 {
		if ab.Dot(ao) > 0 {
			return []simplexVertex{s[1], s[2]}, abPerp, false
		}
		return pointRegion(s[2], ao)
	}
	if acPerp.Dot(ao) > 0 {
		if ac.Dot(ao) > 0 {
			return []simplexVertex{s[0], s[2]}, acPerp, false
		}
		return pointRegion(s[2], ao)
	}
	// Origin projects inside the triangle: it's enclosed (2D
	// intersection), matching the teacher's tetrahedron-contains-origin
	// terminal case reduced by one dimension.
	return s, vec2.V{}, true
}

func pointRegion(a simplexVertex, ao vec2.V) ([]simplexVertex, vec2.V, bool) {
	return []simplexVertex{a}, ao, false
}

// tripleCross returns (a x b) x c as a 2D vector, the standard
// triple-product trick used by simplex region tests. The result is
// perpendicular to c; with b == c, as doSimplex3 calls it, it points
// away from a.
func tripleCross(a, b, c vec2.V) vec2.V {
	ac := a.Dot(c)
	bc := b.Dot(c)
	return vec2.V{X: b.X*ac - a.X*bc, Y: b.Y*ac - a.Y*bc}
}

// closestPointsFromSimplex recovers the closest points on each shape from
// a non-enclosing simplex by re-deriving barycentric weights on its
// closest edge or vertex.
func closestPointsFromSimplex(s []simplexVertex) (onA, onB vec2.V, separation float64) {
	switch len(s) {
	case 1:
		return s[0].onA, s[0].onB, s[0].point.Len()
	case 2:
		a, b := s[0], s[1]
		ab := b.point.Sub(a.point)
		t := vec2.Clamp(a.point.Neg().Dot(ab)/ab.LenSqr(), 0, 1)
		onA = a.onA.Lerp(b.onA, t)
		onB = a.onB.Lerp(b.onB, t)
		p := a.point.Lerp(b.point, t)
		return onA, onB, p.Len()
	default:
		// A 3-vertex non-enclosing simplex shouldn't occur (doSimplex3
		// always reduces or reports containment), but fall back to the
		// nearest vertex defensively.
		best := 0
		bestLen := s[0].point.Len()
		for i := 1; i < len(s); i++ {
			if l := s[i].point.Len(); l < bestLen {
				best, bestLen = i, l
			}
		}
		return s[best].onA, s[best].onB, bestLen
	}
}
