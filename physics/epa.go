package physics

import "github.com/gazed/phys2d/math/vec2"

// epaEdge is one edge of the expanding polygon: two simplex vertices plus
// the outward normal and distance-to-origin of the line through them.
// Mirrors gazed-vu/physics/epa.go's face record, reduced from a 3D
// triangle face to a 2D edge.
type epaEdge struct {
	a, b     simplexVertex
	normal   vec2.V
	distance float64
}

func newEPAEdge(a, b simplexVertex) epaEdge {
	e := b.point.Sub(a.point)
	n := e.PerpCW().Unit()
	if n.Dot(a.point) < 0 {
		n = n.Neg()
	}
	return epaEdge{a: a, b: b, normal: n, distance: n.Dot(a.point)}
}

// epaResult is the penetration extracted once GJK has found an enclosing
// simplex: a world-space separating normal (pointing from A to B) and the
// penetration depth, plus the simplex vertices bracketing the closest
// edge (used to recover contact points).
type epaResult struct {
	normal vec2.V
	depth  float64
	a, b   simplexVertex
}

// epaPenetration expands simplex (already known to enclose the origin)
// into the closest edge of the Minkowski difference's boundary,
// iteratively replacing that edge with a new support point whenever it
// improves the distance estimate. Ported from epa.go's polytope-expansion
// loop (closest-face search, support expansion, convergence-by-
// non-improvement) collapsed from a polytope of faces to a polygon of
// edges.
func epaPenetration(a Convex, xfA vec2.Transform, b Convex, xfB vec2.Transform, simplex []simplexVertex) epaResult {
	// A 2-vertex simplex (origin exactly on an edge) needs a third point
	// to start from; nudge with a support point along the edge normal.
	edges := make([]simplexVertex, len(simplex))
	copy(edges, simplex)
	if len(edges) < 3 {
		n := vec2.V{X: 1, Y: 0}
		if len(edges) == 2 {
			e := edges[1].point.Sub(edges[0].point)
			n = e.PerpCW().Unit()
		}
		d, onA, onB := gjkSupport(a, xfA, b, xfB, n)
		edges = append(edges, simplexVertex{point: d, onA: onA, onB: onB})
	}
	// Ensure the polygon winds CCW so PerpCW always points outward.
	if signedArea(edges) < 0 {
		edges[0], edges[len(edges)-1] = edges[len(edges)-1], edges[0]
	}

	const maxIterations = 32
	const tolerance = 1e-5

	for iter := 0; iter < maxIterations; iter++ {
		closest, closestIdx := closestEdge(edges)

		d, onA, onB := gjkSupport(a, xfA, b, xfB, closest.normal)
		dist := d.Dot(closest.normal)

		if dist-closest.distance < tolerance || iter == maxIterations-1 {
			return epaResult{normal: closest.normal, depth: closest.distance, a: closest.a, b: closest.b}
		}
		newVert := simplexVertex{point: d, onA: onA, onB: onB}
		// Insert the new vertex between closestIdx and closestIdx+1.
		next := make([]simplexVertex, 0, len(edges)+1)
		next = append(next, edges[:closestIdx+1]...)
		next = append(next, newVert)
		next = append(next, edges[closestIdx+1:]...)
		edges = next
	}
	closest, _ := closestEdge(edges)
	return epaResult{normal: closest.normal, depth: closest.distance, a: closest.a, b: closest.b}
}

func signedArea(vs []simplexVertex) float64 {
	var area float64
	n := len(vs)
	for i := 0; i < n; i++ {
		a, b := vs[i].point, vs[(i+1)%n].point
		area += a.Cross(b)
	}
	return area
}

func closestEdge(vs []simplexVertex) (epaEdge, int) {
	n := len(vs)
	best := newEPAEdge(vs[n-1], vs[0])
	bestIdx := n - 1
	for i := 0; i < n-1; i++ {
		e := newEPAEdge(vs[i], vs[i+1])
		if e.distance < best.distance {
			best, bestIdx = e, i
		}
	}
	return best, bestIdx
}
